package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marektacina/task-manager/internal/config"
	"github.com/marektacina/task-manager/internal/field"
	"github.com/marektacina/task-manager/internal/ops"
	"github.com/marektacina/task-manager/internal/task"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "export":
		if err := cmdExport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "export failed:", err)
			os.Exit(1)
		}
	case "import":
		if err := cmdImport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "import failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func connect(ctx context.Context) (task.Repo, field.Repo, func(), error) {
	cfg, err := config.Load("task_manager.yml")
	if err != nil {
		return nil, nil, nil, err
	}
	cfg = config.FromEnv(cfg)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	closer := func() { _ = client.Disconnect(context.Background()) }
	return task.NewMongoRepo(db), field.NewMongoRepo(db), closer, nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", "", "output snapshot path (.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "task-manager-"+ts+".json")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, fields, closer, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closer()

	snap, err := ops.Export(ctx, tasks, fields, *out)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d tasks, %d fields)\n", *out, len(snap.Tasks), len(snap.Fields))
	return nil
}

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	in := fs.String("snapshot", "", "input snapshot path (.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("snapshot is required")
	}

	snap, err := ops.ReadSnapshot(*in)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, fields, closer, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closer()

	return ops.Import(ctx, snap, tasks, fields)
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	workDir := fs.String("work-dir", os.TempDir(), "workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, fields, closer, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closer()

	path, err := ops.Drill(ctx, tasks, fields, *workDir)
	if err != nil {
		return err
	}
	fmt.Println("snapshot:", path)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  task-manager-ops export --out backups/snapshot.json")
	fmt.Println("  task-manager-ops import --snapshot backups/snapshot.json")
	fmt.Println("  task-manager-ops drill  --work-dir /tmp")
}
