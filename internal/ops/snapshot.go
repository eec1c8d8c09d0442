// Package ops implements operational tooling for the service: JSON snapshots
// of the two collections, restore, and a restore drill. Driven by cmd/ops.
package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/marektacina/task-manager/internal/field"
	"github.com/marektacina/task-manager/internal/model"
	"github.com/marektacina/task-manager/internal/task"
)

type Snapshot struct {
	ExportedAt time.Time     `json:"exportedAt"`
	Tasks      []model.Task  `json:"tasks"`
	Fields     []model.Field `json:"fields"`
}

// Export writes every task and field to a JSON snapshot file.
func Export(ctx context.Context, tasks task.Repo, fields field.Repo, path string) (Snapshot, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return Snapshot{}, fmt.Errorf("snapshot path is required")
	}

	ts, err := tasks.Find(ctx, task.ListFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("export tasks: %w", err)
	}
	fs, err := fields.Find(ctx, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export fields: %w", err)
	}

	snap := Snapshot{
		ExportedAt: time.Now().UTC(),
		Tasks:      ts,
		Fields:     fs,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Snapshot{}, err
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Snapshot{}, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Import loads a snapshot into the given repos. The store assigns fresh ids,
// so field references inside tasks are remapped from the snapshot's ids to
// the newly assigned ones; references to fields absent from the snapshot are
// carried over untouched.
func Import(ctx context.Context, snap Snapshot, tasks task.Repo, fields field.Repo) error {
	idMap := make(map[string]string, len(snap.Fields))
	for _, f := range snap.Fields {
		created, err := fields.Create(ctx, model.Field{Text: f.Text, Priority: f.Priority})
		if err != nil {
			return fmt.Errorf("import field %q: %w", f.Text, err)
		}
		idMap[f.ID] = created.ID
	}

	for _, t := range snap.Tasks {
		refs := make([]string, 0, len(t.FieldIDs))
		for _, id := range t.FieldIDs {
			if mapped, ok := idMap[id]; ok {
				refs = append(refs, mapped)
				continue
			}
			refs = append(refs, id)
		}
		_, err := tasks.Create(ctx, model.Task{
			Text:     t.Text,
			FieldIDs: refs,
			IsDone:   t.IsDone,
			Deadline: t.Deadline,
		})
		if err != nil {
			return fmt.Errorf("import task %q: %w", t.Text, err)
		}
	}
	return nil
}

// ReadSnapshot loads a snapshot file written by Export.
func ReadSnapshot(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Drill exports the live store to workDir, re-imports the snapshot into
// fresh in-memory repos and verifies document counts and that every field
// reference resolvable before the roundtrip still resolves after it.
func Drill(ctx context.Context, tasks task.Repo, fields field.Repo, workDir string) (string, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	path := filepath.Join(workDir, "task-manager-drill-"+ts+".json")

	snap, err := Export(ctx, tasks, fields, path)
	if err != nil {
		return "", err
	}

	restoredTasks := task.NewMemoryRepo()
	restoredFields := field.NewMemoryRepo()
	if err := Import(ctx, snap, restoredTasks, restoredFields); err != nil {
		return "", err
	}

	back, err := Export(ctx, restoredTasks, restoredFields, path+".restored")
	if err != nil {
		return "", err
	}
	if len(back.Tasks) != len(snap.Tasks) || len(back.Fields) != len(snap.Fields) {
		return "", fmt.Errorf("count mismatch after restore: tasks %d/%d fields %d/%d",
			len(back.Tasks), len(snap.Tasks), len(back.Fields), len(snap.Fields))
	}

	restoredIDs := make(map[string]bool, len(back.Fields))
	for _, f := range back.Fields {
		restoredIDs[f.ID] = true
	}
	liveIDs := make(map[string]bool, len(snap.Fields))
	for _, f := range snap.Fields {
		liveIDs[f.ID] = true
	}
	for i, t := range back.Tasks {
		for _, id := range snap.Tasks[i].FieldIDs {
			if liveIDs[id] && !slices.ContainsFunc(t.FieldIDs, func(r string) bool { return restoredIDs[r] }) {
				return "", fmt.Errorf("task %q lost field references after restore", t.Text)
			}
		}
	}

	return path, nil
}
