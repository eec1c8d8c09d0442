package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/marektacina/task-manager/internal/config"
	"github.com/marektacina/task-manager/internal/field"
	"github.com/marektacina/task-manager/internal/serverapp"
	"github.com/marektacina/task-manager/internal/task"
)

func main() {
	cfg, err := config.Load("task_manager.yml")
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	cfg = config.FromEnv(cfg)

	logger := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to MongoDB")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Str("uri", cfg.Mongo.URI).Msg("ping MongoDB")
	}
	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	db := client.Database(cfg.Mongo.Database)
	handler, err := serverapp.NewHandler(serverapp.Options{
		Tasks:  task.NewMongoRepo(db),
		Fields: field.NewMongoRepo(db),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build server")
	}

	logger.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
