package config

import "os"

// FromEnv applies environment overrides on top of cfg.
// Unset variables leave the current value in place.
func FromEnv(cfg Config) Config {
	if v := os.Getenv("TASKS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKS_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("TASKS_MONGO_DB"); v != "" {
		cfg.Mongo.Database = v
	}
	return cfg
}
