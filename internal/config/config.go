package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr     string      `yaml:"addr" json:"addr"`
	LogLevel string      `yaml:"log_level" json:"log_level"`
	Mongo    MongoConfig `yaml:"mongo" json:"mongo"`
}

type MongoConfig struct {
	URI      string `yaml:"uri" json:"uri"`
	Database string `yaml:"database" json:"database"`
}

func Default() Config {
	return Config{
		Addr:     ":3000",
		LogLevel: "info",
		Mongo: MongoConfig{
			URI:      "mongodb://127.0.0.1:27017",
			Database: "tasksdb",
		},
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = d.Mongo.URI
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = d.Mongo.Database
	}
}

// Load reads a yaml config file and fills in defaults. A missing file is not
// an error; the defaults are enough to run against a local deployment.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	c.ApplyDefaults()
	return c, nil
}
