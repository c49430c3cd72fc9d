// Package config layers server configuration: defaults, then an optional
// YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all process configuration. Plain values only, safe to copy.
type Config struct {
	Port int `yaml:"port"`

	Database struct {
		// Driver is "sqlite" or "postgres".
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	Cache struct {
		// Backend is "file" or "redis".
		Backend   string `yaml:"backend"`
		Path      string `yaml:"path"`
		RedisAddr string `yaml:"redisAddr"`
		RedisDB   int    `yaml:"redisDb"`
	} `yaml:"cache"`
}

func defaults() Config {
	var c Config
	c.Port = 8080
	c.Database.Driver = "sqlite"
	c.Database.DSN = "file:tablemaker.db?_pragma=foreign_keys(1)"
	c.Cache.Backend = "file"
	c.Cache.Path = "tablemaker.payload.json"
	c.Cache.RedisAddr = "localhost:6379"
	return c
}

// Load builds the config from defaults, an optional YAML file (path may
// be empty), and environment overrides.
func Load(path string) (Config, error) {
	c := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	applyEnv(&c)
	return c, nil
}

func applyEnv(c *Config) {
	if v := getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv("CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := getenv("CACHE_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := getenv("CACHE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.RedisDB = n
		}
	}
}

func getenv(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
