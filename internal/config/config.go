package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	kanerr "github.com/amterp/boardkit/internal/errors"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendRedis  = "redis"
)

// Config is the user's boardkit configuration.
// Stored at ~/.config/boardkit/config.toml; every field can be overridden
// from the environment.
type Config struct {
	Editor  string        `toml:"editor,omitempty" yaml:"editor,omitempty" env:"BOARDKIT_EDITOR"`
	Storage StorageConfig `toml:"storage" yaml:"storage"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string       `toml:"backend" yaml:"backend" env:"BOARDKIT_STORAGE_BACKEND"`
	DataDir string       `toml:"data_dir,omitempty" yaml:"data_dir,omitempty" env:"BOARDKIT_DATA_DIR"`
	SQLite  SQLiteConfig `toml:"sqlite" yaml:"sqlite"`
	S3      S3Config     `toml:"s3" yaml:"s3"`
	Redis   RedisConfig  `toml:"redis" yaml:"redis"`
}

// SQLiteConfig holds sqlite backend settings.
type SQLiteConfig struct {
	Path string `toml:"path,omitempty" yaml:"path,omitempty" env:"BOARDKIT_SQLITE_PATH"`
}

// S3Config holds settings for S3 and S3-compatible services such as MinIO.
type S3Config struct {
	Endpoint     string `toml:"endpoint" yaml:"endpoint" env:"BOARDKIT_S3_ENDPOINT"`
	Bucket       string `toml:"bucket" yaml:"bucket" env:"BOARDKIT_S3_BUCKET"`
	Region       string `toml:"region" yaml:"region" env:"BOARDKIT_S3_REGION"`
	AccessKey    string `toml:"access_key" yaml:"access_key" env:"BOARDKIT_S3_ACCESS_KEY"`
	SecretKey    string `toml:"secret_key" yaml:"secret_key" env:"BOARDKIT_S3_SECRET_KEY"`
	UsePathStyle bool   `toml:"use_path_style" yaml:"use_path_style" env:"BOARDKIT_S3_USE_PATH_STYLE"`
	Prefix       string `toml:"prefix,omitempty" yaml:"prefix,omitempty" env:"BOARDKIT_S3_PREFIX"`
}

// RedisConfig holds redis backend settings.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr" env:"BOARDKIT_REDIS_ADDR"`
	Password string `toml:"password,omitempty" yaml:"password,omitempty" env:"BOARDKIT_REDIS_PASSWORD"`
	DB       int    `toml:"db" yaml:"db" env:"BOARDKIT_REDIS_DB"`
	Prefix   string `toml:"prefix,omitempty" yaml:"prefix,omitempty" env:"BOARDKIT_REDIS_PREFIX"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port int `toml:"port" yaml:"port" env:"BOARDKIT_SERVER_PORT"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" env:"BOARDKIT_LOG_LEVEL"`
	Format string `toml:"format" yaml:"format" env:"BOARDKIT_LOG_FORMAT"` // "json" or "text"
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			S3:      S3Config{Region: "us-east-1"},
			Redis:   RedisConfig{Prefix: "boardkit:"},
		},
		Server: ServerConfig{Port: 3000},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the config file at path (if it exists), applies environment
// overrides and validates the result. An empty path means the global config.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = GlobalConfigPath()
	}
	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendSQLite:
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			return kanerr.InvalidField("storage.s3.bucket", "required for the s3 backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return kanerr.InvalidField("storage.redis.addr", "required for the redis backend")
		}
	default:
		return kanerr.InvalidField("storage.backend", fmt.Sprintf("unknown backend %q", c.Storage.Backend))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return kanerr.InvalidField("server.port", "must be between 0 and 65535")
	}
	return nil
}

// Paths returns the path resolver for the configured data directory.
func (c *Config) Paths() *Paths {
	return NewPaths(c.Storage.DataDir)
}

// Save writes the config as TOML, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
