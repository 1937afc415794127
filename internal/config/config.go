package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

// DatabaseConfig holds the values needed to reach the store. One store per
// process; connections are opened per operation from these values.
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Name     string `json:"name"`
	User     string `json:"user"`
	Password string `json:"password"`
	Port     int    `json:"port"`
}

type LoggingConfig struct {
	Level      string `json:"level"`
	OutputFile string `json:"output_file"`
	MaxSizeMB  int64  `json:"max_size_mb"`
	Console    bool   `json:"console"`
}

type Config struct {
	Database        DatabaseConfig `json:"database"`
	Logging         LoggingConfig  `json:"logging"`
	CacheTTLSeconds int            `json:"cache_ttl_seconds"`
}

// Load resolves configuration in three layers: defaults, then an optional
// JSON file (explicit path or the standard search locations), then
// environment variables. A .env file in the working directory is honored
// when present.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := defaultConfig()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	} else {
		for _, p := range configPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := loadFile(cfg, p); err == nil {
				break
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "postgres",
			Host:   "localhost",
			Name:   "foodapp",
			User:   "postgres",
			Port:   5432,
		},
		Logging: LoggingConfig{
			Level:     "INFO",
			MaxSizeMB: 10,
		},
		CacheTTLSeconds: 60,
	}
}

// applyEnv maps the store's conventional variable names onto the config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PGHOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("PGDATABASE"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("PGUSER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("PGPASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PGPORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FOODGATE_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("FOODGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FOODGATE_LOG_FILE"); v != "" {
		cfg.Logging.OutputFile = v
	}
	if v := os.Getenv("FOODGATE_CACHE_TTL"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.CacheTTLSeconds = ttl
		}
	}
}

func (c *Config) Validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "mysql" {
		return fmt.Errorf("database driver must be 'postgres' or 'mysql'")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("database port must be positive")
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	return nil
}

// CacheTTL returns the read-cache window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// DSN builds the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			d.User, d.Password, d.Host, d.Port, d.Name)
	default:
		return fmt.Sprintf("host=%s dbname=%s user=%s password=%s port=%d sslmode=disable",
			d.Host, d.Name, d.User, d.Password, d.Port)
	}
}

func configPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			paths = append(paths, filepath.Join(appData, "foodgate", "config.json"))
		}
	default:
		homeDir := os.Getenv("HOME")
		if homeDir != "" {
			paths = append(paths, filepath.Join(homeDir, ".config", "foodgate", "config.json"))
		}
	}

	if pwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(pwd, "foodgate.json"))
	}

	return paths
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
