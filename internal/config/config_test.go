package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PGHOST", "PGDATABASE", "PGUSER", "PGPASSWORD", "PGPORT",
		"FOODGATE_DB_DRIVER", "FOODGATE_LOG_LEVEL", "FOODGATE_LOG_FILE", "FOODGATE_CACHE_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foodgate.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearStoreEnv(t)

	cfg, err := Load(writeConfigFile(t, `{}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("default driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("default host/port = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.CacheTTLSeconds != 60 {
		t.Errorf("default cache TTL = %d", cfg.CacheTTLSeconds)
	}
	if cfg.CacheTTL() != 60*time.Second {
		t.Errorf("CacheTTL() = %v", cfg.CacheTTL())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearStoreEnv(t)

	path := writeConfigFile(t, `{
		"database": {"driver": "postgres", "host": "db.internal", "name": "surplus", "user": "gateway", "port": 6432},
		"cache_ttl_seconds": 120
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Name != "surplus" {
		t.Errorf("file values not applied: %+v", cfg.Database)
	}
	if cfg.CacheTTLSeconds != 120 {
		t.Errorf("cache TTL = %d", cfg.CacheTTLSeconds)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("PGHOST", "env-host")
	t.Setenv("PGDATABASE", "env-db")
	t.Setenv("PGUSER", "env-user")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("PGPORT", "5544")
	t.Setenv("FOODGATE_CACHE_TTL", "30")

	cfg, err := Load(writeConfigFile(t, `{"database": {"host": "file-host"}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Database.Host != "env-host" {
		t.Errorf("env host not applied: %q", cfg.Database.Host)
	}
	if cfg.Database.Name != "env-db" || cfg.Database.User != "env-user" {
		t.Errorf("env name/user not applied: %+v", cfg.Database)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("env password not applied")
	}
	if cfg.Database.Port != 5544 {
		t.Errorf("env port not applied: %d", cfg.Database.Port)
	}
	if cfg.CacheTTLSeconds != 30 {
		t.Errorf("env cache TTL not applied: %d", cfg.CacheTTLSeconds)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("FOODGATE_DB_DRIVER", "oracle")

	if _, err := Load(writeConfigFile(t, `{}`)); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	clearStoreEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for explicit but missing config file")
	}
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver: "postgres", Host: "localhost", Name: "foodapp",
		User: "postgres", Password: "pw", Port: 5432,
	}
	want := "host=localhost dbname=foodapp user=postgres password=pw port=5432 sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestMySQLDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver: "mysql", Host: "db", Name: "foodapp",
		User: "root", Password: "pw", Port: 3306,
	}
	want := "root:pw@tcp(db:3306)/foodapp?parseTime=true"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
