package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "crm.db" {
		t.Errorf("Path = %q, want crm.db", cfg.Database.Path)
	}
	if cfg.Auth.JWTTTL != time.Hour {
		t.Errorf("JWTTTL = %v, want 1h", cfg.Auth.JWTTTL)
	}
	if cfg.Auth.TokenFile == "" {
		t.Error("TokenFile must have a default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("CRM_JWT_TTL_MINUTES", "15")
	t.Setenv("DEV", "false")

	cfg := Load()
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("Port = %d, want 5433", cfg.Database.Port)
	}
	if cfg.Auth.JWTTTL != 15*time.Minute {
		t.Errorf("JWTTTL = %v, want 15m", cfg.Auth.JWTTTL)
	}
	if cfg.App.Dev {
		t.Error("DEV=false must disable dev mode")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "crm", Password: "pw", DBName: "crm", SSLMode: "disable"}
	want := "host=db port=5432 user=crm password=pw dbname=crm sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	if got := getEnvInt("DB_PORT", 5432); got != 5432 {
		t.Errorf("getEnvInt = %d, want the default", got)
	}
}
