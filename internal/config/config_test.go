// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Database.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver by default, got %q", c.Database.Driver)
	}
	if c.Session.TTL != 12*time.Hour {
		t.Errorf("expected 12h session ttl, got %s", c.Session.TTL)
	}
	if c.Seed.AdminEmail != "admin@demo.com" || c.Seed.Password != "1234" {
		t.Errorf("unexpected seed defaults: %+v", c.Seed)
	}
	if got := c.Server.Address(); got != "0.0.0.0:8080" {
		t.Errorf("expected 0.0.0.0:8080, got %s", got)
	}
	if !c.IsDevelopment() || c.IsProduction() {
		t.Errorf("expected development environment")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := strings.Join([]string{
		"server:",
		"  port: 9090",
		"database:",
		"  driver: pgx",
		"  url: postgres://localhost/surveys",
		"log:",
		"  format: text",
	}, "\n")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9191")

	c, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Database.Driver != DriverPostgres {
		t.Errorf("expected pgx driver from file, got %q", c.Database.Driver)
	}
	if c.Log.Format != "text" {
		t.Errorf("expected text log format from file, got %q", c.Log.Format)
	}
	if c.Log.Level != "debug" {
		t.Errorf("expected env to override log level, got %q", c.Log.Level)
	}
	if c.Server.Port != 9191 {
		t.Errorf("expected env to override port, got %d", c.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c, err := load("")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty url", func(c *Config) { c.Database.URL = "" }},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }},
		{"default secret in production", func(c *Config) {
			c.App.Environment = "production"
			c.Session.Secure = true
		}},
		{"insecure cookie in production", func(c *Config) {
			c.App.Environment = "production"
			c.Session.Secret = strings.Repeat("s", 40)
		}},
		{"zero login limit", func(c *Config) { c.RateLimit.LoginRequests = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			if err := validate(c); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
