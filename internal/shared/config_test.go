package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "melodex.db" {
			t.Errorf("expected database path melodex.db, got %s", config.Database.Path)
		}

		if config.Server.BaseURL != "http://localhost:8080" {
			t.Errorf("expected base URL http://localhost:8080, got %s", config.Server.BaseURL)
		}

		if config.Server.RateLimit != 8.0 {
			t.Errorf("expected rate limit 8.0, got %v", config.Server.RateLimit)
		}

		if config.Auth.TokenPath != "" {
			t.Errorf("expected empty token path, got %s", config.Auth.TokenPath)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
base_url = "https://library.example.com"
timeout_seconds = 30
rate_limit = 5.0

[auth]
token_path = "/custom/token"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.BaseURL != "https://library.example.com" {
			t.Errorf("expected custom base URL, got %s", config.Server.BaseURL)
		}
		if config.Server.TimeoutSeconds != 30 {
			t.Errorf("expected timeout 30, got %d", config.Server.TimeoutSeconds)
		}
		if config.Auth.TokenPath != "/custom/token" {
			t.Errorf("expected custom token path, got %s", config.Auth.TokenPath)
		}
		if config.Database.MaxOpenConns != 20 {
			t.Errorf("expected max open conns 20, got %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("LoadConfig with missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.toml")
		if err == nil {
			t.Error("expected error for missing config file")
		}
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig with invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Error("expected error for invalid TOML")
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("TokenPath", func(t *testing.T) {
		t.Run("returns the configured path", func(t *testing.T) {
			config := DefaultConfig()
			config.Auth.TokenPath = "/custom/token"

			path, err := config.TokenPath()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if path != "/custom/token" {
				t.Errorf("expected configured path, got %s", path)
			}
		})

		t.Run("falls back to the data directory", func(t *testing.T) {
			config := DefaultConfig()

			path, err := config.TokenPath()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if filepath.Base(path) != "token" {
				t.Errorf("expected token filename, got %s", path)
			}
		})
	})
}
