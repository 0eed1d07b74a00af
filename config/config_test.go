package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "council"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}

	dbg := ServiceConfig{Name: "council", Debug: true}
	dbg.ApplyDefaults()
	if dbg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", dbg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		c := ServiceConfig{Name: "council", Environment: "production"}
		c.Logging.ApplyDefaults()
		return c
	}
	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"bad environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"bad log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

type retrySection struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Retry         retrySection `mapstructure:"retry"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: council
environment: staging
retry:
  max_attempts: 4
  base_delay: 2s
`)
	var cfg testConfig
	files, err := LoadConfig("council", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if files.ConfigFile != path || files.EnvFile != "" {
		t.Errorf("unexpected resolved files %+v", files)
	}
	if cfg.Name != "council" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Retry.MaxAttempts != 4 || cfg.Retry.BaseDelay != 2*time.Second {
		t.Errorf("unexpected retry section %+v", cfg.Retry)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "retry:\n  max_attempts: 4\n")
	t.Setenv("COUNCIL_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("OTHER_RETRY_MAX_ATTEMPTS", "9")

	var cfg testConfig
	if _, err := LoadConfig("council", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Retry.MaxAttempts != 7 {
		t.Errorf("expected env override 7, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "COUNCIL_TEST_ENVFILE_KEY=sk-from-file\n")
	t.Cleanup(func() { os.Unsetenv("COUNCIL_TEST_ENVFILE_KEY") })

	var cfg testConfig
	files, err := LoadConfig("council", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if files.EnvFile != envPath {
		t.Errorf("expected env file %q, got %q", envPath, files.EnvFile)
	}
	if got := os.Getenv("COUNCIL_TEST_ENVFILE_KEY"); got != "sk-from-file" {
		t.Errorf("expected .env value in environment, got %q", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg testConfig
	_, err := LoadConfig("council", &cfg,
		WithConfigFile("/nonexistent/config.yml"),
		WithEnvFile("/nonexistent/.env"),
		WithDefaults(map[string]any{"retry.max_attempts": 3, "name": "council"}))
	if err != nil {
		t.Fatalf("expected missing files to be tolerated, got %v", err)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Name != "council" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "retry: [unclosed\n")
	var cfg testConfig
	if _, err := LoadConfig("council", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected malformed YAML to fail")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/council/config.yml": true,
		"./config.yml":             true,
		"./.env":                   true,
		"../.env.council":          true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("council", LoaderConfig{})
	if files.ConfigFile != "./cmd/council/config.yml" {
		t.Errorf("expected ./cmd/council/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "../.env.council" {
		t.Errorf("expected service-specific env file first, got %q", files.EnvFile)
	}

	explicit := (&Resolver{FileSystem: fs}).ResolveFiles("council", LoaderConfig{ConfigFile: "/etc/council.yml"})
	if explicit.ConfigFile != "/etc/council.yml" {
		t.Errorf("explicit path should win, got %q", explicit.ConfigFile)
	}
}

func TestKeyVariants(t *testing.T) {
	got := keyVariants("RETRY_MAX_ATTEMPTS")
	for _, want := range []string{"retry_max_attempts", "retry.max_attempts", "retry_max.attempts", "retry.max.attempts"} {
		found := false
		for _, g := range got {
			if g == want {
				found = true
			}
		}
		if !found {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
	if len(keyVariants("NAME")) != 1 {
		t.Errorf("single-part key should have one variant")
	}
}
