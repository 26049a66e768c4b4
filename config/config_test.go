package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type sectionConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Section       sectionConfig `mapstructure:"section"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "config.yml", `
name: cfgtest
environment: test
logging:
  level: debug
section:
  addr: localhost:6379
  db: 2
`)

	var cfg testConfig
	if err := LoadConfig("cfgtest", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "cfgtest" || cfg.Environment != "test" {
		t.Errorf("unexpected service config: %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging.level=debug, got %q", cfg.Logging.Level)
	}
	if cfg.Section.Addr != "localhost:6379" || cfg.Section.DB != 2 {
		t.Errorf("unexpected section: %+v", cfg.Section)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "config.yml", `
section:
  addr: localhost:6379
`)
	t.Setenv("CFGENV_SECTION_ADDR", "redis:6380")
	t.Setenv("SECTION_DB", "9") // unprefixed, ignored

	var cfg testConfig
	if err := LoadConfig("cfgenv", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Section.Addr != "redis:6380" {
		t.Errorf("expected env override, got %q", cfg.Section.Addr)
	}
	if cfg.Section.DB != 0 {
		t.Errorf("expected unprefixed variable to be ignored, got db=%d", cfg.Section.DB)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "name: cfgdotenv\n")
	envPath := writeFile(t, dir, ".env", "CFGDOTENV_SECTION_DB=7\n")
	t.Cleanup(func() { _ = os.Unsetenv("CFGDOTENV_SECTION_DB") })

	var cfg testConfig
	err := LoadConfig("cfgdotenv", &cfg, WithConfigFile(configPath), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Section.DB != 7 {
		t.Errorf("expected db=7 from .env, got %d", cfg.Section.DB)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("cfgmissing", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/dbfixtures/config.yml": true,
		"./config/.env":               true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("dbfixtures", LoaderConfig{})
	if files.ConfigFile != "./cmd/dbfixtures/config.yml" {
		t.Errorf("expected ./cmd/dbfixtures/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./config/.env" {
		t.Errorf("expected ./config/.env, got %q", files.EnvFile)
	}

	files = resolver.ResolveFiles("dbfixtures", LoaderConfig{ConfigFile: "custom.yml"})
	if files.ConfigFile != "custom.yml" {
		t.Errorf("expected explicit file to win, got %q", files.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestEnvPrefix(t *testing.T) {
	if got := EnvPrefix("db-fixtures"); got != "DB_FIXTURES" {
		t.Errorf("EnvPrefix = %q, want DB_FIXTURES", got)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("KAFKA_QUERY_TIMEOUT")
	if len(variants) != 4 {
		t.Errorf("expected 4 variants, got %v", variants)
	}
	for _, want := range []string{"kafka_query_timeout", "kafka.query.timeout", "kafka.query_timeout", "kafka_query.timeout"} {
		if !slices.Contains(variants, want) {
			t.Errorf("expected variant %q in %v", want, variants)
		}
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := ServiceConfig{Name: "dbfixtures"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected development, got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults, got %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Environment = "production"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for production environment")
	}

	cfg = ServiceConfig{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}
