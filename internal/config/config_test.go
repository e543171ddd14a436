package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "redis",
			Addrs:  []string{"localhost:6379"},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "postgres"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `database.driver must be "redis" or "memory", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_MemoryDriverNeedsNoAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memory"
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for memory driver: %v", err)
	}
}

func TestValidate_DefaultAboveCap(t *testing.T) {
	cfg := validConfig()
	cfg.Chat.DefaultMaxResults = 50
	cfg.Chat.MaxResultsCap = 20

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_max_results exceeds max_results_cap")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.ContentDB.Path != "contentd.db" {
		t.Errorf("expected content db path=contentd.db, got %q", cfg.ContentDB.Path)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("expected Dimensions=384, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.CacheTTLHours != 72 {
		t.Errorf("expected CacheTTLHours=72, got %d", cfg.Embedding.CacheTTLHours)
	}
	if cfg.Chat.DefaultMaxResults != 5 {
		t.Errorf("expected DefaultMaxResults=5, got %d", cfg.Chat.DefaultMaxResults)
	}
	if cfg.Chat.MaxResultsCap != 20 {
		t.Errorf("expected MaxResultsCap=20, got %d", cfg.Chat.MaxResultsCap)
	}
	if cfg.Chat.MaxQueryChars != 4000 {
		t.Errorf("expected MaxQueryChars=4000, got %d", cfg.Chat.MaxQueryChars)
	}
	if cfg.Index.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Index.HNSWM)
	}
	if cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSWEFConstruct=400, got %d", cfg.Index.HNSWEFConstruct)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{Driver: "memory", ReadinessTimeout: 15},
		ContentDB: ContentDBConfig{Path: "/tmp/custom.db"},
		Chat:      ChatConfig{DefaultMaxResults: 3, MaxResultsCap: 10},
		Index:     IndexConfig{HNSWM: 16, HNSWEFConstruct: 200},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("expected driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.ContentDB.Path != "/tmp/custom.db" {
		t.Errorf("expected path=/tmp/custom.db, got %q", cfg.ContentDB.Path)
	}
	if cfg.Chat.DefaultMaxResults != 3 {
		t.Errorf("expected DefaultMaxResults=3, got %d", cfg.Chat.DefaultMaxResults)
	}
	if cfg.Index.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Index.HNSWM)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CONTENTD_TEST_VAR", "redis-host:6379")

	in := []byte("addrs:\n  - \"${CONTENTD_TEST_VAR}\"\nmodel: \"${CONTENTD_UNSET:-fallback-model}\"\n")
	out := string(expandEnvVars(in))

	if want := "redis-host:6379"; !strings.Contains(out, want) {
		t.Errorf("expanded output missing %q:\n%s", want, out)
	}
	if want := "fallback-model"; !strings.Contains(out, want) {
		t.Errorf("expanded output missing default %q:\n%s", want, out)
	}
}
