package redis

import (
	"strings"
	"testing"
)

func TestParseKeyType(t *testing.T) {
	tests := []struct {
		in   string
		want KeyType
	}{
		{"string", KeyTypeString},
		{"scalar", KeyTypeString},
		{"LIST", KeyTypeList},
		{" set ", KeyTypeSet},
		{"hash", KeyTypeHash},
		{"stream", KeyTypeStream},
	}
	for _, tt := range tests {
		got, err := ParseKeyType(tt.in)
		if err != nil {
			t.Errorf("ParseKeyType(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKeyType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseKeyType("zset"); err == nil {
		t.Error("expected error for zset")
	}
}

func TestKeyType_String(t *testing.T) {
	if KeyTypeHash.String() != "hash" {
		t.Errorf("expected hash, got %s", KeyTypeHash)
	}
	if KeyType(0).Valid() {
		t.Error("expected zero KeyType to be invalid")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Addr != "localhost:6379" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.PoolSize != 10 || cfg.DialTimeout != "5s" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{
		Enabled: true,
		Keys: []KeyDeclaration{
			{Name: "queue", Type: "list"},
			{Name: "queue", Type: "set"},
		},
	}
	cfg.ApplyDefaults()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	cfg.Keys = []KeyDeclaration{{Name: "queue", Type: "zset"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown type error")
	}

	cfg.Keys = []KeyDeclaration{{Name: "queue", Type: "list"}, {Name: "greeting", Type: "scalar"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	types, _ := cfg.KeyTypes()
	if types["greeting"] != KeyTypeString || types["queue"] != KeyTypeList {
		t.Errorf("unexpected key types: %v", types)
	}
}

func TestConfig_ValidateDisabled(t *testing.T) {
	cfg := Config{Keys: []KeyDeclaration{{Type: "nope"}}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled config to skip validation, got %v", err)
	}
}
