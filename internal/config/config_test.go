package config

import (
	"testing"
	"time"
)

func TestLoadMemoryStoreDefaults(t *testing.T) {
	t.Setenv("SHELF_STORE", "memory")

	cfg := Load()

	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreMemory)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q, want default", cfg.CatalogURL)
	}
	if cfg.CatalogReloadInterval != 6*time.Hour {
		t.Errorf("CatalogReloadInterval = %v, want 6h", cfg.CatalogReloadInterval)
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
	}
}

func TestLoadStoreIsCaseInsensitive(t *testing.T) {
	t.Setenv("SHELF_STORE", "SQLite")
	t.Setenv("SHELF_SQLITE_PATH", "/tmp/shelf.db")

	cfg := Load()
	if cfg.Store != StoreSQLite {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreSQLite)
	}
	if cfg.SQLitePath != "/tmp/shelf.db" {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath)
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "redis without address",
			env:  map[string]string{"SHELF_STORE": "redis", "SHELF_REDIS_ADDR": ""},
		},
		{
			name: "redis password required but empty",
			env: map[string]string{
				"SHELF_STORE":                   "redis",
				"SHELF_REDIS_ADDR":              "localhost:6379",
				"SHELF_REDIS_PASSWORD_REQUIRED": "true",
				"SHELF_REDIS_PASSWORD":          "",
			},
		},
		{
			name: "unknown backend",
			env:  map[string]string{"SHELF_STORE": "etcd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			_ = Load()
		})
	}
}

func TestLoadRedis(t *testing.T) {
	t.Setenv("SHELF_STORE", "redis")
	t.Setenv("SHELF_REDIS_ADDR", "redis:6379")
	t.Setenv("SHELF_REDIS_DB", "2")
	t.Setenv("SHELF_ALLOWED_CIDRS", "10.0.0.0/8, '192.168.1.4'")

	cfg := Load()
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RedisDB != 2 {
		t.Errorf("RedisDB = %d, want 2", cfg.RedisDB)
	}
	want := []string{"10.0.0.0/8", "192.168.1.4"}
	if len(cfg.AllowedCIDRS) != len(want) {
		t.Fatalf("AllowedCIDRS = %v, want %v", cfg.AllowedCIDRS, want)
	}
	for i := range want {
		if cfg.AllowedCIDRS[i] != want[i] {
			t.Errorf("AllowedCIDRS[%d] = %q, want %q", i, cfg.AllowedCIDRS[i], want[i])
		}
	}
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")
	if got := requireEnv("TEST_VAR"); got != "test_value" {
		t.Errorf("requireEnv() = %q, want test_value", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("requireEnv() should have panicked on a missing variable")
		}
	}()
	_ = requireEnv("TEST_VAR_MISSING_FOR_SURE")
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "soon", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBoolAndInt(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	if mustBool("TEST_BOOL", true) {
		t.Error("mustBool() = true, want false")
	}
	t.Setenv("TEST_BOOL", "maybe")
	if !mustBool("TEST_BOOL", true) {
		t.Error("mustBool() with invalid value should return the default")
	}

	t.Setenv("TEST_INT", "42")
	if got := getenvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %d, want 42", got)
	}
	t.Setenv("TEST_INT", "forty-two")
	if got := getenvInt("TEST_INT", 1); got != 1 {
		t.Errorf("getenvInt() = %d, want default 1", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: ` "a" , b,, 'c' `, want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
