package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfigGetters(t *testing.T) {
	v := viper.New()
	v.Set("server.addr", ":9090")
	v.Set("server.page_size", 24)
	v.Set("server.low_data", true)
	v.Set("server.shutdown_timeout", "5s")
	cfg := New(v)

	if got := cfg.GetString("server.addr"); got != ":9090" {
		t.Errorf("GetString = %q, want :9090", got)
	}
	if got := cfg.GetInt("server.page_size"); got != 24 {
		t.Errorf("GetInt = %d, want 24", got)
	}
	if !cfg.GetBool("server.low_data") {
		t.Error("GetBool = false, want true")
	}
	if got := cfg.GetDuration("server.shutdown_timeout"); got != 5*time.Second {
		t.Errorf("GetDuration = %v, want 5s", got)
	}
}

func TestConfigGetStringSlice(t *testing.T) {
	v := viper.New()
	v.Set("catalog.sources", []string{"https://example.com/kits.json", "./kits.json"})
	cfg := New(v)

	got := cfg.GetStringSlice("catalog.sources")
	if len(got) != 2 || got[0] != "https://example.com/kits.json" {
		t.Errorf("GetStringSlice = %v", got)
	}
}

func TestConfigIsSet(t *testing.T) {
	v := viper.New()
	v.Set("exists", true)
	cfg := New(v)

	if !cfg.IsSet("exists") {
		t.Error("IsSet('exists') = false, want true")
	}
	if cfg.IsSet("missing") {
		t.Error("IsSet('missing') = true, want false")
	}
}

func TestConfigSub(t *testing.T) {
	v := viper.New()
	v.Set("catalog.url", "https://example.com/kits.json")
	v.Set("catalog.refresh", 30)
	cfg := New(v)

	sub := cfg.Sub("catalog")
	if sub == nil {
		t.Fatal("Sub('catalog') = nil")
	}
	if got := sub.GetString("url"); got != "https://example.com/kits.json" {
		t.Errorf("sub.GetString('url') = %q", got)
	}
	if got := sub.GetInt("refresh"); got != 30 {
		t.Errorf("sub.GetInt('refresh') = %d, want 30", got)
	}
}

func TestConfigSubMissing(t *testing.T) {
	cfg := New(viper.New())

	sub := cfg.Sub("nonexistent")
	if sub == nil {
		t.Fatal("Sub('nonexistent') should return empty Config, not nil")
	}
	// Should return zero values without panic.
	if got := sub.GetString("anything"); got != "" {
		t.Errorf("empty config GetString() = %q, want empty", got)
	}
}

func TestConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.Set("addr", ":8080")
	v.Set("page_size", 12)
	cfg := New(v)

	var target struct {
		Addr     string `mapstructure:"addr"`
		PageSize int    `mapstructure:"page_size"`
	}
	if err := cfg.Unmarshal(&target); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if target.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", target.Addr)
	}
	if target.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12", target.PageSize)
	}
}

func TestNilViper(t *testing.T) {
	cfg := New(nil)
	// Should not panic and return zero values.
	if got := cfg.GetString("key"); got != "" {
		t.Errorf("nil viper GetString() = %q, want empty", got)
	}
	if cfg.Sub("anything") == nil {
		t.Error("nil viper Sub() = nil, want empty Config")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.GetString("server.addr"); got != ":8080" {
		t.Errorf("default server.addr = %q, want :8080", got)
	}
	if got := cfg.GetStringSlice("catalog.sources"); len(got) != 1 || got[0] != "./kits.json" {
		t.Errorf("default catalog.sources = %v", got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routerhaus.yaml")
	data := []byte("server:\n  addr: \":9999\"\ncatalog:\n  sources:\n    - https://cdn.example.com/kits.json\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.GetString("server.addr"); got != ":9999" {
		t.Errorf("server.addr = %q, want :9999", got)
	}
	if got := cfg.GetStringSlice("catalog.sources"); len(got) != 1 || got[0] != "https://cdn.example.com/kits.json" {
		t.Errorf("catalog.sources = %v", got)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load with missing explicit file should fail")
	}
}
