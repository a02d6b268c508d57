package hostconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_PluginConfig(t *testing.T) {
	data := []byte(`
plugins:
  entries:
    kagi-search:
      config:
        apiKey: from-yaml
        limit: 10
    other:
      enabled: false
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	pc := cfg.PluginConfig("kagi-search")
	if pc["apiKey"] != "from-yaml" {
		t.Errorf("apiKey = %v, want from-yaml", pc["apiKey"])
	}
	if pc["limit"] != 10 {
		t.Errorf("limit = %v (%T), want 10", pc["limit"], pc["limit"])
	}

	other := cfg.PluginConfig("other")
	if other == nil || len(other) != 0 {
		t.Errorf("PluginConfig(other) = %v, want empty map", other)
	}
}

func TestPluginConfig_Missing(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"empty config", &Config{}},
		{"other plugin only", &Config{Plugins: PluginsConfig{Entries: map[string]PluginEntry{
			"other": {Config: map[string]any{"apiKey": "x"}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.PluginConfig("kagi-search")
			if got == nil {
				t.Fatal("PluginConfig() returned nil map")
			}
			if len(got) != 0 {
				t.Errorf("PluginConfig() = %v, want empty", got)
			}
		})
	}
}

func TestPluginConfig_Enabled(t *testing.T) {
	data := []byte(`
plugins:
  entries:
    off:
      enabled: false
      config:
        apiKey: ignored
    on:
      enabled: true
      config:
        apiKey: used
    implicit:
      config:
        apiKey: implicit
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		id   string
		want string
	}{
		{"off", ""},
		{"on", "used"},
		{"implicit", "implicit"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := cfg.PluginConfig(tt.id)
			if got == nil {
				t.Fatal("PluginConfig() returned nil map")
			}
			if tt.want == "" && len(got) != 0 {
				t.Errorf("PluginConfig(%s) = %v, want empty for disabled entry", tt.id, got)
			}
			if tt.want != "" && got["apiKey"] != tt.want {
				t.Errorf("apiKey = %v, want %s", got["apiKey"], tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(cfg.PluginConfig("kagi-search")) != 0 {
			t.Error("expected empty plugin config")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "host.yaml")
		content := "plugins:\n  entries:\n    kagi-search:\n      config:\n        limit: 3\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.PluginConfig("kagi-search")["limit"] != 3 {
			t.Errorf("limit = %v, want 3", cfg.PluginConfig("kagi-search")["limit"])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Error("Load() expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("plugins: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil {
			t.Error("Load() expected parse error")
		}
	})
}
