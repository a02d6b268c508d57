package credential

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func fakeResolver(env map[string]string, home string, files map[string]string) Resolver {
	return Resolver{
		Getenv: func(k string) string { return env[k] },
		HomeDir: func() (string, error) {
			if home == "" {
				return "", errors.New("no home")
			}
			return home, nil
		},
		ReadFile: func(path string) ([]byte, error) {
			data, ok := files[path]
			if !ok {
				return nil, fs.ErrNotExist
			}
			return []byte(data), nil
		},
	}
}

func TestResolve_Precedence(t *testing.T) {
	home := "/home/test"
	keyFile := KeyFilePath(home)

	tests := []struct {
		name       string
		cfg        map[string]any
		env        map[string]string
		files      map[string]string
		wantKey    string
		wantSource Source
	}{
		{
			name:       "all three present, config wins",
			cfg:        map[string]any{"apiKey": "cfg-key"},
			env:        map[string]string{EnvVar: "env-key"},
			files:      map[string]string{keyFile: "file-key\n"},
			wantKey:    "cfg-key",
			wantSource: SourceConfig,
		},
		{
			name:       "env over file",
			cfg:        map[string]any{},
			env:        map[string]string{EnvVar: "env-key"},
			files:      map[string]string{keyFile: "file-key"},
			wantKey:    "env-key",
			wantSource: SourceEnv,
		},
		{
			name:       "file trimmed",
			cfg:        nil,
			files:      map[string]string{keyFile: "  file-key \n"},
			wantKey:    "file-key",
			wantSource: SourceFile,
		},
		{
			name:       "non-string apiKey ignored",
			cfg:        map[string]any{"apiKey": 12345},
			env:        map[string]string{EnvVar: "env-key"},
			wantKey:    "env-key",
			wantSource: SourceEnv,
		},
		{
			name:       "empty apiKey ignored",
			cfg:        map[string]any{"apiKey": ""},
			files:      map[string]string{keyFile: "file-key"},
			wantKey:    "file-key",
			wantSource: SourceFile,
		},
		{
			name:       "empty file means no key",
			files:      map[string]string{keyFile: "   \n"},
			wantKey:    "",
			wantSource: SourceNone,
		},
		{
			name:       "nothing anywhere",
			wantKey:    "",
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fakeResolver(tt.env, home, tt.files)

			key, src := r.Resolve(tt.cfg)
			if key != tt.wantKey {
				t.Errorf("Resolve() key = %q, want %q", key, tt.wantKey)
			}
			if src != tt.wantSource {
				t.Errorf("Resolve() source = %q, want %q", src, tt.wantSource)
			}
		})
	}
}

func TestResolve_FileErrorsSwallowed(t *testing.T) {
	r := Resolver{
		Getenv:  func(string) string { return "" },
		HomeDir: func() (string, error) { return "/home/test", nil },
		ReadFile: func(string) ([]byte, error) {
			return nil, fs.ErrPermission
		},
	}

	key, src := r.Resolve(nil)
	if key != "" || src != SourceNone {
		t.Errorf("Resolve() = (%q, %q), want no key", key, src)
	}

	r = fakeResolver(nil, "", nil)
	if key, src := r.Resolve(nil); key != "" || src != SourceNone {
		t.Errorf("Resolve() without home = (%q, %q), want no key", key, src)
	}
}

func TestResolve_NotCached(t *testing.T) {
	env := map[string]string{EnvVar: "first"}
	r := fakeResolver(env, "", nil)

	if key, _ := r.Resolve(nil); key != "first" {
		t.Fatalf("Resolve() = %q, want first", key)
	}
	env[EnvVar] = "second"
	if key, _ := r.Resolve(nil); key != "second" {
		t.Errorf("Resolve() = %q, want second", key)
	}
}

func TestResolve_RealFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvVar, "")

	dir := filepath.Join(home, ".config", "kagi")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "api_key"), []byte("disk-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	key, src := Resolve(map[string]any{})
	if key != "disk-key" || src != SourceFile {
		t.Errorf("Resolve() = (%q, %q), want (disk-key, file)", key, src)
	}
}
