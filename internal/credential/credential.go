// Package credential resolves the Kagi API key from plugin config, the
// environment and the per-user key file, in that order.
package credential

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvVar = "KAGI_API_KEY"
	// ConfigKey - поле apiKey в конфиге плагина
	ConfigKey = "apiKey"
)

// Source says which layer supplied the key.
type Source string

const (
	SourceNone   Source = ""
	SourceConfig Source = "config"
	SourceEnv    Source = "env"
	SourceFile   Source = "file"
)

// Resolver holds the OS lookups so tests can swap them out.
type Resolver struct {
	Getenv   func(string) string
	HomeDir  func() (string, error)
	ReadFile func(string) ([]byte, error)
}

// OS returns a Resolver backed by the real process environment and filesystem.
func OS() Resolver {
	return Resolver{
		Getenv:   os.Getenv,
		HomeDir:  os.UserHomeDir,
		ReadFile: os.ReadFile,
	}
}

// KeyFilePath returns <home>/.config/kagi/api_key.
func KeyFilePath(home string) string {
	return filepath.Join(home, ".config", "kagi", "api_key")
}

// Resolve is Resolver.Resolve with OS lookups.
func Resolve(pluginConfig map[string]any) (string, Source) {
	return OS().Resolve(pluginConfig)
}

// Resolve returns the first non-empty key: pluginConfig["apiKey"], then
// $KAGI_API_KEY, then the trimmed key file. Nothing is cached; every call
// looks again. SourceNone means no key was found.
func (r Resolver) Resolve(pluginConfig map[string]any) (string, Source) {
	if key, ok := fromConfig(pluginConfig); ok {
		return key, SourceConfig
	}
	if key, ok := r.fromEnv(); ok {
		return key, SourceEnv
	}
	if key, ok := r.fromFile(); ok {
		return key, SourceFile
	}
	return "", SourceNone
}

func fromConfig(cfg map[string]any) (string, bool) {
	// только строка, числа и прочее игнорируем
	key, ok := cfg[ConfigKey].(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (r Resolver) fromEnv() (string, bool) {
	if r.Getenv == nil {
		return "", false
	}
	key := r.Getenv(EnvVar)
	return key, key != ""
}

// любая ошибка чтения файла == ключа нет
func (r Resolver) fromFile() (string, bool) {
	if r.HomeDir == nil || r.ReadFile == nil {
		return "", false
	}
	home, err := r.HomeDir()
	if err != nil {
		return "", false
	}
	data, err := r.ReadFile(KeyFilePath(home))
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(string(data))
	return key, key != ""
}
