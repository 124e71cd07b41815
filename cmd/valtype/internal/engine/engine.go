// Package engine holds the flags shared by every command that needs a
// valtype.Engine.
package engine

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/broady/valtype"
)

// Flags configure an Engine from the command line. Embed them in a command.
type Flags struct {
	Aliases  string `help:"YAML file mapping alias names to declarations." type:"existingfile" short:"a"`
	CacheDir string `help:"Directory persisting compiled validators." name:"cache-dir" env:"VALTYPE_CACHE_DIR"`
	Verbose  bool   `help:"Log cache and engine events." short:"v"`
}

// Logger returns the logger of the command.
func (f *Flags) Logger() *slog.Logger {
	level := slog.LevelWarn
	if f.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// New creates the Engine described by the flags.
func (f *Flags) New() (*valtype.Engine, error) {
	cfg := valtype.Config{
		CacheDir: f.CacheDir,
		Logger:   f.Logger(),
	}
	if f.Aliases != "" {
		aliases, err := LoadAliases(f.Aliases)
		if err != nil {
			return nil, err
		}
		cfg.Aliases = aliases
	}
	return valtype.New(cfg)
}

// LoadAliases reads an alias file:
//
//	UserId: int|string
//	Status: "'active'|'disabled'"
//	User: "array{id: UserId, status: Status}"
//
// Declarations starting with a quote, '[' or '{' must be quoted in YAML.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	var aliases map[string]string
	if err := yaml.UnmarshalStrict(data, &aliases); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	return aliases, nil
}
