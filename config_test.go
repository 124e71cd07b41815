package valtype

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/broady/valtype/types"
)

func TestApplyConfigDefaults(t *testing.T) {
	in := &Config{}
	got := applyConfigDefaults(in)

	if got.CacheSize != 1024 {
		t.Errorf("CacheSize = %d, want 1024", got.CacheSize)
	}
	if got.ParserCacheSize != 512 {
		t.Errorf("ParserCacheSize = %d, want 512", got.ParserCacheSize)
	}
	if got.Logger != slog.Default() {
		t.Error("Logger is not slog.Default()")
	}
	if in.CacheSize != 0 || in.Logger != nil {
		t.Error("applyConfigDefaults mutated its input")
	}

	kept := applyConfigDefaults(&Config{CacheSize: 7})
	if kept.CacheSize != 7 {
		t.Errorf("CacheSize = %d, want 7", kept.CacheSize)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero", Config{}, ""},
		{"aliases", Config{Aliases: map[string]string{"UserId": "int", "Name_2": "string"}}, ""},
		{"negative cache", Config{CacheSize: -1}, "CacheSize: must be at least 0"},
		{"huge parser cache", Config{ParserCacheSize: 2000000}, "ParserCacheSize: must be at most 1000000"},
		{"bad alias name", Config{Aliases: map[string]string{"1x": "int"}}, "must be a name made of letters"},
		{"empty alias", Config{Aliases: map[string]string{"Empty": ""}}, "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(applyConfigDefaults(&tt.cfg))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateConfig() error = %v, want nil", err)
				}
				return
			}
			if !types.IsCode(err, types.CodeInvalidConfig) {
				t.Fatalf("validateConfig() error = %v, want code %q", err, types.CodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateConfig() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveAliases(t *testing.T) {
	got, err := resolveAliases(map[string]string{
		"Ids":    "list<UserId>",
		"UserId": "int",
		"Maybe":  "?Ids",
	})
	if err != nil {
		t.Fatalf("resolveAliases() error = %v", err)
	}
	want := map[string]string{
		"UserId": "int",
		"Ids":    "list<int>",
		"Maybe":  "null|list<int>",
	}
	for name, sig := range want {
		if got[name] == nil {
			t.Errorf("alias %s not resolved", name)
			continue
		}
		if s := got[name].String(); s != sig {
			t.Errorf("alias %s = %q, want %q", name, s, sig)
		}
	}
}

func TestResolveAliases_Errors(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		wantErr string
	}{
		{"cycle", map[string]string{"A": "B", "B": "A"}, "Alias `A` cannot be resolved"},
		{"self", map[string]string{"Self": "list<Self>"}, "Alias `Self` cannot be resolved"},
		{"syntax", map[string]string{"Bad": "int|"}, "Unexpected end of declaration"},
		{"shadow", map[string]string{"int": "string"}, "Alias `int` shadows a built-in type."},
		{"shadow any case", map[string]string{"Bool": "int"}, "Alias `Bool` shadows a built-in type."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveAliases(tt.aliases)
			if !types.IsCode(err, types.CodeInvalidConfig) {
				t.Fatalf("resolveAliases() error = %v, want code %q", err, types.CodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("resolveAliases() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
