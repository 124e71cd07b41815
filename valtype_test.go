package valtype

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/broady/valtype/compiler"
	"github.com/broady/valtype/types"
)

func newTestEngine(t *testing.T, cfg Config) (*Engine, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	cfg.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e, &logs
}

func TestEngine_Accepts(t *testing.T) {
	e, _ := newTestEngine(t, Config{})
	ctx := context.Background()

	tests := []struct {
		decl  string
		value any
		want  bool
	}{
		{"int|null", nil, true},
		{"int|null", 3, true},
		{"int|null", "3", false},
		{"'Schwifty'", "Schwifty", true},
		{"'Schwifty'", "schwifty", false},
		{"list<int>", []any{1, 2}, true},
		{"list<int>", []any{1, "2"}, false},
		{"array{id: int, name?: string}", map[string]any{"id": 1}, true},
		{"array{id: int, name?: string}", map[string]any{"name": "x"}, false},
		{"mixed", struct{}{}, true},
	}
	for _, tt := range tests {
		got, err := e.Accepts(ctx, tt.decl, tt.value)
		if err != nil {
			t.Errorf("Accepts(%q, %v) error = %v", tt.decl, tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Accepts(%q, %v) = %v, want %v", tt.decl, tt.value, got, tt.want)
		}
	}
}

func TestEngine_Cast(t *testing.T) {
	e, _ := newTestEngine(t, Config{})
	ctx := context.Background()

	tests := []struct {
		decl  string
		value any
		want  any
	}{
		{"int", "42", int64(42)},
		{"float", "1.5", 1.5},
		{"string", 12, "12"},
		{"'Schwifty'|int", "Schwifty", "Schwifty"},
		{"list<int>", []string{"1", "2"}, []any{int64(1), int64(2)}},
		{"array{id: int}", map[string]any{"id": "7"}, map[string]any{"id": int64(7)}},
	}
	for _, tt := range tests {
		got, err := e.Cast(ctx, tt.decl, tt.value)
		if err != nil {
			t.Errorf("Cast(%q, %v) error = %v", tt.decl, tt.value, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Cast(%q, %v) mismatch (-want +got):\n%s", tt.decl, tt.value, diff)
		}
	}

	if _, err := e.Cast(ctx, "int", true); !types.IsCode(err, types.CodeInvalidValueType) {
		t.Errorf("Cast(int, true) error = %v, want code %q", err, types.CodeInvalidValueType)
	}
	if _, err := e.Cast(ctx, "int|'foo'", "bar"); !types.IsCode(err, types.CodeUnionCastFailed) {
		t.Errorf("Cast(int|'foo', bar) error = %v, want code %q", err, types.CodeUnionCastFailed)
	}
}

func TestEngine_InvalidDeclaration(t *testing.T) {
	e, _ := newTestEngine(t, Config{})
	ctx := context.Background()

	for _, decl := range []string{"int|", "UserId", "array<float, int>", "mixed|int"} {
		if _, err := e.Accepts(ctx, decl, 1); err == nil {
			t.Errorf("Accepts(%q) error = nil", decl)
		}
		if _, err := e.Cast(ctx, decl, 1); err == nil {
			t.Errorf("Cast(%q) error = nil", decl)
		}
	}
	if _, err := e.Parse("mixed|int"); !types.IsCode(err, types.CodeForbiddenMixedType) {
		t.Errorf("Parse(mixed|int) error = %v, want code %q", err, types.CodeForbiddenMixedType)
	}
}

func TestEngine_Aliases(t *testing.T) {
	e, _ := newTestEngine(t, Config{Aliases: map[string]string{
		"UserId": "int|string",
		"Users":  "list<array{id: UserId}>",
	}})
	ctx := context.Background()

	typ, err := e.Parse("?UserId")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := typ.String(), "null|int|string"; got != want {
		t.Errorf("Parse(?UserId) = %q, want %q", got, want)
	}

	ok, err := e.Accepts(ctx, "Users", []any{map[string]any{"id": "u1"}})
	if err != nil || !ok {
		t.Errorf("Accepts(Users) = %v, %v, want true, nil", ok, err)
	}

	if _, err := New(Config{Aliases: map[string]string{"A": "B"}}); !types.IsCode(err, types.CodeInvalidConfig) {
		t.Errorf("New() with unresolvable alias error = %v, want code %q", err, types.CodeInvalidConfig)
	}
}

func TestEngine_InvalidConfig(t *testing.T) {
	_, err := New(Config{CacheSize: -5})
	if !types.IsCode(err, types.CodeInvalidConfig) {
		t.Fatalf("New() error = %v, want code %q", err, types.CodeInvalidConfig)
	}
	var e *types.Error
	if !errors.As(err, &e) || e.Details["CacheSize"] == nil {
		t.Errorf("New() error details = %v, want a CacheSize entry", e)
	}
}

func TestEngine_CacheDir(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	warm, _ := newTestEngine(t, Config{CacheDir: dir})
	if _, err := warm.Cast(ctx, "list<float>", []any{"1.5"}); err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	var artifacts int
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".program.json") {
			artifacts++
		}
	}
	if artifacts != 1 {
		t.Errorf("found %d stored artifacts, want 1", artifacts)
	}

	cold, logs := newTestEngine(t, Config{CacheDir: dir})
	ok, err := cold.Accepts(ctx, "list<float>", []any{1.5})
	if err != nil || !ok {
		t.Errorf("Accepts() = %v, %v, want true, nil", ok, err)
	}
	if !strings.Contains(logs.String(), "validator loaded from store") {
		t.Errorf("logs = %q, want a store load", logs.String())
	}
}

func TestEngine_Compile(t *testing.T) {
	e, _ := newTestEngine(t, Config{})

	a, err := e.Compile("int|null", compiler.FormatGo)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if a.Format != compiler.FormatGo || a.Signature != "int|null" {
		t.Errorf("Compile() = %s %q, want go %q", a.Format, a.Signature, "int|null")
	}
	if !bytes.Contains(a.Source, []byte("func Validate(")) {
		t.Errorf("Compile() source = %s, want a Validate func", a.Source)
	}

	p, err := e.Compile("int|null", compiler.FormatProgram)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	v, err := compiler.Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !v.Accepts(nil) {
		t.Error("loaded program does not accept nil")
	}

	if _, err := e.Compile("int", "cobol"); err == nil || !strings.Contains(err.Error(), `unknown format: "cobol"`) {
		t.Errorf("Compile(cobol) error = %v", err)
	}
	if _, err := e.Compile("int|", compiler.FormatGo); !types.IsCode(err, types.CodeInvalidDeclaration) {
		t.Errorf("Compile(int|) error = %v, want code %q", err, types.CodeInvalidDeclaration)
	}
}
