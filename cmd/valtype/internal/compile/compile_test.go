package compile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/valtype/compiler"
	"github.com/broady/valtype/types"
)

func TestCmd_Program(t *testing.T) {
	var out bytes.Buffer
	c := Cmd{Type: "?int", Format: compiler.FormatProgram}
	if err := c.run(&out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	var p compiler.Program
	if err := json.Unmarshal(out.Bytes(), &p); err != nil {
		t.Fatalf("output is not a program: %v\n%s", err, out.String())
	}
	if p.Signature != "null|int" {
		t.Errorf("Signature = %q, want %q", p.Signature, "null|int")
	}
}

func TestCmd_Go(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.go")
	c := Cmd{Type: "array{id: int}", Format: compiler.FormatGo, Package: "users", Func: "ValidUser", Out: path}
	if err := c.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{"package users", "func ValidUser(v interface{}) bool"} {
		if !strings.Contains(string(src), want) {
			t.Errorf("source missing %q:\n%s", want, src)
		}
	}
}

func TestCmd_Errors(t *testing.T) {
	if err := (&Cmd{Type: "int|", Format: compiler.FormatGo}).run(&bytes.Buffer{}); !types.IsCode(err, types.CodeInvalidDeclaration) {
		t.Errorf("run(int|) error = %v, want code %q", err, types.CodeInvalidDeclaration)
	}
	if err := (&Cmd{Type: "int", Format: "cobol"}).run(&bytes.Buffer{}); err == nil {
		t.Error("run() with unknown format error = nil")
	}
}
