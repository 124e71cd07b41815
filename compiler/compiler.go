// Package compiler turns types into artifacts: a portable validation
// program that can be loaded back into a Validator, or Go source.
package compiler

import (
	"fmt"

	"github.com/broady/valtype/types"
)

// Artifact formats.
const (
	FormatProgram = "program"
	FormatGo      = "go"
)

// Artifact is the compiled form of a type.
type Artifact struct {
	// Signature is the canonical rendering of the compiled type.
	Signature string `json:"signature"`
	// Format names the compiler that produced Source.
	Format string `json:"format"`
	Source []byte `json:"source"`
}

// Compiler compiles a type into an artifact.
type Compiler interface {
	// Format returns the artifact format identifier (e.g., "program", "go").
	Format() string

	// CompileValidation compiles t. Variants the compiler does not know
	// fail with an unsupported_type error.
	CompileValidation(t types.Type) (*Artifact, error)
}

// Get returns a compiler by format, or an error if unknown.
func Get(format string) (Compiler, error) {
	switch format {
	case FormatProgram:
		return &ProgramCompiler{}, nil
	case FormatGo:
		return &GoCompiler{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

func unsupported(t types.Type, format string) *types.Error {
	return types.Errorf(types.CodeUnsupportedType, "Type `%s` of kind %s cannot be compiled to %s.", t, t.Kind(), format).
		WithDetail("kind", t.Kind().String())
}
