package compile

import (
	"fmt"
	"io"
	"os"

	"github.com/broady/valtype/cmd/valtype/internal/engine"
	"github.com/broady/valtype/compiler"
)

type Cmd struct {
	engine.Flags `embed:""`

	Type    string `arg:"" help:"Type declaration to compile."`
	Format  string `help:"Output format." enum:"program,go" default:"program" short:"f"`
	Package string `help:"Package name of generated Go source." default:"validation"`
	Func    string `help:"Function name of generated Go source." default:"Validate"`
	Out     string `help:"Output file (default: stdout)." short:"o"`
}

func (c *Cmd) Run() error {
	if c.Out == "" {
		return c.run(os.Stdout)
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	if err := c.run(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *Cmd) run(w io.Writer) error {
	e, err := c.New()
	if err != nil {
		return err
	}
	t, err := e.Parse(c.Type)
	if err != nil {
		return err
	}

	var comp compiler.Compiler
	switch c.Format {
	case compiler.FormatGo:
		comp = &compiler.GoCompiler{Package: c.Package, FuncName: c.Func}
	default:
		comp, err = compiler.Get(c.Format)
		if err != nil {
			return err
		}
	}
	a, err := comp.CompileValidation(t)
	if err != nil {
		return err
	}
	if _, err := w.Write(a.Source); err != nil {
		return fmt.Errorf("write %s: %w", a.Format, err)
	}
	return nil
}
