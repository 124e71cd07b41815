package check

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/broady/valtype/cmd/valtype/internal/engine"
	"github.com/broady/valtype/internal/jsonvalue"
)

type Cmd struct {
	engine.Flags `embed:""`

	Type  string `arg:"" help:"Type declaration, e.g. 'int|null'."`
	Value string `arg:"" help:"JSON value to check, or - to read it from stdin." default:"-"`
	Cast  bool   `help:"Cast the value and print the result." short:"c"`
}

func (c *Cmd) Run() error {
	return c.run(context.Background(), os.Stdin, os.Stdout)
}

func (c *Cmd) run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	text := c.Value
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read value: %w", err)
		}
		text = string(data)
	}
	value, err := jsonvalue.Decode(text)
	if err != nil {
		return err
	}

	e, err := c.New()
	if err != nil {
		return err
	}
	v, err := e.Validator(ctx, c.Type)
	if err != nil {
		return err
	}

	if !c.Cast {
		if !v.Accepts(value) {
			return fmt.Errorf("value is not accepted by `%s`", v.Signature())
		}
		fmt.Fprintf(stdout, "✓ accepted by %s\n", v.Signature())
		return nil
	}

	out, err := v.Cast(value)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	return enc.Encode(jsonvalue.ForJSON(out))
}
