package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/valtype/cmd/valtype/internal/check"
	"github.com/broady/valtype/cmd/valtype/internal/compile"
	"github.com/broady/valtype/cmd/valtype/internal/serve"
)

type CLI struct {
	Version VersionCmd  `cmd:"" help:"Print version information."`
	Check   check.Cmd   `cmd:"" help:"Check or cast a JSON value against a type declaration."`
	Compile compile.Cmd `cmd:"" help:"Compile a type declaration to a validation program or Go source."`
	Serve   serve.Cmd   `cmd:"" help:"Serve checks over HTTP."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("valtype"),
		kong.Description("Check and cast values against type declarations."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
