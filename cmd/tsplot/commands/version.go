package commands

import (
	"context"
	"fmt"
	"runtime"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tsplot/internal/info"
)

type versionCommand struct {
	verbose bool
}

// NewVersionCommand returns the version command.
func NewVersionCommand(app *kingpin.Application) Command {
	c := &versionCommand{}
	cmd := app.Command("version", "Shows version.")
	cmd.Flag("verbose", "Also show the Go version and platform.").Short('v').BoolVar(&c.verbose)

	return c
}

func (versionCommand) Name() string { return "version" }

func (v versionCommand) Run(_ context.Context, config RootConfig) error {
	if !v.verbose {
		_, err := fmt.Fprint(config.Stdout, info.Version)
		return err
	}

	_, err := fmt.Fprintf(config.Stdout, "version: %s\ngo: %s\nplatform: %s/%s\n", info.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}
