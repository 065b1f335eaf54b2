// Package commands has the tsplot CLI commands.
package commands

import (
	"context"
	"io"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tsplot/internal/log"
)

// Command is a tsplot subcommand. Commands register their flags when created
// and are run after the command line has been parsed.
type Command interface {
	Name() string
	Run(ctx context.Context, config RootConfig) error
}

// RootConfig has the global flags and the dependencies shared by all the commands.
type RootConfig struct {
	Logging LoggerConfig

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootConfig registers the global flags on the app.
func NewRootConfig(app *kingpin.Application) *RootConfig {
	c := &RootConfig{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Logging.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.Logging.Disabled)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.Logging.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerFormatText).EnumVar(&c.Logging.Format, LoggerFormatText, LoggerFormatJSON)
	app.Flag("log-file", "Also write the logs on this file, rotated by size.").StringVar(&c.Logging.File)

	return c
}
