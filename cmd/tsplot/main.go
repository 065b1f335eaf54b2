package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/slok/tsplot/cmd/tsplot/commands"
)

// Run runs the tsplot CLI with the args (args[0] being the program name).
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("tsplot", "Time series charts with zoom, rendered on the server.")
	app.DefaultEnvars()
	config := commands.NewRootConfig(app)

	cmds := map[string]commands.Command{}
	for _, cmd := range []commands.Command{
		commands.NewServerCommand(app),
		commands.NewValidateCommand(app),
		commands.NewVersionCommand(app),
	} {
		cmds[cmd.Name()] = cmd
	}

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	config.Stdin = stdin
	config.Stdout = stdout
	config.Stderr = stderr
	config.Logger = commands.NewLogger(config.Logging, stderr)

	err = cmds[cmdName].Run(ctx, *config)
	if err != nil {
		return fmt.Errorf("%q command failed: %w", cmdName, err)
	}

	return nil
}

func main() {
	// Flags can be set with `TSPLOT_*` env vars, also from an optional `.env` file.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
