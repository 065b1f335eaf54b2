package testutils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TSPlotCmd runs a tsplot binary.
type TSPlotCmd struct {
	Binary string
	Env    []string
	// Quiet disables the logger so stdout only has the command output.
	Quiet bool
}

// Run executes tsplot with the args, these are split by whitespace.
func (c TSPlotCmd) Run(ctx context.Context, args string) (stdout, stderr []byte, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Binary, strings.Fields(args)...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	cmd.Env = append(os.Environ(), c.Env...)
	if c.Quiet {
		cmd.Env = append(cmd.Env, "TSPLOT_NO_LOG=true", "TSPLOT_NO_COLOR=true")
	}

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Version returns the version reported by the tsplot binary.
func (c TSPlotCmd) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.Run(ctx, "version")
	if err != nil {
		return "", fmt.Errorf("could not get version: %s: %w", stderr, err)
	}

	return strings.TrimSpace(string(stdout)), nil
}
