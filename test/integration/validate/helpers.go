package validate

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/slok/tsplot/test/integration/testutils"
)

type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "tsplot"
	}

	_, err := exec.LookPath(c.Binary)
	if err != nil {
		return fmt.Errorf("tsplot binary missing in %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig prepares the configuration for integration tests, if the configuration is not ready
// it will skip the test.
func NewConfig(t *testing.T) Config {
	const (
		envTSPlotBin = "TSPLOT_INTEGRATION_BINARY"
	)

	c := Config{
		Binary: os.Getenv(envTSPlotBin),
	}

	err := c.defaults()
	if err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Cmd returns the command used to run the tsplot binary under test.
func (c Config) Cmd() testutils.TSPlotCmd {
	return testutils.TSPlotCmd{Binary: c.Binary, Quiet: true}
}

func RunTSPlotValidate(ctx context.Context, config Config, cmdArgs string) (stdout, stderr []byte, err error) {
	return config.Cmd().Run(ctx, "validate "+cmdArgs)
}
