package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tsplot/test/integration/validate"
)

func TestValidate(t *testing.T) {
	// Tests config.
	config := validate.NewConfig(t)

	// Tests.
	tests := map[string]struct {
		valCmdArgs string
		expStdout  []string
		expErr     bool
	}{
		"A good document should validate correctly.": {
			valCmdArgs: "--input ./testdata/good.json",
			expStdout:  []string{"Requests", "Latency", "single", "multi", "TOTAL"},
		},

		"An empty document should validate correctly.": {
			valCmdArgs: "--input ./testdata/empty.json",
			expStdout:  []string{"TOTAL"},
		},

		"A document that is not an array should fail.": {
			valCmdArgs: "--input ./testdata/bad-data-format.json",
			expErr:     true,
		},

		"A document with invalid rows should fail.": {
			valCmdArgs: "--input ./testdata/bad-row-format.json",
			expErr:     true,
		},

		"A document mixing single and multi rows should fail.": {
			valCmdArgs: "--input ./testdata/bad-mixed-rows.json",
			expErr:     true,
		},

		"A missing document should fail.": {
			valCmdArgs: "--input ./testdata/missing.json",
			expErr:     true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			// Run with context to stop on test end.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			stdout, _, err := validate.RunTSPlotValidate(ctx, config, test.valCmdArgs)

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				for _, s := range test.expStdout {
					assert.Contains(string(stdout), s)
				}
			}
		})
	}
}

func TestVersion(t *testing.T) {
	config := validate.NewConfig(t)

	version, err := config.Cmd().Version(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, version)
}
