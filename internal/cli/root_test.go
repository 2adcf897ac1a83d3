package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakoc/buildstamp/internal/cli"
	"github.com/vakoc/buildstamp/pkg/log"
)

func TestRootCmdVersionFlag(t *testing.T) {
	t.Parallel()

	tc := cli.NewRootCmd("test_root", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs([]string{"--version"})
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()
	require.NoError(t, err)
	assert.Regexp(t, `\d+\.\d+\.\d+`, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRootCmdInvalidLogFormat(t *testing.T) {
	t.Parallel()

	tc := cli.NewRootCmd("test_root", "", "")
	tc.SetArgs([]string{"version", "--log_format", "xml"})
	tc.SetOut(&bytes.Buffer{})
	tc.SetErr(&bytes.Buffer{})

	err := tc.Execute()
	require.ErrorIs(t, err, cli.ErrLogHandlerFailed)
	require.ErrorIs(t, err, log.ErrInvalidLogFormat)
}

func TestRootCmdInvalidLogLevel(t *testing.T) {
	t.Parallel()

	tc := cli.NewRootCmd("test_root", "", "")
	tc.SetArgs([]string{"version", "--log_level", "loud"})
	tc.SetOut(&bytes.Buffer{})
	tc.SetErr(&bytes.Buffer{})

	err := tc.Execute()
	require.ErrorIs(t, err, log.ErrInvalidLogLevel)
}
