package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakoc/buildstamp/internal/cli"
)

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	tc := cli.NewRootCmd("test_schema", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs([]string{"schema"})
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()
	require.NoError(t, err)
	assert.Empty(t, stderr.String())

	var doc map[string]any

	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Contains(t, doc, "$schema")
	assert.Contains(t, doc, "properties")
}
