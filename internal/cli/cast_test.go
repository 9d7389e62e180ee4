package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastUpSucceeds(t *testing.T) {
	dir := writeVariantsDir(t, validVariantsCUE)
	tablePath := writeTableFile(t, "orders.yaml", `
columns:
  - name: id
    kind: int
    cells: [1, 2, 3]
  - name: amount
    kind: float
    cells: [10.5, 20.5, 30.5]
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCastCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tablePath, "--variants", dir, "--to", "orders"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tag: orders")
	assert.Contains(t, buf.String(), "amount")
}

func TestCastDownToBase(t *testing.T) {
	dir := writeVariantsDir(t, validVariantsCUE)
	tablePath := writeTableFile(t, "orders.yaml", ordersTableYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCastCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tablePath, "--variants", dir, "--to", "base"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result InstanceResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "base", result.Tag)
	assert.Equal(t, 3, result.Rows)
}

func TestCastUpRefused(t *testing.T) {
	dir := writeVariantsDir(t, validVariantsCUE)
	// Duplicate key values cannot carry the keyed tag.
	tablePath := writeTableFile(t, "dup.yaml", `
columns:
  - name: id
    kind: int
    cells: [1, 1]
  - name: amount
    kind: float
    cells: [10.5, 20.5]
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCastCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tablePath, "--variants", dir, "--to", "orders"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "CAST_INCOMPATIBLE")
}

func TestCastUnknownTag(t *testing.T) {
	dir := writeVariantsDir(t, validVariantsCUE)
	tablePath := writeTableFile(t, "orders.yaml", ordersTableYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCastCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tablePath, "--variants", dir, "--to", "nonexistent"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "UNKNOWN_TAG")
}
