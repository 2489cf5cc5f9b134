package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FiQCI/qflip/internal/store"
)

// newFlipTest wires a flip command writing into buf.
func newFlipTest(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewFlipCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestFlipPerQubitOnSimulator(t *testing.T) {
	buf, err := newFlipTest(t, "text", "--qubits", "0,2", "--shots", "100", "--seed", "7")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "per-qubit run on simulator (device helmi, 100 shots)")
	assert.Contains(t, out, "QB1:")
	assert.Contains(t, out, "QB3:")
	assert.Contains(t, out, "100.00%", "a flipped qubit always reads one in simulation")
	assert.Contains(t, out, "jobs: 2, succeeded: 2, failed: 0")
}

func TestFlipAllQubitsByDefault(t *testing.T) {
	buf, err := newFlipTest(t, "text", "--shots", "50", "--seed", "7")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "all-qubits run on simulator")
	assert.Contains(t, out, "QB1+QB2+QB3+QB4+QB5:")
	assert.Contains(t, out, `"11111": 50`)
	assert.Contains(t, out, "jobs: 1, succeeded: 1, failed: 0")
}

func TestFlipRemoteWithoutEndpoint(t *testing.T) {
	t.Setenv("HELMI_CORTEX_URL", "")

	_, err := newFlipTest(t, "text", "--target", "remote", "--qubits", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "HELMI_CORTEX_URL")
}

func TestFlipUnknownTarget(t *testing.T) {
	_, err := newFlipTest(t, "text", "--target", "mars")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown target")
}

func TestFlipUnknownDevice(t *testing.T) {
	_, err := newFlipTest(t, "text", "--device", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestFlipRejectsZeroShots(t *testing.T) {
	_, err := newFlipTest(t, "text", "--shots", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid input")
}

func TestFlipJSONOutput(t *testing.T) {
	buf, err := newFlipTest(t, "json", "--qubits", "4", "--shots", "100", "--seed", "7")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "simulator", data["target"])
	assert.Equal(t, "per-qubit", data["mode"])
	entries, ok := data["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "1", entry["desired"])
	assert.Equal(t, 1.0, entry["probability"])
}

func TestFlipJSONConfigErrorEnvelope(t *testing.T) {
	t.Setenv("HELMI_CORTEX_URL", "")

	buf, err := newFlipTest(t, "json", "--target", "remote", "--qubits", "0")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "config", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "HELMI_CORTEX_URL")
}

func TestFlipRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := newFlipTest(t, "text", "--qubits", "0,1", "--shots", "100", "--seed", "7", "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Equal(t, "simulator", r.Target)
		assert.Equal(t, "helmi", r.Device)
		assert.Equal(t, "1", r.Desired)
		assert.Equal(t, 1.0, r.Probability)
	}
}
