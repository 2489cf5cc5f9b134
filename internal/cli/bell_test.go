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

func newBellTest(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewBellCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestBellOnSimulator(t *testing.T) {
	buf, err := newBellTest(t, "text", "--shots", "200", "--seed", "11")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "bell run on simulator (device helmi, 200 shots)")
	assert.Contains(t, out, "job id:")
	assert.Contains(t, out, "jobs: 1, succeeded: 1, failed: 0")
}

func TestBellCountsOnlyCorrelated(t *testing.T) {
	buf, err := newBellTest(t, "json", "--shots", "200", "--seed", "11")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	entries := data["entries"].([]any)
	require.Len(t, entries, 1)
	counts := entries[0].(map[string]any)["counts"].(map[string]any)

	total := 0.0
	for key, n := range counts {
		assert.Contains(t, []string{"00", "11"}, key, "a Bell pair only reads correlated bits")
		total += n.(float64)
	}
	assert.Equal(t, 200.0, total, "the histogram accounts for every shot")
}

func TestBellRemoteWithoutEndpoint(t *testing.T) {
	t.Setenv("HELMI_CORTEX_URL", "")

	_, err := newBellTest(t, "text", "--target", "remote")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBellRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := newBellTest(t, "text", "--shots", "100", "--seed", "11", "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "bell", runs[0].Mode)
	assert.Empty(t, runs[0].Desired, "bell runs are not scored")
}
