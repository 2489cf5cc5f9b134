package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioFiles returns every scenario under testdata/scenarios.
func scenarioFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no scenarios in testdata/scenarios")
	return files
}

func TestScenariosPass(t *testing.T) {
	for _, path := range scenarioFiles(t) {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "assertion failures: %v", result.Errors)
			assert.Empty(t, result.Errors)
			require.NotNil(t, result.Report)
		})
	}
}

func TestRunReportsAssertionFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong-expectations",
		Description: "deliberately wrong assertions",
		Mode:        ModeFlip,
		Qubits:      []int{0},
		Shots:       1000,
		Jobs: []JobScript{
			{JobID: "job-1", Counts: map[string]int{"1": 700, "0": 300}},
		},
		Assertions: []Assertion{
			{Type: AssertEntryProbability, Entry: 0, Probability: 0.9},
			{Type: AssertFailureCount, Count: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err, "failed assertions are a result, not an error")
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "probability 0.7")
	assert.Contains(t, result.Errors[1], "expected 1 failed entries, got 0")
}

func TestRunPartialFailureContract(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "flip-partial-failure.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	rep := result.Report
	require.Len(t, rep.Entries, 3)
	assert.False(t, rep.Entries[0].Failed())
	assert.True(t, rep.Entries[1].Failed())
	assert.False(t, rep.Entries[2].Failed(), "the loop continued past the failure")
}

func TestRunUnknownDevice(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad-device",
		Description: "references a profile that does not exist",
		Device:      "nope",
		Mode:        ModeBell,
		Shots:       100,
		Jobs:        []JobScript{{JobID: "j1", Counts: map[string]int{"00": 100}}},
		Assertions:  []Assertion{{Type: AssertEntryCount, Count: 1}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRunEntryIndexOutOfRange(t *testing.T) {
	scenario := &Scenario{
		Name:        "index-out-of-range",
		Description: "assertion addresses a missing entry",
		Mode:        ModeFlip,
		Qubits:      []int{0},
		Shots:       100,
		Jobs:        []JobScript{{JobID: "j1", Counts: map[string]int{"1": 100}}},
		Assertions:  []Assertion{{Type: AssertEntryOK, Entry: 5}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "outside report")
}
