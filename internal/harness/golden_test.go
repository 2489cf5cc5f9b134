package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenarioGoldens(t *testing.T) {
	for _, path := range scenarioFiles(t) {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}
