package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, requires every assertion to hold,
// and compares the full report serialization against the golden file
// testdata/golden/{scenario.Name}.golden.
//
// Report JSON is deterministic: struct fields serialize in declaration
// order and histogram keys sort, so equal reports are byte-identical.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Pass {
		return fmt.Errorf("scenario %s: %v", scenario.Name, result.Errors)
	}

	reportJSON, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		return err
	}
	// Golden files end with a newline.
	reportJSON = append(reportJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, reportJSON)

	return nil
}
