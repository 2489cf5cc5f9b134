package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/FiQCI/qflip/internal/workflow"
)

// probabilityTolerance absorbs float formatting noise between YAML and
// the report; scored probabilities are exact ratios of small integers.
const probabilityTolerance = 1e-9

// checkAssertion validates one assertion against the report.
func checkAssertion(rep *workflow.Report, a *Assertion) error {
	switch a.Type {
	case AssertEntryCount:
		if len(rep.Entries) != a.Count {
			return fmt.Errorf("expected %d entries, got %d", a.Count, len(rep.Entries))
		}
		return nil

	case AssertFailureCount:
		if got := rep.Failures(); got != a.Count {
			return fmt.Errorf("expected %d failed entries, got %d", a.Count, got)
		}
		return nil

	case AssertReportMode:
		if rep.Mode != a.Mode {
			return fmt.Errorf("expected mode %q, got %q", a.Mode, rep.Mode)
		}
		return nil
	}

	// The remaining types address a single entry.
	out, err := entryAt(rep, a.Entry)
	if err != nil {
		return err
	}

	switch a.Type {
	case AssertEntryOK:
		if out.Failed() {
			return fmt.Errorf("entry %d failed: %s", a.Entry, out.Failure)
		}
		return nil

	case AssertEntryFailed:
		if !out.Failed() {
			return fmt.Errorf("entry %d succeeded, expected failure", a.Entry)
		}
		if a.Contains != "" && !strings.Contains(out.Failure, a.Contains) {
			return fmt.Errorf("entry %d failure %q does not contain %q", a.Entry, out.Failure, a.Contains)
		}
		return nil

	case AssertEntryProbability:
		if out.Failed() {
			return fmt.Errorf("entry %d failed, no probability to check", a.Entry)
		}
		if math.Abs(out.Probability-a.Probability) > probabilityTolerance {
			return fmt.Errorf("entry %d probability %g, expected %g", a.Entry, out.Probability, a.Probability)
		}
		return nil

	case AssertEntryDesired:
		if out.Desired != a.Desired {
			return fmt.Errorf("entry %d desired %q, expected %q", a.Entry, out.Desired, a.Desired)
		}
		return nil

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func entryAt(rep *workflow.Report, i int) (workflow.Outcome, error) {
	if i < 0 || i >= len(rep.Entries) {
		return workflow.Outcome{}, fmt.Errorf("entry %d outside report (%d entries)", i, len(rep.Entries))
	}
	return rep.Entries[i], nil
}
