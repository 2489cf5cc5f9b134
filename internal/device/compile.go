package device

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileDevice parses a CUE value into a Device profile.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the profile struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`device: helmi: { qubits: 5 }`)
//	dev, err := CompileDevice(v.LookupPath(cue.ParsePath("device.helmi")))
func CompileDevice(v cue.Value) (*Device, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	dev := &Device{}

	// Profile id comes from the struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		dev.ID = labels[len(labels)-1].String()
	}

	// qubits (required)
	qubitsVal := v.LookupPath(cue.ParsePath("qubits"))
	if !qubitsVal.Exists() {
		return nil, &CompileError{
			Field:   "qubits",
			Message: "qubits is required",
			Pos:     v.Pos(),
		}
	}
	qubits, err := qubitsVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	dev.NumQubits = int(qubits)

	// label (optional, defaults to the profile id)
	dev.Label = dev.ID
	if labelVal := v.LookupPath(cue.ParsePath("label")); labelVal.Exists() {
		if dev.Label, err = labelVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	// names (optional, defaults to QB1..QBn)
	if namesVal := v.LookupPath(cue.ParsePath("names")); namesVal.Exists() {
		dev.Names, err = parseNames(namesVal)
		if err != nil {
			return nil, err
		}
	} else {
		dev.Names = make([]string, dev.NumQubits)
		for i := range dev.Names {
			dev.Names[i] = fmt.Sprintf("QB%d", i+1)
		}
	}

	// endpoint_env (optional)
	if envVal := v.LookupPath(cue.ParsePath("endpoint_env")); envVal.Exists() {
		if dev.EndpointEnv, err = envVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	// coupling (optional)
	if couplingVal := v.LookupPath(cue.ParsePath("coupling")); couplingVal.Exists() {
		dev.Coupling, err = parseCoupling(couplingVal)
		if err != nil {
			return nil, err
		}
	}

	if err := dev.Validate(); err != nil {
		return nil, &CompileError{
			Field:   "device",
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return dev, nil
}

func parseNames(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var names []string
	for iter.Next() {
		name, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		names = append(names, name)
	}
	return names, nil
}

func parseCoupling(v cue.Value) ([][2]int, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var coupling [][2]int
	for iter.Next() {
		pairIter, err := iter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var pair []int64
		for pairIter.Next() {
			q, err := pairIter.Value().Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			pair = append(pair, q)
		}
		if len(pair) != 2 {
			return nil, &CompileError{
				Field:   "coupling",
				Message: fmt.Sprintf("coupling entries must be pairs, got %d elements", len(pair)),
				Pos:     iter.Value().Pos(),
			}
		}
		coupling = append(coupling, [2]int{int(pair[0]), int(pair[1])})
	}
	return coupling, nil
}

// CompileError reports a malformed device profile with its CUE position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
