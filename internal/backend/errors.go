package backend

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or unusable setting discovered while
// resolving a target, before any job is built.
type ConfigError struct {
	Setting string // the setting at fault, e.g. "HELMI_CORTEX_URL"
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Setting != "" {
		return fmt.Sprintf("configuration (%s): %s", e.Setting, e.Reason)
	}
	return fmt.Sprintf("configuration: %s", e.Reason)
}

// IsConfigError returns true if the error is a ConfigError.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// SubmitError reports a job the target refused to accept.
type SubmitError struct {
	Backend string
	Reason  string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submit to %s: %s: %v", e.Backend, e.Reason, e.Err)
	}
	return fmt.Sprintf("submit to %s: %s", e.Backend, e.Reason)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// IsSubmitError returns true if the error is a SubmitError.
func IsSubmitError(err error) bool {
	var se *SubmitError
	return errors.As(err, &se)
}

// ExecError reports a job that failed after the target accepted it,
// including jobs whose terminal state could not be observed.
type ExecError struct {
	Backend string
	JobID   string
	Status  string // terminal or last observed status
	Err     error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job %s on %s (%s): %v", e.JobID, e.Backend, e.Status, e.Err)
	}
	return fmt.Sprintf("job %s on %s (%s)", e.JobID, e.Backend, e.Status)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsExecError returns true if the error is an ExecError.
func IsExecError(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee)
}
