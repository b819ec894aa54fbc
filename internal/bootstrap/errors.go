package bootstrap

import (
	"errors"
	"fmt"
)

// ConfigError reports bad or missing input detected before any mutation.
// Retrying immediately with corrected input is safe.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

// InstallError reports a failed package or repository command. The target
// may be partially mutated; a fresh run is required.
type InstallError struct {
	StepIndex int
	Step      string
	Output    string
	Err       error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install step %d (%s): %v", e.StepIndex, e.Step, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// WriteError reports a failed filesystem step (write, repo entry, removal).
type WriteError struct {
	StepIndex int
	Step      string
	Path      string
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write step %d (%s) path %s: %v", e.StepIndex, e.Step, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ServiceError reports that the agent service failed to enable or start
// after an otherwise successful install.
type ServiceError struct {
	StepIndex int
	Step      string
	Output    string
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service step %d (%s): %v", e.StepIndex, e.Step, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Exit codes for scripting callers, one per error category.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
	ExitInstall = 3
	ExitWrite   = 4
	ExitService = 5
)

// ExitCode maps an error from Bootstrap to the process exit code contract.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		ce *ConfigError
		ie *InstallError
		we *WriteError
		se *ServiceError
	)
	switch {
	case errors.As(err, &ce):
		return ExitConfig
	case errors.As(err, &ie):
		return ExitInstall
	case errors.As(err, &we):
		return ExitWrite
	case errors.As(err, &se):
		return ExitService
	}
	return ExitFailure
}
