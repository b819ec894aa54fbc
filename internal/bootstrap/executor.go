package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
)

// Executor runs platform recipes against a System. It holds no per-run
// state, so one Executor may serve concurrent runs against different
// targets; a single target must only ever have one run in flight.
type Executor struct {
	sys System
}

func New(sys System) *Executor { return &Executor{sys: sys} }

// Bootstrap executes the profile for the given platform id with the
// supplied secrets. Steps run strictly in order; the first failure aborts
// the remainder. The returned error carries the failing category
// (ConfigError, InstallError, WriteError, ServiceError) and the result
// carries the per-step record. Secrets are zeroed before returning.
func (e *Executor) Bootstrap(ctx context.Context, platformID string, secrets *Secrets) (*ExecutionResult, error) {
	res := &ExecutionResult{Platform: platformID, State: StatePending, FailingStep: -1}

	profile, ok := Profile(platformID)
	if !ok {
		res.State = StateFailed
		return res, &ConfigError{Reason: fmt.Sprintf("unknown platform %q", platformID)}
	}
	if err := secrets.Validate(); err != nil {
		res.State = StateFailed
		return res, err
	}
	defer secrets.Zero()

	res.State = StateRunning
	for i, step := range profile.Steps {
		if err := ctx.Err(); err != nil {
			res.State = StateFailed
			res.FailingStep = i
			res.Steps = append(res.Steps, StepOutcome{Index: i, Name: step.Name, Kind: step.Kind, Status: StepFailed, Output: err.Error()})
			return res, e.classify(step, i, "", err)
		}
		outcome, err := e.runStep(ctx, i, step, secrets)
		res.Steps = append(res.Steps, outcome)
		if err != nil {
			res.State = StateFailed
			res.FailingStep = i
			log.Printf("bootstrap %s: step %d (%s) failed: %v", platformID, i, step.Name, err)
			return res, e.classify(step, i, outcome.Output, err)
		}
	}

	res.State = StateSucceeded
	res.Success = true
	return res, nil
}

func (e *Executor) runStep(ctx context.Context, index int, step Step, secrets *Secrets) (StepOutcome, error) {
	out := StepOutcome{Index: index, Name: step.Name, Kind: step.Kind}

	switch step.Kind {
	case StepRunCommand:
		if len(step.Check) > 0 {
			if _, err := e.sys.RunCommand(ctx, step.Check); err == nil {
				out.Status = StepSkipped
				out.Output = "already satisfied: " + strings.Join(step.Check, " ")
				return out, nil
			}
		}
		combined, err := e.sys.RunCommand(ctx, step.Cmd)
		out.Output = strings.TrimSpace(string(combined))
		if err != nil {
			out.Status = StepFailed
			return out, fmt.Errorf("%s: %w", strings.Join(step.Cmd, " "), err)
		}
		out.Status = StepExecuted
		return out, nil

	case StepWriteFile:
		if err := e.sys.MkdirAll(filepath.Dir(step.Path), 0o755); err != nil {
			out.Status = StepFailed
			return out, fmt.Errorf("mkdir %s: %w", filepath.Dir(step.Path), err)
		}
		data := []byte(secrets.Expand(step.Content))
		if err := e.sys.WriteFile(step.Path, data, step.Mode); err != nil {
			out.Status = StepFailed
			return out, fmt.Errorf("write %s: %w", step.Path, err)
		}
		out.Status = StepExecuted
		out.Output = "wrote " + step.Path
		return out, nil

	case StepEnsureRepo:
		existing, err := e.sys.ReadFile(step.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			out.Status = StepFailed
			return out, fmt.Errorf("read %s: %w", step.Path, err)
		}
		// Check before mutating: the legacy per-OS scripts appended the
		// source entry unconditionally and accumulated duplicates on every
		// re-run. A present entry makes this step a no-op.
		if bytes.Contains(existing, []byte(step.Entry)) {
			out.Status = StepSkipped
			out.Output = "repo entry present in " + step.Path
			return out, nil
		}
		if err := e.sys.MkdirAll(filepath.Dir(step.Path), 0o755); err != nil {
			out.Status = StepFailed
			return out, fmt.Errorf("mkdir %s: %w", filepath.Dir(step.Path), err)
		}
		updated := appendLine(existing, step.Entry)
		if err := e.sys.WriteFile(step.Path, updated, 0o644); err != nil {
			out.Status = StepFailed
			return out, fmt.Errorf("write %s: %w", step.Path, err)
		}
		out.Status = StepExecuted
		out.Output = "added repo entry to " + step.Path
		return out, nil

	case StepRemovePath:
		if err := e.sys.Remove(step.Path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				out.Status = StepSkipped
				out.Output = "already absent: " + step.Path
				return out, nil
			}
			out.Status = StepFailed
			return out, fmt.Errorf("remove %s: %w", step.Path, err)
		}
		out.Status = StepExecuted
		out.Output = "removed " + step.Path
		return out, nil
	}

	out.Status = StepFailed
	return out, fmt.Errorf("unknown step kind %q", step.Kind)
}

// classify wraps a step failure in its taxonomy category.
func (e *Executor) classify(step Step, index int, output string, err error) error {
	switch {
	case step.Kind == StepRunCommand && step.Service:
		return &ServiceError{StepIndex: index, Step: step.Name, Output: output, Err: err}
	case step.Kind == StepRunCommand:
		return &InstallError{StepIndex: index, Step: step.Name, Output: output, Err: err}
	default:
		return &WriteError{StepIndex: index, Step: step.Name, Path: step.Path, Err: err}
	}
}

func appendLine(existing []byte, entry string) []byte {
	buf := bytes.TrimRight(existing, "\n")
	if len(buf) > 0 {
		buf = append(buf, '\n')
	}
	buf = append(buf, entry...)
	buf = append(buf, '\n')
	return buf
}
