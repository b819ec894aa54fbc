package bootstrap

import "os"

// StepKind discriminates the step variants a platform recipe is built from.
type StepKind string

const (
	StepRunCommand StepKind = "run-command"
	StepWriteFile  StepKind = "write-file"
	StepEnsureRepo StepKind = "ensure-repo"
	StepRemovePath StepKind = "remove-path"
)

// Family identifies the package-manager family a platform belongs to.
type Family string

const (
	FamilyApt    Family = "apt"
	FamilyDnf    Family = "dnf"
	FamilyZypper Family = "zypper"
	FamilyPacman Family = "pacman"
	FamilyPkg    Family = "pkg"
)

// Step is one unit of a platform recipe. Exactly one variant is populated,
// per Kind. Steps are immutable once constructed; secret placeholders in
// Content are resolved at execution time and never enter a command line.
type Step struct {
	Kind StepKind
	Name string

	// RunCommand: Cmd is the argv to execute. When Check is non-empty and
	// exits 0 the step is already satisfied and is skipped. Service marks
	// the agent enable/start steps for error classification.
	Cmd     []string
	Check   []string
	Service bool

	// WriteFile and EnsureRepo target Path. RemovePath uses Path alone.
	Path string

	// WriteFile: Content may reference {{private_key}}, {{public_key}} or
	// {{minion_config}}; Mode is the final permission bits.
	Content string
	Mode    os.FileMode

	// EnsureRepo: Entry is appended to Path only when not already present.
	Entry string
}

// PlatformProfile is the ordered, platform-specific recipe the executor
// runs. Profiles are static data: supporting a new platform means adding a
// table entry in profiles.go, never new executor code.
type PlatformProfile struct {
	ID          string
	Family      Family
	ConfDir     string
	ServiceName string
	Steps       []Step
}

// RunState tracks a single bootstrap invocation. There is no resumption
// from Failed; a fresh run starts over (pre-checks make that safe).
type RunState string

const (
	StatePending   RunState = "pending"
	StateRunning   RunState = "running"
	StateSucceeded RunState = "succeeded"
	StateFailed    RunState = "failed"
)

// StepStatus is the outcome of one executed step.
type StepStatus string

const (
	StepExecuted StepStatus = "executed"
	StepSkipped  StepStatus = "skipped"
	StepFailed   StepStatus = "failed"
)

// StepOutcome pairs a step with what happened to it. Output holds captured
// diagnostics for run commands; file steps report only the touched path, so
// secret material never shows up here.
type StepOutcome struct {
	Index  int        `json:"index"`
	Name   string     `json:"name"`
	Kind   StepKind   `json:"kind"`
	Status StepStatus `json:"status"`
	Output string     `json:"output,omitempty"`
}

// ExecutionResult is created fresh per run and returned to the caller; it
// is not persisted by the executor.
type ExecutionResult struct {
	Platform    string        `json:"platform"`
	State       RunState      `json:"state"`
	Success     bool          `json:"success"`
	FailingStep int           `json:"failing_step"` // -1 when no step failed
	Steps       []StepOutcome `json:"steps"`
}

// Mutations counts steps that actually changed the target, as opposed to
// being skipped by a pre-check. A repeated run over a converged target
// reports fewer mutations than the first.
func (r *ExecutionResult) Mutations() int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == StepExecuted {
			n++
		}
	}
	return n
}
