package tasks

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
)

type Type string

const (
	TypeBootstrap Type = "BOOTSTRAP"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Task tracks one asynchronous bootstrap run for a node. Secrets never
// live on the task: they travel separately to the worker and the task only
// records non-sensitive outcome data.
type Task struct {
	ID         string                     `json:"id"`
	NodeID     string                     `json:"nodeId"`
	Type       Type                       `json:"type"`
	Platform   string                     `json:"platform"`
	Status     Status                     `json:"status"`
	Logs       string                     `json:"logs,omitempty"`
	Result     *bootstrap.ExecutionResult `json:"result,omitempty"`
	CreatedAt  time.Time                  `json:"createdAt"`
	StartedAt  *time.Time                 `json:"startedAt,omitempty"`
	FinishedAt *time.Time                 `json:"finishedAt,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

type Manager struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewManager() *Manager {
	return &Manager{tasks: make(map[string]*Task)}
}

var Default = NewManager()

// EnqueueBootstrap registers a queued bootstrap task for a node.
func (m *Manager) EnqueueBootstrap(nodeID, platform string) *Task {
	t := &Task{
		ID:        uuid.NewString(),
		NodeID:    nodeID,
		Type:      TypeBootstrap,
		Platform:  platform,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.tasks[t.ID] = t
	m.mu.Unlock()
	return t
}

func (m *Manager) Get(id string) (*Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	return t, ok
}

// UpdateLogs sets/overwrites the last log snippet for a task.
func (m *Manager) UpdateLogs(id string, logs string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.Logs = logs
	}
}

// UpdateStatusRunning sets a task to running and stamps StartedAt if not already set.
func (m *Manager) UpdateStatusRunning(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		now := time.Now().UTC()
		t.Status = StatusRunning
		if t.StartedAt == nil {
			t.StartedAt = &now
		}
	}
}

// UpdateStatusSucceeded sets a task to succeeded, attaches the run result,
// and stamps FinishedAt.
func (m *Manager) UpdateStatusSucceeded(id string, res *bootstrap.ExecutionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		now := time.Now().UTC()
		t.Status = StatusSucceeded
		t.Result = res
		t.FinishedAt = &now
		t.Error = ""
	}
}

// UpdateStatusFailed sets a task to failed with an error, attaches the
// partial run result, and stamps FinishedAt.
func (m *Manager) UpdateStatusFailed(id string, res *bootstrap.ExecutionResult, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		now := time.Now().UTC()
		t.Status = StatusFailed
		t.Result = res
		t.FinishedAt = &now
		t.Error = errMsg
	}
}
