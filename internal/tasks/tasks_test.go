package tasks

import (
	"testing"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
)

func TestEnqueueBootstrap(t *testing.T) {
	m := NewManager()
	task := m.EnqueueBootstrap("node-123", "debian-like")
	if task.ID == "" {
		t.Fatalf("expected task ID to be set")
	}
	if task.NodeID != "node-123" {
		t.Fatalf("unexpected node id: %s", task.NodeID)
	}
	if task.Type != TypeBootstrap {
		t.Fatalf("unexpected task type: %s", task.Type)
	}
	if task.Platform != "debian-like" {
		t.Fatalf("unexpected platform: %s", task.Platform)
	}
	if task.Status != StatusQueued {
		t.Fatalf("unexpected status: %s", task.Status)
	}
}

func TestStatusTransitions(t *testing.T) {
	m := NewManager()
	task := m.EnqueueBootstrap("node-123", "redhat-like")

	m.UpdateStatusRunning(task.ID)
	got, ok := m.Get(task.ID)
	if !ok {
		t.Fatalf("task not found")
	}
	if got.Status != StatusRunning || got.StartedAt == nil {
		t.Fatalf("unexpected running state: %+v", got)
	}

	res := &bootstrap.ExecutionResult{Platform: "redhat-like", State: bootstrap.StateSucceeded, Success: true, FailingStep: -1}
	m.UpdateStatusSucceeded(task.ID, res)
	got, _ = m.Get(task.ID)
	if got.Status != StatusSucceeded || got.FinishedAt == nil {
		t.Fatalf("unexpected succeeded state: %+v", got)
	}
	if got.Result == nil || !got.Result.Success {
		t.Fatalf("result not attached: %+v", got.Result)
	}
}

func TestFailedKeepsPartialResult(t *testing.T) {
	m := NewManager()
	task := m.EnqueueBootstrap("node-1", "debian-like")
	res := &bootstrap.ExecutionResult{Platform: "debian-like", State: bootstrap.StateFailed, FailingStep: 2}
	m.UpdateStatusFailed(task.ID, res, "install step 2 failed")
	got, _ := m.Get(task.ID)
	if got.Status != StatusFailed || got.Error == "" {
		t.Fatalf("unexpected failed state: %+v", got)
	}
	if got.Result == nil || got.Result.FailingStep != 2 {
		t.Fatalf("partial result not attached: %+v", got.Result)
	}
}
