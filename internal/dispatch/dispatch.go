package dispatch

import (
	"sync"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
	"github.com/BootforgeIO/bootforge/internal/tasks"
)

// Job carries a queued bootstrap task to a worker. Secrets ride alongside
// the task instead of inside it so they are never serialized with task
// state; the worker consumes and zeroes them.
type Job struct {
	Task    *tasks.Task
	Secrets *bootstrap.Secrets
}

// Manager keeps per-node pending jobs and subscribers to stream them.
type Manager struct {
	mu      sync.Mutex
	pending map[string][]*Job
	subs    map[string]map[chan *Job]struct{}
}

func NewManager() *Manager {
	return &Manager{
		pending: make(map[string][]*Job),
		subs:    make(map[string]map[chan *Job]struct{}),
	}
}

var Default = NewManager()

// AddPending enqueues a job to the node's pending list and notifies subscribers.
func (m *Manager) AddPending(nodeID string, j *Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[nodeID] = append(m.pending[nodeID], j)
	for ch := range m.subs[nodeID] {
		select {
		case ch <- j:
		default:
			// drop if subscriber is slow; pending still holds it
		}
	}
}

// DrainPending returns and clears all pending jobs for a node.
func (m *Manager) DrainPending(nodeID string) []*Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.pending[nodeID]
	if len(s) == 0 {
		return nil
	}
	out := make([]*Job, len(s))
	copy(out, s)
	m.pending[nodeID] = nil
	return out
}

// Subscribe creates a channel subscription for a node's jobs. Caller must
// call the returned cancel func.
func (m *Manager) Subscribe(nodeID string) (chan *Job, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *Job, 8)
	if m.subs[nodeID] == nil {
		m.subs[nodeID] = make(map[chan *Job]struct{})
	}
	m.subs[nodeID][ch] = struct{}{}
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if subs := m.subs[nodeID]; subs != nil {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(m.subs, nodeID)
			}
		}
	}
}
