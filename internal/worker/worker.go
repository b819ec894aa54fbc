package worker

import (
	"context"
	"log"
	"time"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
	"github.com/BootforgeIO/bootforge/internal/dispatch"
	"github.com/BootforgeIO/bootforge/internal/history"
	"github.com/BootforgeIO/bootforge/internal/tasks"
)

// Worker consumes queued bootstrap jobs for one node and runs them through
// the executor, one at a time. Package managers are not safe to run
// concurrently with themselves, so there is exactly one worker per node.
type Worker struct {
	nodeID string
	exec   *bootstrap.Executor
	tasks  *tasks.Manager
	disp   *dispatch.Manager
	hist   *history.Store // optional
}

func New(nodeID string, exec *bootstrap.Executor, tm *tasks.Manager, dm *dispatch.Manager, hist *history.Store) *Worker {
	return &Worker{nodeID: nodeID, exec: exec, tasks: tm, disp: dm, hist: hist}
}

// Run blocks until ctx is done. Channel receives are only wake-ups; jobs
// are always taken from the pending queue, so nothing is processed twice.
func (w *Worker) Run(ctx context.Context) {
	ch, cancel := w.disp.Subscribe(w.nodeID)
	defer cancel()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	w.drain(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			w.drain(ctx)
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for _, job := range w.disp.DrainPending(w.nodeID) {
		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *dispatch.Job) {
	t := job.Task
	log.Printf("worker %s: running bootstrap task %s platform=%s", w.nodeID, t.ID, t.Platform)
	w.tasks.UpdateStatusRunning(t.ID)
	started := time.Now().UTC()

	res, err := w.exec.Bootstrap(ctx, t.Platform, job.Secrets)
	finished := time.Now().UTC()

	if err != nil {
		w.tasks.UpdateStatusFailed(t.ID, res, err.Error())
		if res.FailingStep >= 0 && res.FailingStep < len(res.Steps) {
			w.tasks.UpdateLogs(t.ID, res.Steps[res.FailingStep].Output)
		}
		log.Printf("worker %s: task %s failed: %v", w.nodeID, t.ID, err)
	} else {
		w.tasks.UpdateStatusSucceeded(t.ID, res)
	}

	if w.hist != nil {
		rec := history.Record{
			TaskID:      t.ID,
			NodeID:      t.NodeID,
			Platform:    t.Platform,
			Success:     res.Success,
			FailingStep: res.FailingStep,
			StartedAt:   started,
			FinishedAt:  finished,
		}
		if err := w.hist.Append(rec); err != nil {
			log.Printf("worker %s: history append failed: %v", w.nodeID, err)
		}
	}
}
