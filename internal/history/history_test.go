package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndRecent(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close() }()

	now := time.Now().UTC().Truncate(time.Second)
	recs := []Record{
		{TaskID: "t1", NodeID: "node-1", Platform: "debian-like", Success: true, FailingStep: -1, StartedAt: now.Add(-2 * time.Minute), FinishedAt: now.Add(-1 * time.Minute)},
		{TaskID: "t2", NodeID: "node-1", Platform: "redhat-like", Success: false, FailingStep: 2, StartedAt: now.Add(-30 * time.Second), FinishedAt: now},
	}
	for _, r := range recs {
		if err := st.Append(r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := st.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Newest first.
	if got[0].TaskID != "t2" || got[1].TaskID != "t1" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Success || got[0].FailingStep != 2 {
		t.Fatalf("unexpected failure record: %+v", got[0])
	}
	if !got[1].Success || got[1].FailingStep != -1 {
		t.Fatalf("unexpected success record: %+v", got[1])
	}
	if !got[1].FinishedAt.Equal(now.Add(-1 * time.Minute)) {
		t.Fatalf("timestamp roundtrip mismatch: %v", got[1].FinishedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close() }()

	for i := 0; i < 5; i++ {
		if err := st.Append(Record{TaskID: "t", NodeID: "n", Platform: "freebsd", Success: true, FailingStep: -1, StartedAt: time.Now(), FinishedAt: time.Now()}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := st.Recent(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
}
