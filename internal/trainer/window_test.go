package trainer

import (
	"testing"
	"time"
)

func TestWindowSnapshotResets(t *testing.T) {
	var w Window
	w.Record(1.0, 10*time.Millisecond)
	w.Record(3.0, 30*time.Millisecond)

	if w.Steps() != 2 {
		t.Fatalf("expected 2 steps, got %d", w.Steps())
	}

	snap := w.Snapshot()
	if snap.Steps != 2 {
		t.Fatalf("expected snapshot of 2 steps, got %d", snap.Steps)
	}
	if snap.MeanLoss != 2.0 {
		t.Fatalf("expected mean loss 2.0, got %f", snap.MeanLoss)
	}
	if snap.AvgComputeMS < 19.9 || snap.AvgComputeMS > 20.1 {
		t.Fatalf("expected ~20ms compute, got %f", snap.AvgComputeMS)
	}

	snap = w.Snapshot()
	if snap.Steps != 0 || snap.MeanLoss != 0 || snap.AvgComputeMS != 0 {
		t.Fatalf("expected empty snapshot after reset, got %+v", snap)
	}
}
