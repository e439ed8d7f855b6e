package trainer

import "time"

// Window accumulates loss and timing across the iterations of one
// evaluation interval.
type Window struct {
	total   float64
	steps   int
	compute time.Duration
}

// Record adds one iteration's loss and compute time to the window.
func (w *Window) Record(loss float64, compute time.Duration) {
	w.total += loss
	w.steps++
	w.compute += compute
}

// Steps returns the number of iterations recorded since the last Snapshot.
func (w *Window) Steps() int {
	return w.steps
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Steps: w.steps}
	if w.steps > 0 {
		snap.MeanLoss = w.total / float64(w.steps)
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.steps)
	}

	w.total = 0
	w.steps = 0
	w.compute = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps        int
	MeanLoss     float64
	AvgComputeMS float64
}
