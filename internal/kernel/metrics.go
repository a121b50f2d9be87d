package kernel

// KernelMetrics accumulates the global counters a metrics report needs:
// total and idle simulated time, one count per IRQ kind seen, and the
// sum of every process's preemption count (computed at snapshot time,
// not kept running, since it's entirely derived from per-process
// counters).
type KernelMetrics struct {
	TotalTicks int
	IdleTicks  int
	IRQCounts  map[IRQKind]int
}

func newKernelMetrics() KernelMetrics {
	return KernelMetrics{IRQCounts: make(map[IRQKind]int)}
}

// ProcessSnapshot is one process's metrics block in a MetricsSnapshot.
type ProcessSnapshot struct {
	ID      int
	Metrics ProcessMetrics
}

// MetricsSnapshot is the data a MetricsWriter persists: everything a
// metrics report needs to contain, decoupled from the live kernel so a
// writer can't reach back in and mutate kernel state.
type MetricsSnapshot struct {
	Scheduler   SchedulerKind
	Global      KernelMetrics
	Preemptions int
	Processes   []ProcessSnapshot
}

// Snapshot captures the kernel's current metrics for persistence. Safe to
// call at any point, though the kernel only calls it once, at halt.
func (k *Kernel) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Scheduler: k.schedulerID,
		Global:    k.metrics,
	}
	for _, p := range k.table.all() {
		snap.Preemptions += p.Metrics.Preemptions
		snap.Processes = append(snap.Processes, ProcessSnapshot{ID: p.ID, Metrics: p.Metrics})
	}
	return snap
}

// MetricsWriter persists a MetricsSnapshot. The kernel calls it exactly
// once, when the last process dies and the machine is finalized. A nil
// writer is legal; the kernel just skips it.
type MetricsWriter interface {
	WriteMetrics(snap MetricsSnapshot) error
}
