package kernel

// ProcessMetrics accumulates the per-process counters a metrics report
// needs. Turnaround only grows while the owning process is not DEAD;
// StateTime/StateEntries are indexed by ProcessState.
type ProcessMetrics struct {
	Turnaround  int
	Preemptions int

	StateEntries [numStates]int
	StateTime    [numStates]int
}

// ResponseTime is derived, not stored: mean time spent READY per READY
// entry. Zero before the process has ever been READY (never happens in
// practice, since creation counts as one READY entry).
func (m ProcessMetrics) ResponseTime() float64 {
	if m.StateEntries[StateReady] == 0 {
		return 0
	}
	return float64(m.StateTime[StateReady]) / float64(m.StateEntries[StateReady])
}

// Process is a process descriptor: one entry in the kernel's process
// table. Fields are exported so host harnesses and tests can inspect a
// snapshot; only the kernel package mutates them.
type Process struct {
	ID       int
	Regs     Registers
	State    ProcessState
	Reason   BlockReason
	Terminal int
	Priority float64
	Metrics  ProcessMetrics

	// waitFor is the id the process is blocked on while Reason is
	// ReasonWaitingForDeath. Meaningless otherwise.
	waitFor int
}

func newProcess(id, pc int) *Process {
	p := &Process{
		ID:       id,
		Regs:     Registers{PC: pc},
		State:    StateReady,
		Reason:   ReasonNone,
		Terminal: TerminalBase(id),
		Priority: 0.5,
	}
	// Creation is the one state entry that isn't a transition from
	// somewhere else, so it's counted directly rather than through
	// transition().
	p.Metrics.StateEntries[StateReady] = 1
	return p
}
