package kernel

// simpleScheduler is the FCFS-like strategy: keep running the current
// process as long as it's READY, otherwise take the lowest-indexed READY
// descriptor in the table.
type simpleScheduler struct{}

func (simpleScheduler) Schedule(k *Kernel) {
	if k.current != nil && k.current.State == StateReady {
		return
	}
	next := k.table.firstReady()
	if next == nil {
		k.idleOrError()
		return
	}
	k.current = next
}
