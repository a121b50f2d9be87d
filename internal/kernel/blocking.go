package kernel

// transition moves p to a new state/reason, keeping the state-entry
// counters and the current-process handle consistent; callers pair it
// with the matching ready-queue change. It only updates the reason if the requested
// transition doesn't actually change state, which avoids a spurious
// state-entry count: WAIT on an already-DEAD target sets A directly and
// never calls transition at all, and this guard is the second line of
// defense for any other caller that might do the same.
func (k *Kernel) transition(p *Process, state ProcessState, reason BlockReason) {
	if p.State == state {
		p.Reason = reason
		return
	}
	p.State = state
	p.Reason = reason
	p.Metrics.StateEntries[state]++

	if k.current == p && state != StateReady {
		k.current = nil
	}
}

// blockCurrent moves p (always the currently running process) to BLOCKED
// with the given reason and drops it from the ready queue.
func (k *Kernel) blockCurrent(p *Process, reason BlockReason) {
	k.transition(p, StateBlocked, reason)
	k.ready.removeByID(p.ID)
}

// unblock moves p back to READY and appends it to the ready queue's tail,
// making it immediately eligible for this same interrupt's scheduling
// pass.
func (k *Kernel) unblock(p *Process) {
	p.waitFor = 0
	k.transition(p, StateReady, ReasonNone)
	k.ready.pushBack(p)
}

// killProcess marks p DEAD, drops it from the ready queue, and clears the
// current-process handle if p was running. Waiters blocked in WAIT on p's
// id are left for the next sweep to discover.
func (k *Kernel) killProcess(p *Process) {
	if p.State == StateDead {
		return
	}
	k.transition(p, StateDead, ReasonNone)
	k.ready.removeByID(p.ID)
}

// updatePriority applies the aging formula to the current process on
// every scheduling pass, not only on preemption, mirroring the source
// design: processes that burned more of their quantum are pushed toward
// a higher (worse) numeric priority. Harmless for the simple and
// round-robin strategies, which never read Priority.
func (k *Kernel) updatePriority(p *Process, remaining int) {
	if p == nil {
		return
	}
	delta := float64(Quantum-remaining) / float64(Quantum)
	p.Priority = (p.Priority + delta) / 2
}

// sweepPending scans every BLOCKED process and unblocks those whose
// pendency has been satisfied. It always runs after the IRQ handler and
// before scheduling.
func (k *Kernel) sweepPending() {
	for _, p := range k.table.all() {
		if p.State != StateBlocked {
			continue
		}
		switch p.Reason {
		case ReasonReading:
			k.sweepRead(p)
		case ReasonWriting:
			k.sweepWrite(p)
		case ReasonWaitingForDeath:
			k.sweepWait(p)
		}
	}
}

// sweepRead unblocks a READING process once its keyboard has data,
// surfacing bus errors instead of silently treating them as "no data
// yet".
func (k *Kernel) sweepRead(p *Process) {
	ok, err := k.bus.ReadPort(p.Terminal + PortKeyboardOK)
	if err != nil {
		k.latchError(err)
		return
	}
	if ok == 0 {
		return
	}
	val, err := k.bus.ReadPort(p.Terminal + PortKeyboard)
	if err != nil {
		k.latchError(err)
		return
	}
	p.Regs.A = val
	k.unblock(p)
}

// sweepWrite unblocks a WRITING process once its screen is free.
func (k *Kernel) sweepWrite(p *Process) {
	ok, err := k.bus.ReadPort(p.Terminal + PortScreenOK)
	if err != nil {
		k.latchError(err)
		return
	}
	if ok == 0 {
		return
	}
	if err := k.bus.WritePort(p.Terminal+PortScreen, p.Regs.X); err != nil {
		k.latchError(err)
		return
	}
	p.Regs.A = 0
	k.unblock(p)
}

// sweepWait unblocks a WAITING_FOR_DEATH process once its target is DEAD.
func (k *Kernel) sweepWait(p *Process) {
	target := k.table.find(p.waitFor)
	if target == nil || target.State != StateDead {
		return
	}
	p.Regs.A = 0
	k.unblock(p)
}
