package kernel

import (
	"fmt"
	"io"
)

// Kernel is the supervisor itself: process table, ready queue, current
// process handle and the three boundary collaborators. The zero value is
// not usable; build one with New.
type Kernel struct {
	bus       Bus
	loader    ProgramLoader
	writer    MetricsWriter
	logger    io.Writer
	scheduler Scheduler

	schedulerID SchedulerKind
	table       processTable
	ready       readyQueue
	current     *Process
	quantum     int
	lastClock   int
	metrics     KernelMetrics
	err         error
}

// New builds a Kernel. logger may be nil to discard trace output; writer
// may be nil to skip persisting a metrics file entirely.
func New(bus Bus, loader ProgramLoader, writer MetricsWriter, logger io.Writer, kind SchedulerKind) *Kernel {
	return &Kernel{
		bus:         bus,
		loader:      loader,
		writer:      writer,
		logger:      logger,
		scheduler:   newScheduler(kind),
		schedulerID: kind,
		metrics:     newKernelMetrics(),
	}
}

// Err returns the latched internal error, if any. A Kernel that has
// latched an error still finishes the current Enter call but will halt
// (return 1) from every subsequent one.
func (k *Kernel) Err() error {
	return k.err
}

// Current returns the process the kernel believes is running, or nil if
// the CPU is idle. Exported for host harnesses and tests; the kernel
// itself never lets outside code mutate it.
func (k *Kernel) Current() *Process {
	return k.current
}

// Processes returns every descriptor ever created, dense and in id order.
func (k *Kernel) Processes() []*Process {
	return k.table.all()
}

// Enter is the kernel's single entry point, run once per simulated
// interrupt. It samples the clock, then performs five phases in strict
// order: save the interrupted process, handle the interrupt, sweep pending
// blocks, schedule, and dispatch (or terminate, once every process is
// DEAD). It returns 0 if the stub should resume user code,
// 1 if it should halt the CPU pending the next interrupt (idle,
// finalized, or a latched internal error).
func (k *Kernel) Enter(irq IRQKind) int {
	k.sampleClock()
	k.save()
	k.handleIRQ(irq)
	k.sweepPending()
	k.schedule()

	if k.table.allDead() {
		return k.terminate()
	}
	return k.dispatch()
}

// schedule updates the aging priority of the outgoing current process
// unconditionally (mirroring the source design, which does this before
// every scheduler dispatch regardless of which strategy is active), then
// delegates to the configured Scheduler.
func (k *Kernel) schedule() {
	k.updatePriority(k.current, k.quantum)
	k.scheduler.Schedule(k)
}

// sampleClock reads the simulator's monotonic instruction counter and
// folds the delta since the last entry into global and per-process
// metrics.
func (k *Kernel) sampleClock() {
	count, err := k.bus.ReadPort(ClockInstructionsPort)
	if err != nil {
		k.latchError(err)
		return
	}
	delta := count - k.lastClock
	k.lastClock = count
	if delta < 0 {
		delta = 0
	}
	k.accumulate(delta)
}

// accumulate is sampleClock's pure bookkeeping half, split out so it can
// be exercised directly in tests without a fake instruction counter.
func (k *Kernel) accumulate(delta int) {
	k.metrics.TotalTicks += delta
	if k.current == nil {
		k.metrics.IdleTicks += delta
	}
	for _, p := range k.table.all() {
		if p.State == StateDead {
			continue
		}
		p.Metrics.StateTime[p.State] += delta
		p.Metrics.Turnaround += delta
	}
}

// save copies the CPU's save area into the interrupted process's
// descriptor. It is a no-op when the CPU was idle (no current process).
func (k *Kernel) save() {
	if k.current == nil {
		return
	}
	pc, err := k.bus.ReadWord(AddrPC)
	if err != nil {
		k.latchError(err)
		return
	}
	a, err := k.bus.ReadWord(AddrA)
	if err != nil {
		k.latchError(err)
		return
	}
	x, err := k.bus.ReadWord(AddrX)
	if err != nil {
		k.latchError(err)
		return
	}
	k.current.Regs = Registers{PC: pc, A: a, X: x}
}

// dispatch writes the chosen current process's registers back to the
// save area. A latched error or an idle CPU both halt instead.
func (k *Kernel) dispatch() int {
	if k.err != nil {
		return 1
	}
	if k.current == nil {
		return 1
	}
	if err := k.bus.WriteWord(AddrPC, k.current.Regs.PC); err != nil {
		k.latchError(err)
		return 1
	}
	if err := k.bus.WriteWord(AddrA, k.current.Regs.A); err != nil {
		k.latchError(err)
		return 1
	}
	if err := k.bus.WriteWord(AddrX, k.current.Regs.X); err != nil {
		k.latchError(err)
		return 1
	}
	return 0
}

// terminate disables the clock and writes the metrics file exactly once,
// when every process in the table has died.
func (k *Kernel) terminate() int {
	if err := k.bus.WritePort(ClockTimerPort, 0); err != nil {
		k.latchError(err)
	}
	if err := k.bus.WritePort(ClockAckPort, 0); err != nil {
		k.latchError(err)
	}
	k.writeMetrics()
	return 1
}

func (k *Kernel) writeMetrics() {
	if k.writer == nil {
		return
	}
	if err := k.writer.WriteMetrics(k.Snapshot()); err != nil {
		k.logf("writing metrics: %v", err)
	}
}

// spawnNamed loads name through the configured ProgramLoader and, on
// success, creates a new READY descriptor at the tail of the ready queue.
// Shared by the reset handler (init.maq) and the SPAWN syscall.
func (k *Kernel) spawnNamed(name string) (*Process, error) {
	loadAddr, err := k.loader.Load(k.bus, name)
	if err != nil {
		return nil, err
	}
	p := k.table.create(loadAddr)
	k.ready.pushBack(p)
	return p, nil
}

// latchError records the first internal error seen. Later errors are
// dropped: once the kernel has decided it can't make progress, piling on
// more diagnostics doesn't change what happens next.
func (k *Kernel) latchError(err error) {
	if k.err != nil {
		return
	}
	k.err = err
	k.logf("internal error: %v", err)
}

func (k *Kernel) logf(format string, args ...interface{}) {
	if k.logger == nil {
		return
	}
	fmt.Fprintf(k.logger, format+"\n", args...)
}
