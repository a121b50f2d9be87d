package kernel

import "fmt"

// Syscall ids, carried in the save area's A register at the moment of a
// SYSCALL interrupt. X carries the single argument each syscall takes.
const (
	SysRead  = 0
	SysWrite = 1
	SysSpawn = 2
	SysKill  = 3
	SysWait  = 4
)

// handleSyscall reads the id from the current process's saved A register
// and fans out. The current process is guaranteed non-nil here: save()
// always runs before handleIRQ, and a SYSCALL can only originate from a
// process that was running.
func (k *Kernel) handleSyscall() {
	p := k.current
	if p == nil {
		k.latchError(fmt.Errorf("%w: syscall with no current process", ErrUnknownSyscall))
		return
	}
	switch p.Regs.A {
	case SysRead:
		k.sysRead(p)
	case SysWrite:
		k.sysWrite(p)
	case SysSpawn:
		k.sysSpawn(p)
	case SysKill:
		k.sysKill(p)
	case SysWait:
		k.sysWait(p)
	default:
		k.latchError(fmt.Errorf("%w: %d", ErrUnknownSyscall, p.Regs.A))
	}
}

// sysRead implements READ: nonblocking if the keyboard already has data,
// otherwise blocks the caller until the sweeper observes it ready.
func (k *Kernel) sysRead(p *Process) {
	ok, err := k.bus.ReadPort(p.Terminal + PortKeyboardOK)
	if err != nil {
		k.latchError(err)
		return
	}
	if ok != 0 {
		val, err := k.bus.ReadPort(p.Terminal + PortKeyboard)
		if err != nil {
			k.latchError(err)
			return
		}
		p.Regs.A = val
		return
	}
	k.blockCurrent(p, ReasonReading)
}

// sysWrite implements WRITE: symmetric to sysRead against the screen port.
func (k *Kernel) sysWrite(p *Process) {
	ok, err := k.bus.ReadPort(p.Terminal + PortScreenOK)
	if err != nil {
		k.latchError(err)
		return
	}
	if ok != 0 {
		if err := k.bus.WritePort(p.Terminal+PortScreen, p.Regs.X); err != nil {
			k.latchError(err)
			return
		}
		p.Regs.A = 0
		return
	}
	k.blockCurrent(p, ReasonWriting)
}

// sysSpawn implements SPAWN: load a program named by a NUL-terminated
// string in user memory at address X, and enqueue it READY on success.
func (k *Kernel) sysSpawn(p *Process) {
	name, ok := k.readCString(p.Regs.X, maxFilenameLen)
	if !ok {
		p.Regs.A = -1
		return
	}
	child, err := k.spawnNamed(name)
	if err != nil {
		p.Regs.A = -1
		return
	}
	p.Regs.A = child.ID
}

// sysKill implements KILL: X=0 means self, otherwise a target id.
func (k *Kernel) sysKill(p *Process) {
	targetID := p.Regs.X
	if targetID == 0 {
		targetID = p.ID
	}
	target := k.table.find(targetID)
	if target == nil || target.State == StateDead {
		p.Regs.A = -1
		return
	}
	k.killProcess(target)
	p.Regs.A = 0
}

// sysWait implements WAIT: blocks the caller until the target dies, or
// fails immediately if the target doesn't exist or is the caller itself.
// A target that is already DEAD must leave the caller READY without a
// spurious READY->READY transition count, so this path sets A directly
// and returns instead of routing through transition().
func (k *Kernel) sysWait(p *Process) {
	target := k.table.find(p.Regs.X)
	if target == nil || target.ID == p.ID {
		p.Regs.A = -1
		return
	}
	if target.State == StateDead {
		p.Regs.A = 0
		return
	}
	p.waitFor = target.ID
	k.blockCurrent(p, ReasonWaitingForDeath)
}

// readCString copies a NUL-terminated string from the bus's memory,
// stopping at maxLen bytes even if no NUL is found by then.
func (k *Kernel) readCString(addr, maxLen int) (string, bool) {
	buf := make([]byte, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		w, err := k.bus.ReadWord(addr + i)
		if err != nil {
			return "", false
		}
		if w == 0 {
			return string(buf), true
		}
		buf = append(buf, byte(w))
	}
	return "", false
}
