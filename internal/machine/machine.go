// Package machine is the host harness the kernel package is driven
// through: a flat word-addressed memory, four terminals wired to real
// I/O streams, and a software clock that advances once per Step call.
// It implements kernel.Bus and kernel.ProgramLoader so the kernel never
// has to know anything concrete lives underneath it.
package machine

import (
	"fmt"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

// memSize is generous for a didactic simulator: four terminals' worth of
// small programs plus save area and scratch, with room to spare.
const memSize = 1 << 16

// Machine is the concrete Bus a real wut4so process drives the kernel
// with. Memory is a flat array of ints standing in for 16-bit words; the
// terminal and clock ports are backed by real goroutines and a counter.
type Machine struct {
	mem       [memSize]int
	terminals [4]*Terminal
	clock     clock
}

// New builds a Machine with the given terminals. Exactly four terminal
// slots exist regardless of how many are wired up, matching the
// 4*(id mod 4) terminal assignment the kernel computes; nil entries are
// legal and behave as a terminal nothing is ever attached to.
func New(terminals [4]*Terminal) *Machine {
	return &Machine{terminals: terminals}
}

// Step advances the simulated instruction counter by n, the unit the
// kernel's clock-sampling phase reads from ClockInstructionsPort. A host
// run loop calls this between kernel.Enter invocations to stand in for
// the user-mode code that would otherwise have executed those
// instructions.
func (m *Machine) Step(n int) {
	m.clock.instructions += n
}

func (m *Machine) ReadWord(addr int) (int, error) {
	if addr < 0 || addr >= memSize {
		return 0, fmt.Errorf("machine: read out of bounds at %d", addr)
	}
	return m.mem[addr], nil
}

func (m *Machine) WriteWord(addr int, val int) error {
	if addr < 0 || addr >= memSize {
		return fmt.Errorf("machine: write out of bounds at %d", addr)
	}
	m.mem[addr] = val
	return nil
}

// ReadPort and WritePort route to either a terminal's four-port block or
// the clock's three ports, depending on which range the port number
// falls in (kernel.TerminalBase only ever returns 0, 4, 8 or 12).
func (m *Machine) ReadPort(port int) (int, error) {
	if term, offset, ok := m.terminalFor(port); ok {
		return term.readPort(offset)
	}
	switch port {
	case kernel.ClockInstructionsPort:
		return m.clock.instructions, nil
	case kernel.ClockTimerPort:
		return m.clock.reload, nil
	}
	return 0, fmt.Errorf("machine: read from unmapped port %d", port)
}

func (m *Machine) WritePort(port int, val int) error {
	if term, offset, ok := m.terminalFor(port); ok {
		return term.writePort(offset, val)
	}
	switch port {
	case kernel.ClockTimerPort:
		m.clock.reload = val
		return nil
	case kernel.ClockAckPort:
		return nil
	}
	return fmt.Errorf("machine: write to unmapped port %d", port)
}

func (m *Machine) terminalFor(port int) (*Terminal, int, bool) {
	base := (port / 4) * 4
	offset := port % 4
	slot := base / 4
	if slot < 0 || slot >= len(m.terminals) || m.terminals[slot] == nil {
		return nil, 0, false
	}
	return m.terminals[slot], offset, true
}

// clock is the software stand-in for the simulated CPU's hardware timer:
// reload is the instruction count written by the kernel's TIMER handler,
// instructions is the free-running counter the kernel samples every entry.
type clock struct {
	instructions int
	reload       int
}
