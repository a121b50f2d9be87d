package kernel

// Memory is the fixed-address save area and general process memory the
// kernel reads and writes between phases. It stands in for memory that is
// otherwise out of scope here: a host harness backs it with whatever
// storage its simulated CPU actually executes against.
type Memory interface {
	ReadWord(addr int) (int, error)
	WriteWord(addr int, val int) error
}

// Devices is the I/O-port half of the boundary: per-terminal keyboard and
// screen ports, plus the clock's timer/ack/instruction-counter ports.
// Port numbers are assigned by TerminalBase and the Clock* constants.
type Devices interface {
	ReadPort(port int) (int, error)
	WritePort(port int, val int) error
}

// Bus is everything the kernel needs from the host harness: addressable
// memory plus the device-port space. A single concrete type is free to
// implement both halves, as internal/machine.Machine does.
type Bus interface {
	Memory
	Devices
}

// Save-area addresses. The simulated CPU writes PC/A/X/Erro/Modo here on
// interrupt entry and reads PC/A/X back on RETI; the kernel's save and
// dispatch phases are the only other parties touching these cells.
const (
	AddrPC   = 0
	AddrA    = 1
	AddrX    = 2
	AddrErro = 3
	AddrModo = 4
)

// Per-terminal port offsets. A terminal occupies four consecutive ports
// starting at its base address (TerminalBase); which terminal a process
// owns is computed once, at creation, by the 4*(id mod 4) rule.
const (
	PortKeyboard   = 0
	PortKeyboardOK = 1
	PortScreen     = 2
	PortScreenOK   = 3
)

// Clock ports. Distinct from the per-terminal port space so they can't
// collide with a terminal base (terminal bases only ever land on 0/4/8/12).
const (
	ClockTimerPort        = 100 // write: instructions until next tick; 0 disables
	ClockAckPort          = 101 // write: acknowledge a pending timer interrupt
	ClockInstructionsPort = 102 // read: monotonic instruction counter
)

// ProgramLoader is the boundary to wherever executables live. Load
// writes the named program into memory and reports where it landed; the
// kernel never inspects the bytes itself.
type ProgramLoader interface {
	Load(mem Memory, name string) (loadAddress int, err error)
}

// TerminalBase returns the port base of the terminal owned by process id.
// Ids 4, 8, 12, ... alias the same physical terminal as ids 0 mod 4 < id;
// this is a known limitation of the port layout, not a bug.
func TerminalBase(id int) int {
	return 4 * (id % 4)
}
