package kernel

import "errors"

// ErrNoForwardProgress is latched when a scheduler finds no READY process
// to run and no BLOCKED process that could ever become READY, while not
// every process is DEAD (an empty table, when Enter runs before any
// process exists, counts as not all DEAD). The last process dying is a
// clean termination, not this error. Latching an error here rather than
// spinning forever makes the deadlock visible.
var ErrNoForwardProgress = errors.New("kernel: no ready or blocked process, no forward progress possible")

// ErrUnknownIRQ is latched when Enter is called with an IRQKind the
// dispatcher doesn't recognize.
var ErrUnknownIRQ = errors.New("kernel: unknown IRQ kind")

// ErrUnknownSyscall is latched when a SYSCALL IRQ carries an id outside
// the five defined syscalls. The source design treats this as fatal to
// the kernel rather than as a per-process fault, since it most likely
// indicates a corrupted save area or a loader/ABI mismatch.
var ErrUnknownSyscall = errors.New("kernel: unknown syscall id")
