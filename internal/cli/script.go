package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

// scriptEvent is one line of a run script: an IRQ to raise, plus whatever
// save-area values that IRQ needs (A/X for SYSCALL, the error code for
// CPU_ERROR). Without a real WUT-4 CPU behind it, wut4so has no user-mode
// code to execute between interrupts, so a script stands in for it: the
// host harness a real deployment would provide.
type scriptEvent struct {
	irq  kernel.IRQKind
	a, x int
}

// parseScript reads one event per line. Blank lines and lines starting
// with '#' are ignored. Recognized forms:
//
//	RESET
//	TIMER
//	SYSCALL <a> <x>
//	CPU_ERROR <code>
func parseScript(r io.Reader) ([]scriptEvent, error) {
	var events []scriptEvent
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "RESET":
			events = append(events, scriptEvent{irq: kernel.IRQReset})
		case "TIMER":
			events = append(events, scriptEvent{irq: kernel.IRQTimer})
		case "SYSCALL":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: SYSCALL wants 2 args, got %d", lineNo, len(fields)-1)
			}
			a, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad syscall id %q: %w", lineNo, fields[1], err)
			}
			x, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad syscall arg %q: %w", lineNo, fields[2], err)
			}
			events = append(events, scriptEvent{irq: kernel.IRQSyscall, a: a, x: x})
		case "CPU_ERROR":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: CPU_ERROR wants 1 arg, got %d", lineNo, len(fields)-1)
			}
			code, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad error code %q: %w", lineNo, fields[1], err)
			}
			events = append(events, scriptEvent{irq: kernel.IRQCPUError, a: code})
		default:
			return nil, fmt.Errorf("line %d: unrecognized event %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
