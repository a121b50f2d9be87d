package machine

import (
	"fmt"
	"io"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

// Terminal is one of the machine's four keyboard/screen pairs, modeled as
// a small receive FIFO fed by a pump goroutine plus a direct pass-through
// write side, the same shape as the WUT-4 emulator's UART, generalized
// from a single console to four independently addressable ones.
type Terminal struct {
	rx  chan byte
	out io.Writer
}

// NewTerminal wires a terminal to a real input/output stream. Either may
// be nil: a nil in means the keyboard never has data, a nil out means
// writes are discarded.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{rx: make(chan byte, 64), out: out}
	if in != nil {
		go t.pump(in)
	}
	return t
}

// pump copies bytes from in into the receive FIFO until in returns an
// error (typically EOF on process exit). It never blocks the kernel: a
// full FIFO just drops the byte, matching the UART's overflow behavior.
func (t *Terminal) pump(in io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			select {
			case t.rx <- buf[0]:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

func (t *Terminal) readPort(offset int) (int, error) {
	switch offset {
	case kernel.PortKeyboard:
		select {
		case b := <-t.rx:
			return int(b), nil
		default:
			return 0, nil
		}
	case kernel.PortKeyboardOK:
		return boolInt(len(t.rx) > 0), nil
	case kernel.PortScreenOK:
		return 1, nil
	}
	return 0, fmt.Errorf("machine: terminal has no readable port at offset %d", offset)
}

func (t *Terminal) writePort(offset int, val int) error {
	if offset != kernel.PortScreen {
		return fmt.Errorf("machine: terminal has no writable port at offset %d", offset)
	}
	if t.out == nil {
		return nil
	}
	_, err := t.out.Write([]byte{byte(val)})
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
