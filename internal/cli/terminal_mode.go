package cli

import (
	"os"

	"golang.org/x/term"
)

// rawTerminal puts stdin into raw mode for the duration of a run.
// wut4so's terminal 0 reads stdin byte-by-byte rather than line-by-line,
// so canonical mode would hold keystrokes back until Enter. restore is a
// no-op, safe to call unconditionally, if stdin isn't actually a
// terminal.
func rawTerminal() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { term.Restore(fd, state) }, nil
}
