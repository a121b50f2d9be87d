package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/gmofishsauce/wut4so/internal/kernel"
	"github.com/gmofishsauce/wut4so/internal/machine"
)

type runOptions struct {
	programDir string
	scriptPath string
	scheduler  kernel.SchedulerKind
	metricsDir string
	trace      bool
	interval   int
}

// runScript drives a Kernel through a scripted sequence of interrupts
// against a real Machine and program directory, reporting the final
// process table once the kernel halts or the script is exhausted.
func runScript(opts runOptions, stdout, stderr io.Writer) error {
	f, err := os.Open(opts.scriptPath)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	events, err := parseScript(f)
	if err != nil {
		return fmt.Errorf("parsing script: %w", err)
	}

	restore, err := rawTerminal()
	if err != nil {
		return fmt.Errorf("setting up terminal: %w", err)
	}
	defer restore()

	term0 := machine.NewTerminal(os.Stdin, stdout)
	m := machine.New([4]*machine.Terminal{term0})
	loader := machine.FileLoader{Dir: opts.programDir}
	writer := kernel.FileWriter{Dir: opts.metricsDir}

	var logger io.Writer = io.Discard
	if opts.trace {
		logger = stderr
	}

	k := kernel.New(m, loader, writer, logger, opts.scheduler)

	rc := k.Enter(kernel.IRQReset)
	for i := 0; rc == 0 && i < len(events); i++ {
		ev := events[i]
		m.Step(opts.interval)
		switch ev.irq {
		case kernel.IRQSyscall:
			m.WriteWord(kernel.AddrA, ev.a)
			m.WriteWord(kernel.AddrX, ev.x)
		case kernel.IRQCPUError:
			m.WriteWord(kernel.AddrErro, ev.a)
		}
		rc = k.Enter(ev.irq)
		if opts.trace {
			fmt.Fprintf(stderr, "[%d] %s -> rc=%d current=%v\n", i, ev.irq, rc, k.Current())
		}
	}

	if err := k.Err(); err != nil {
		fmt.Fprintf(stderr, "wut4so: %v\n", err)
	}
	printProcessTable(stdout, k.Processes())
	return nil
}

func printProcessTable(out io.Writer, procs []*kernel.Process) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"PID", "state", "reason", "PC", "priority", "turnaround", "preemptions"})
	for _, p := range procs {
		table.Append([]string{
			strconv.Itoa(p.ID),
			p.State.String(),
			p.Reason.String(),
			strconv.Itoa(p.Regs.PC),
			strconv.FormatFloat(p.Priority, 'f', 3, 64),
			strconv.Itoa(p.Metrics.Turnaround),
			strconv.Itoa(p.Metrics.Preemptions),
		})
	}
	table.Render()
	out.Write(buf.Bytes())
}
