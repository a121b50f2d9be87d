package kernel

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter is a MetricsWriter that writes one text file per run, named
// after the active scheduler, into Dir. It is the default collaborator a
// host harness wires in; the format mirrors the source design's report
// closely enough that existing tooling built around it keeps working.
type FileWriter struct {
	Dir string
}

func (w FileWriter) WriteMetrics(snap MetricsSnapshot) error {
	path := filepath.Join(w.Dir, fmt.Sprintf("metricas_so_%d.txt", snap.Scheduler))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "METRICAS DO SO:\n\n")
	fmt.Fprintf(f, "Tempo total: %d\n", snap.Global.TotalTicks)
	fmt.Fprintf(f, "Tempo ocioso: %d\n", snap.Global.IdleTicks)
	fmt.Fprintf(f, "Numero de processos: %d\n", len(snap.Processes))
	fmt.Fprintf(f, "Preempcoes: %d\n", snap.Preemptions)
	for irq := IRQReset; irq <= IRQSyscall; irq++ {
		fmt.Fprintf(f, "Interrupcao %s: %d\n", irq, snap.Global.IRQCounts[irq])
	}

	fmt.Fprintf(f, "\nMETRICAS DOS PROCESSOS:\n\n")
	for _, ps := range snap.Processes {
		fmt.Fprintf(f, "Processo %d\n", ps.ID)
		fmt.Fprintf(f, "Tempo de retorno: %d\n", ps.Metrics.Turnaround)
		fmt.Fprintf(f, "Preempcoes: %d\n", ps.Metrics.Preemptions)
		fmt.Fprintf(f, "Tempo de resposta: %.2f\n", ps.Metrics.ResponseTime())
		for s := ProcessState(0); s < numStates; s++ {
			fmt.Fprintf(f, "Tempo no estado %s: %d\n", s, ps.Metrics.StateTime[s])
			fmt.Fprintf(f, "Numero de vezes no estado %s: %d\n", s, ps.Metrics.StateEntries[s])
		}
		fmt.Fprintln(f)
	}
	return nil
}
