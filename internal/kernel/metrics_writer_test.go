package kernel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileWriterWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	w := FileWriter{Dir: dir}

	snap := MetricsSnapshot{
		Scheduler:   SchedulerRoundRobin,
		Global:      newKernelMetrics(),
		Preemptions: 2,
		Processes: []ProcessSnapshot{
			{ID: 1, Metrics: ProcessMetrics{Turnaround: 10}},
		},
	}
	if err := w.WriteMetrics(snap); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}

	path := filepath.Join(dir, "metricas_so_1.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), "Processo 1") {
		t.Fatalf("metrics file missing process section:\n%s", data)
	}
}
