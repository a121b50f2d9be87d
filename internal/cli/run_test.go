package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmofishsauce/wut4so/internal/kernel"
	"github.com/gmofishsauce/wut4so/internal/machine"
)

func TestRunScriptEndToEnd(t *testing.T) {
	dir := t.TempDir()
	progData := machine.EncodeProgram(kernel.InitLoadAddress, []int{0, 0, 0})
	if err := os.WriteFile(filepath.Join(dir, kernel.InitProgramName), progData, 0o644); err != nil {
		t.Fatal(err)
	}

	scriptPath := filepath.Join(dir, "script.txt")
	script := "TIMER\nSYSCALL 3 0\n" // one idle tick, then pid1 kills itself
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	opts := runOptions{
		scriptPath: scriptPath,
		scheduler:  kernel.SchedulerSimple,
		metricsDir: dir,
		interval:   kernel.Interval,
	}
	opts.programDir = dir

	if err := runScript(opts, &stdout, &stderr); err != nil {
		t.Fatalf("runScript: %v", err)
	}

	if !bytes.Contains(stdout.Bytes(), []byte("DEAD")) {
		t.Fatalf("expected final table to show a DEAD process, got:\n%s", stdout.String())
	}

	if _, err := os.Stat(filepath.Join(dir, "metricas_so_0.txt")); err != nil {
		t.Fatalf("expected metrics file to be written: %v", err)
	}
}
