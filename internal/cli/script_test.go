package cli

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

func TestParseScript(t *testing.T) {
	in := strings.NewReader(`
# comment
RESET
TIMER
SYSCALL 2 1000
CPU_ERROR 7
`)
	events, err := parseScript(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []scriptEvent{
		{irq: kernel.IRQReset},
		{irq: kernel.IRQTimer},
		{irq: kernel.IRQSyscall, a: 2, x: 1000},
		{irq: kernel.IRQCPUError, a: 7},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestParseScriptRejectsUnknownEvent(t *testing.T) {
	if _, err := parseScript(strings.NewReader("NONSENSE")); err == nil {
		t.Fatal("expected error for unrecognized event")
	}
}

func TestParseScriptRejectsBadArgCount(t *testing.T) {
	if _, err := parseScript(strings.NewReader("SYSCALL 1")); err == nil {
		t.Fatal("expected error for missing SYSCALL argument")
	}
}
