package machine

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := New([4]*Terminal{})
	if err := m.WriteWord(42, 7); err != nil {
		t.Fatal(err)
	}
	got, err := m.ReadWord(42)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Fatalf("ReadWord(42) = %d, want 7", got)
	}
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := New([4]*Terminal{})
	if _, err := m.ReadWord(-1); err == nil {
		t.Fatal("expected error reading negative address")
	}
	if err := m.WriteWord(memSize, 1); err == nil {
		t.Fatal("expected error writing past memSize")
	}
}

func TestTerminalKeyboardNonBlocking(t *testing.T) {
	var screen bytes.Buffer
	term := NewTerminal(strings.NewReader("A"), &screen)
	m := New([4]*Terminal{term})

	// Give the pump goroutine a chance to deliver the byte; a channel
	// receive loop would be racy to assert on directly, so read via the
	// bus API in a short retry loop instead of sleeping a fixed amount.
	var ok int
	for i := 0; i < 100000; i++ {
		v, err := m.ReadPort(kernel.PortKeyboardOK)
		if err != nil {
			t.Fatal(err)
		}
		ok = v
		if ok != 0 {
			break
		}
		runtime.Gosched()
	}
	if ok == 0 {
		t.Fatal("keyboard status never went ready")
	}
	data, err := m.ReadPort(kernel.PortKeyboard)
	if err != nil {
		t.Fatal(err)
	}
	if data != 'A' {
		t.Fatalf("keyboard data = %d, want %d", data, 'A')
	}
}

func TestTerminalScreenWrite(t *testing.T) {
	var screen bytes.Buffer
	term := NewTerminal(nil, &screen)
	m := New([4]*Terminal{term})

	ok, err := m.ReadPort(kernel.PortScreenOK)
	if err != nil || ok == 0 {
		t.Fatalf("screen not ready: ok=%d err=%v", ok, err)
	}
	if err := m.WritePort(kernel.PortScreen, 'x'); err != nil {
		t.Fatal(err)
	}
	if screen.String() != "x" {
		t.Fatalf("screen contents = %q, want %q", screen.String(), "x")
	}
}

func TestClockPorts(t *testing.T) {
	m := New([4]*Terminal{})
	if err := m.WritePort(kernel.ClockTimerPort, 50); err != nil {
		t.Fatal(err)
	}
	got, err := m.ReadPort(kernel.ClockTimerPort)
	if err != nil || got != 50 {
		t.Fatalf("clock timer port = %d, err=%v, want 50", got, err)
	}
	m.Step(10)
	count, err := m.ReadPort(kernel.ClockInstructionsPort)
	if err != nil || count != 10 {
		t.Fatalf("instruction count = %d, err=%v, want 10", count, err)
	}
}

func TestFileLoaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := EncodeProgram(200, []int{1, 2, 3})
	if err := os.WriteFile(filepath.Join(dir, "p.maq"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	loader := FileLoader{Dir: dir}
	m := New([4]*Terminal{})
	addr, err := loader.Load(m, "p.maq")
	if err != nil {
		t.Fatal(err)
	}
	if addr != 200 {
		t.Fatalf("load address = %d, want 200", addr)
	}
	for i, want := range []int{1, 2, 3} {
		got, err := m.ReadWord(200 + i)
		if err != nil || got != want {
			t.Fatalf("word %d = %d, err=%v, want %d", i, got, err, want)
		}
	}
}

func TestFileLoaderBadMagic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.maq"), []byte{0, 0, 0, 0, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	loader := FileLoader{Dir: dir}
	if _, err := loader.Load(New([4]*Terminal{}), "bad.maq"); err == nil {
		t.Fatal("expected error for bad magic")
	}
}
