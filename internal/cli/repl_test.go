package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	connected bool

	calls []string
}

func (f *fakeExec) isConnected() bool { return f.connected }
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Store(ctx context.Context, key string) error {
	f.calls = append(f.calls, "store "+key)
	return nil
}
func (f *fakeExec) Get(ctx context.Context, key string) error {
	f.calls = append(f.calls, "get "+key)
	return nil
}
func (f *fakeExec) List(ctx context.Context, prefix string) error {
	f.calls = append(f.calls, "list "+prefix)
	return nil
}
func (f *fakeExec) Keys(ctx context.Context, prefix string) error {
	f.calls = append(f.calls, "keys "+prefix)
	return nil
}
func (f *fakeExec) Batch(ctx context.Context) error {
	f.calls = append(f.calls, "batch")
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, key string) error {
	f.calls = append(f.calls, "delete "+key)
	return nil
}
func (f *fakeExec) Export(ctx context.Context, prefix string) error {
	f.calls = append(f.calls, "export "+prefix)
	return nil
}
func (f *fakeExec) Derive(ctx context.Context) error {
	f.calls = append(f.calls, "derive")
	return nil
}
func (f *fakeExec) Stats() error {
	f.calls = append(f.calls, "stats")
	return nil
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"status",
		"store wallet",
		"get wallet",
		"list ch/",
		"l",
		"keys ch/",
		"batch",
		"delete wallet",
		"export ch/",
		"derive",
		"stats",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{connected: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{
		"status",
		"store wallet",
		"get wallet",
		"list ch/",
		"list ",
		"keys ch/",
		"batch",
		"delete wallet",
		"export ch/",
		"derive",
		"stats",
	}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q (all: %v)", i, exec.calls[i], want[i], exec.calls)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("store\nget\ndelete\nquit\n")
	exec := &fakeExec{connected: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_GuardsStoreCommandsWhenDisconnected(t *testing.T) {
	lines := silencePrintln(t)

	input := strings.NewReader("store k\nget k\nlist\nkeys\nbatch\ndelete k\nexport\nderive\nexit\n")
	exec := &fakeExec{connected: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	// Only derive goes through; everything touching the store is refused.
	if len(exec.calls) != 1 || exec.calls[0] != "derive" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}

	refused := 0
	for _, l := range *lines {
		if strings.Contains(l, "Not connected") {
			refused++
		}
	}
	if refused != 7 {
		t.Fatalf("expected 7 refusals, got %d (output: %q)", refused, *lines)
	}
}

func TestRunREPL_EmptyLinesAndEOF(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("\n   \n")
	exec := &fakeExec{connected: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
