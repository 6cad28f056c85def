package tinybasic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gosuda/tinybasic"
	tbruntime "github.com/gosuda/tinybasic/runtime"
)

func render(outs []tbruntime.Output) string {
	var b strings.Builder
	for _, o := range outs {
		b.WriteString(o.Text)
		if o.NewLine {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func runSource(t *testing.T, src string, inputs ...string) (tbruntime.Result, error) {
	t.Helper()
	vm, err := tinybasic.Compile(src)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	vm.EnqueueInput(inputs...)
	return vm.Run()
}

func TestCompileAndRunPrecedence(t *testing.T) {
	res, err := runSource(t, `
10 PRINT 2 + 3 * 4
20 PRINT (2 + 3) * 4
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := render(res.Outputs); got != "14\n20\n" {
		t.Fatalf("unexpected output: %q", got)
	}
	if res.Status != tbruntime.StatusCompleted {
		t.Fatalf("unexpected status: %v", res.Status)
	}
}

func TestIntegerFloatBoundary(t *testing.T) {
	res, err := runSource(t, `
10 LET A = 7 / 2
20 PRINT A
30 LET A = INT(7 / 2)
40 PRINT A
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := render(res.Outputs); got != "3.50\n3\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestGotoSkipsLine(t *testing.T) {
	res, err := runSource(t, `
10 LET A=1
20 GOTO 40
30 LET A=99
40 PRINT A
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := render(res.Outputs); got != "1\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestGosubReturnsAfterCallSite(t *testing.T) {
	res, err := runSource(t, `
10 GOSUB 100
20 PRINT "DONE"
30 END
100 LET A=5
110 RETURN
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := render(res.Outputs); got != "DONE\n" {
		t.Fatalf("unexpected output: %q", got)
	}
	if res.Status != tbruntime.StatusEnded {
		t.Fatalf("unexpected status: %v", res.Status)
	}
}

func TestReturnWithoutGosub(t *testing.T) {
	res, err := runSource(t, "10 RETURN\n20 PRINT 1\n")
	if !errors.Is(err, tbruntime.ErrReturnWithoutGosub) {
		t.Fatalf("expected RETURN without GOSUB, got %v", err)
	}
	var rerr *tbruntime.RuntimeError
	if !errors.As(err, &rerr) || rerr.Line != 10 {
		t.Fatalf("expected runtime error at line 10, got %#v", err)
	}
	if res.Status != tbruntime.StatusFailed || len(res.Outputs) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPrintSpacingAndTrailingComma(t *testing.T) {
	res, err := runSource(t, `
10 LET A=1
20 LET B=2
30 LET C=3
40 PRINT A;B,C,
50 PRINT "X"
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Outputs[0].NewLine {
		t.Fatalf("trailing comma must suppress newline: %+v", res.Outputs[0])
	}
	if got := render(res.Outputs); got != "1 23X\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestTabNeverMovesBackward(t *testing.T) {
	res, err := runSource(t, `
10 PRINT "ABCDEFGH";TAB(5);"Z"
20 PRINT "AB";TAB(5);"Z"
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := render(res.Outputs); got != "ABCDEFGH  Z\nAB    Z\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestMissingLineTarget(t *testing.T) {
	for _, src := range []string{"10 GOTO 99\n", "10 GOSUB 99\n"} {
		_, err := runSource(t, src)
		if !errors.Is(err, tbruntime.ErrLineNotFound) {
			t.Fatalf("%q: expected line not found, got %v", src, err)
		}
		if !strings.Contains(err.Error(), "line not found") {
			t.Fatalf("%q: unexpected message %q", src, err.Error())
		}
	}
}

func TestResumeMatchesUninterruptedRun(t *testing.T) {
	src := `
5 PRINT "START"
10 LET T = 0
20 GOSUB 100
30 PRINT "TOTAL"; T
40 END
100 INPUT A, B
110 LET T = A + B
120 PRINT T / 2
130 RETURN
`
	whole, err := runSource(t, src, "3", "4")
	if err != nil {
		t.Fatalf("uninterrupted run failed: %v", err)
	}

	first, err := runSource(t, src)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first.Status != tbruntime.StatusSuspended || first.Snapshot == nil {
		t.Fatalf("expected suspension, got %+v", first)
	}
	data, err := tbruntime.MarshalSnapshot(first.Snapshot)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	snap, err := tbruntime.UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if snap.Line != 100 {
		t.Fatalf("expected resume line 100, got %d", snap.Line)
	}

	vm, err := tinybasic.Resume(snap)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	vm.EnqueueInput("3", "4")
	resumed, err := vm.Run()
	if err != nil {
		t.Fatalf("resumed run failed: %v", err)
	}

	// The suspended INPUT runs again from its first prompt.
	before := strings.TrimSuffix(render(first.Outputs), tbruntime.Prompt)
	want := strings.TrimPrefix(render(whole.Outputs), before)
	if got := render(resumed.Outputs); got != want {
		t.Fatalf("resumed output %q, want %q", got, want)
	}
	if got := render(resumed.Outputs); got != "??3.50\nTOTAL 7\n" {
		t.Fatalf("unexpected resumed output: %q", got)
	}
	if resumed.Status != whole.Status {
		t.Fatalf("status %v, want %v", resumed.Status, whole.Status)
	}
}

func TestParseReturnsOrderedLines(t *testing.T) {
	lines, err := tinybasic.Parse("30 END\n10 PRINT 1\nPRINT 2\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := []int{}
	for _, l := range lines {
		got = append(got, l.Number)
	}
	if len(got) != 3 || got[0] != 30 || got[1] != 10 || got[2] != 11 {
		t.Fatalf("unexpected line numbers: %v", got)
	}
}
