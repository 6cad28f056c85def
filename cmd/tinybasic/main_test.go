package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	tbruntime "github.com/gosuda/tinybasic/runtime"
)

const sumProgram = `10 INPUT A
20 INPUT B
30 PRINT A + B
40 END
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunPlainCompletes(t *testing.T) {
	dir := t.TempDir()
	cfg := appConfig{
		program:  writeFile(t, dir, "sum.bas", sumProgram),
		outState: filepath.Join(dir, "state.json"),
	}
	var stdout, stderr bytes.Buffer
	if err := runPlain(cfg, strings.NewReader("2\n3\n"), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := stdout.String(); got != "??5\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
	if got := stderr.String(); got != "END. OK.\n" {
		t.Fatalf("unexpected stderr: %q", got)
	}
	if _, err := os.Stat(cfg.outState); !os.IsNotExist(err) {
		t.Fatalf("state file must not be written on completion: %v", err)
	}
}

func TestRunPlainSuspendAndResume(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.yaml")
	cfg := appConfig{
		program:  writeFile(t, dir, "sum.bas", sumProgram),
		outState: statePath,
	}
	var stdout, stderr bytes.Buffer
	if err := runPlain(cfg, strings.NewReader("2\n"), &stdout, &stderr); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "written state to "+statePath) {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if tbruntime.IsJSONSnapshotData(data) {
		t.Fatalf("expected yaml state from extension, got %s", data)
	}

	resume := appConfig{
		input:    writeFile(t, dir, "input.txt", "3\n"),
		inState:  statePath,
		outState: filepath.Join(dir, "unused.json"),
	}
	stdout.Reset()
	stderr.Reset()
	if err := runPlain(resume, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("resumed run failed: %v", err)
	}
	if got := stdout.String(); got != "?5\n" {
		t.Fatalf("unexpected resumed stdout: %q", got)
	}
}

func TestRunPlainReportsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	cfg := appConfig{program: writeFile(t, dir, "bad.bas", "10 GOTO 50\n")}
	var stdout, stderr bytes.Buffer
	err := runPlain(cfg, strings.NewReader(""), &stdout, &stderr)
	if !errors.Is(err, tbruntime.ErrLineNotFound) {
		t.Fatalf("expected line not found, got %v", err)
	}
}

func TestRunPlainNeedsProgram(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runPlain(appConfig{}, strings.NewReader(""), &stdout, &stderr)
	if !errors.Is(err, errNoProgram) {
		t.Fatalf("expected errNoProgram, got %v", err)
	}
}

func TestRunPlainSeedAndTrace(t *testing.T) {
	dir := t.TempDir()
	cfg := appConfig{
		program: writeFile(t, dir, "rnd.bas", "10 LET A = RND(1)\n20 PRINT A\n"),
		seed:    7,
		seeded:  true,
		trace:   true,
	}
	var first, second, stderr bytes.Buffer
	if err := runPlain(cfg, strings.NewReader(""), &first, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "[10] LET A = RND(1)") {
		t.Fatalf("missing trace line: %q", stderr.String())
	}
	if err := runPlain(cfg, strings.NewReader(""), &second, io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("seeded runs differ: %q vs %q", first.String(), second.String())
	}
}

func TestShellImmediateMode(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	inputs := []string{"4"}
	prompts := []string{}
	read := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(inputs) == 0 {
			return "", io.EOF
		}
		v := inputs[0]
		inputs = inputs[1:]
		return v, nil
	}
	sh := newShell(appConfig{outState: filepath.Join(dir, "state.json")}, &out, &errOut, read)

	for _, line := range []string{
		"20 PRINT A * 2",
		"10 INPUT A",
		"LIST",
	} {
		sh.exec(line)
	}
	if got := out.String(); got != "10 INPUT A\n20 PRINT A * 2\n" {
		t.Fatalf("unexpected listing: %q", got)
	}

	out.Reset()
	sh.exec("RUN")
	if !strings.HasPrefix(out.String(), "8\n") {
		t.Fatalf("unexpected run output: %q", out.String())
	}
	if len(prompts) != 1 || prompts[0] != tbruntime.Prompt {
		t.Fatalf("unexpected prompts: %v", prompts)
	}

	sh.exec("15 LET")
	if errOut.Len() == 0 {
		t.Fatalf("expected a syntax error for a bad line")
	}
	out.Reset()
	sh.exec("LIST")
	if got := out.String(); got != "10 INPUT A\n20 PRINT A * 2\n" {
		t.Fatalf("bad line must leave the program untouched: %q", got)
	}

	out.Reset()
	sh.exec("RUN")
	if !strings.Contains(out.String(), "RUN continues at line 10") {
		t.Fatalf("expected suspension note, got %q", out.String())
	}
	if _, ok := sh.vm.Resuming(); !ok {
		t.Fatalf("expected pending resume point")
	}

	sh.exec("CLEAR")
	out.Reset()
	sh.exec("LIST")
	if out.Len() != 0 {
		t.Fatalf("CLEAR must drop the program, got %q", out.String())
	}
}

func TestFrontendOutputPaneScrolls(t *testing.T) {
	var m tea.Model = newModel(appConfig{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	for i := 0; i < 30; i++ {
		m, _ = m.Update(vmOutputMsg{out: tbruntime.Output{Text: fmt.Sprintf("LINE %02d", i), NewLine: true}})
	}
	view := m.View()
	if !strings.Contains(view, "LINE 29") || strings.Contains(view, "LINE 00") {
		t.Fatalf("expected the pane to follow the newest output:\n%s", view)
	}
	if got := m.(model).viewport.Height; got != 9 {
		t.Fatalf("viewport height %d, want 9", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if m.(model).viewport.AtBottom() {
		t.Fatalf("PgUp must scroll back")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if !m.(model).viewport.AtBottom() {
		t.Fatalf("G must return to the newest output")
	}
}
