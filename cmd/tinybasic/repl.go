package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/gosuda/tinybasic/parser"
	tbruntime "github.com/gosuda/tinybasic/runtime"
)

const (
	banner      = "TinyBasic. Type LIST, RUN or CLEAR; Ctrl+D quits."
	historyFile = ".tinybasic_history"
	promptMain  = "> "
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// shell is the immediate-mode session. Program lines accumulate in vm
// across commands.
type shell struct {
	cfg     appConfig
	vm      *tbruntime.VM
	out     io.Writer
	errOut  io.Writer
	read    func(prompt string) (string, error)
	pending string
}

func newShell(cfg appConfig, out, errOut io.Writer, read func(string) (string, error)) *shell {
	sh := &shell{
		cfg:    cfg,
		vm:     tbruntime.New(),
		out:    out,
		errOut: errOut,
		read:   read,
	}
	configureVM(sh.vm, cfg, errOut)
	sh.vm.SetOutputHook(sh.write)
	sh.vm.SetInputProvider(sh.input)
	return sh
}

// write holds back unterminated text so INPUT can use it as the prompt.
func (sh *shell) write(out tbruntime.Output) {
	if !out.NewLine {
		sh.pending += out.Text
		return
	}
	fmt.Fprintln(sh.out, sh.pending+out.Text)
	sh.pending = ""
}

func (sh *shell) flush() {
	if sh.pending != "" {
		fmt.Fprintln(sh.out, sh.pending)
		sh.pending = ""
	}
}

func (sh *shell) input() (string, bool, error) {
	prompt := sh.pending
	sh.pending = ""
	line, err := sh.read(prompt)
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return line, true, nil
}

func (sh *shell) fail(err error) {
	fmt.Fprintln(sh.errOut, errStyle.Render(err.Error()))
}

// exec handles one line typed at the main prompt.
func (sh *shell) exec(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	cmd, ok := parser.Immediate(line)
	if !ok {
		if err := sh.vm.ParseLine(line); err != nil {
			sh.fail(err)
		}
		return
	}
	switch cmd {
	case "LIST":
		for _, l := range sh.vm.List() {
			fmt.Fprintln(sh.out, l)
		}
	case "CLEAR":
		sh.vm.Clear()
	case "RUN":
		sh.run()
	}
}

func (sh *shell) run() {
	if _, resuming := sh.vm.Resuming(); !resuming {
		sh.vm.Reset()
	}
	res, err := sh.vm.Run()
	sh.flush()
	if err != nil {
		sh.fail(err)
		return
	}
	note, err := finishRun(sh.cfg, res)
	if err != nil {
		sh.fail(err)
		return
	}
	if line, ok := sh.vm.Resuming(); ok {
		note += fmt.Sprintf("; RUN continues at line %d", line)
	}
	fmt.Fprintln(sh.out, noteStyle.Render(note))
}

func runREPL(cfg appConfig) error {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sh := newShell(cfg, os.Stdout, os.Stderr, ln.Prompt)
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		sh.exec(line)
	}
}
