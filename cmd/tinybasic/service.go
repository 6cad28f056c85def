package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gosuda/tinybasic"
	"github.com/gosuda/tinybasic/ast"
	tbruntime "github.com/gosuda/tinybasic/runtime"
)

var errNoProgram = errors.New("no program: give a source file or -in_state")

// loadVM builds the VM from a saved state when one is given, otherwise
// from the program file.
func loadVM(cfg appConfig, trace io.Writer) (*tbruntime.VM, error) {
	var vm *tbruntime.VM
	switch {
	case cfg.inState != "":
		snap, err := tbruntime.ReadSnapshotFile(cfg.inState)
		if err != nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
		vm, err = tinybasic.Resume(snap)
		if err != nil {
			return nil, fmt.Errorf("resume: %w", err)
		}
	case cfg.program != "":
		src, err := os.ReadFile(cfg.program)
		if err != nil {
			return nil, fmt.Errorf("load program: %w", err)
		}
		vm, err = tinybasic.Compile(string(src))
		if err != nil {
			return nil, fmt.Errorf("compile: %w", err)
		}
	default:
		return nil, errNoProgram
	}
	configureVM(vm, cfg, trace)
	return vm, nil
}

func configureVM(vm *tbruntime.VM, cfg appConfig, trace io.Writer) {
	if cfg.seeded {
		vm.SetSeed(cfg.seed)
	}
	if cfg.trace && trace != nil {
		vm.SetTraceHook(func(line int, stmt ast.Statement) {
			fmt.Fprintf(trace, "[%d] %s\n", line, ast.Format(stmt))
		})
	}
}

// finishRun saves the state of a suspended run and returns the status line
// to show the user.
func finishRun(cfg appConfig, res tbruntime.Result) (string, error) {
	switch res.Status {
	case tbruntime.StatusSuspended:
		if err := tbruntime.WriteSnapshotFile(cfg.outState, res.Snapshot, cfg.stateFmt); err != nil {
			return "", fmt.Errorf("write state: %w", err)
		}
		return fmt.Sprintf("written state to %s", cfg.outState), nil
	case tbruntime.StatusEnded:
		return "END. OK.", nil
	default:
		return "OK.", nil
	}
}

func runVM(cfg appConfig, events chan<- any) {
	defer close(events)
	vm, err := loadVM(cfg, nil)
	if err != nil {
		events <- vmDoneMsg{status: tbruntime.StatusFailed, err: err}
		return
	}

	vm.SetOutputHook(func(out tbruntime.Output) {
		events <- vmOutputMsg{out: out}
	})
	vm.SetInputProvider(func() (string, bool, error) {
		resp := make(chan vmInputResp, 1)
		events <- vmPromptMsg{prompt: tbruntime.Prompt, resp: resp}
		r := <-resp
		return r.value, r.ok, nil
	})

	res, err := vm.Run()
	if err != nil {
		events <- vmDoneMsg{status: res.Status, err: err}
		return
	}
	note, err := finishRun(cfg, res)
	events <- vmDoneMsg{status: res.Status, note: note, err: err}
}
