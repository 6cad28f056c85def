package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tbruntime "github.com/gosuda/tinybasic/runtime"
)

// runPlain runs one program against a line-oriented input stream. Running
// out of input suspends the run and writes the state file.
func runPlain(cfg appConfig, stdin io.Reader, stdout, stderr io.Writer) error {
	vm, err := loadVM(cfg, stderr)
	if err != nil {
		return err
	}

	if cfg.input != "" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		stdin = f
	}
	reader := bufio.NewReader(stdin)

	vm.SetOutputHook(func(out tbruntime.Output) {
		if out.NewLine {
			fmt.Fprintln(stdout, out.Text)
		} else {
			fmt.Fprint(stdout, out.Text)
		}
	})

	vm.SetInputProvider(func() (string, bool, error) {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", false, err
		}
		if err == io.EOF && line == "" {
			return "", false, nil
		}
		return strings.TrimRight(line, "\r\n"), true, nil
	})

	res, err := vm.Run()
	if err != nil {
		return err
	}
	if res.Status == tbruntime.StatusSuspended {
		fmt.Fprintln(stdout)
	}
	note, err := finishRun(cfg, res)
	if err != nil {
		return err
	}
	fmt.Fprintln(stderr, note)
	return nil
}
