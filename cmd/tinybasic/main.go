package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const defaultStateFile = "tinybasic_state.json"

func main() {
	input := flag.String("input", "", "file INPUT reads from (default stdin)")
	inState := flag.String("in_state", "", "resume from a saved state file")
	outState := flag.String("out_state", defaultStateFile, "where the state is written when INPUT runs out of lines")
	stateFmt := flag.String("statefmt", "", "state file format: json|yaml (default by extension)")
	seed := flag.Int64("seed", 0, "seed for RND")
	trace := flag.Bool("trace", false, "print each executed line to stderr")
	tui := flag.Bool("tui", false, "run in a full-screen terminal UI")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: tinybasic [flags] [program.bas]")
		os.Exit(2)
	}

	cfg := appConfig{
		program:  flag.Arg(0),
		input:    strings.TrimSpace(*input),
		inState:  strings.TrimSpace(*inState),
		outState: strings.TrimSpace(*outState),
		stateFmt: *stateFmt,
		seed:     *seed,
		trace:    *trace,
		tui:      *tui,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.seeded = true
		}
	})
	if cfg.outState == "" {
		cfg.outState = defaultStateFile
	}

	switch {
	case cfg.tui:
		p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "tui: %v\n", err)
			os.Exit(1)
		}
	case cfg.program == "" && cfg.inState == "" && cfg.input == "" && term.IsTerminal(int(os.Stdin.Fd())):
		if err := runREPL(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "repl: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := runPlain(cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
	}
}
