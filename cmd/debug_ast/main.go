package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goforj/godump"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
)

func main() {
	dump := flag.Bool("dump", false, "dump the full node tree of every line")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/debug_ast [-dump] <program.bas>")
		os.Exit(2)
	}
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		panic(err)
	}
	lines, err := parser.ParseProgram(string(src))
	if err != nil {
		panic(err)
	}
	fmt.Printf("lines=%d\n", len(lines))
	for _, l := range lines {
		fmt.Printf("%5d %-14s %s\n", l.Number, kind(l.Stmt), ast.Format(l.Stmt))
		if *dump {
			godump.Dump(l.Stmt)
		}
	}
}

func kind(stmt ast.Statement) string {
	name := fmt.Sprintf("%T", stmt)
	return strings.TrimPrefix(name, "ast.")
}
