package main

import (
	"flag"
	"fmt"
	"os"

	tbruntime "github.com/gosuda/tinybasic/runtime"
)

func main() {
	in := flag.String("in", "", "input state file (json or yaml)")
	out := flag.String("out", "", "output state file path")
	to := flag.String("to", "", "output format: json|yaml (default by -out extension)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/statecodec -in <input> -out <output> [-to json|yaml]")
		os.Exit(2)
	}
	format := *to
	if format == "" {
		format = tbruntime.FormatForPath(*out)
	}
	if err := tbruntime.ConvertSnapshotFile(*in, *out, format); err != nil {
		fmt.Fprintf(os.Stderr, "convert failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("converted %s -> %s (%s)\n", *in, *out, format)
}
