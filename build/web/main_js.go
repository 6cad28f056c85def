//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/gosuda/tinybasic/build/mobile"
)

// inputNext asks the page for the next INPUT line. A missing hook or a
// null/undefined answer suspends the run.
func inputNext() (string, bool, error) {
	fn := js.Global().Get("tinybasicInputNext")
	if fn.Type() != js.TypeFunction {
		return "", false, nil
	}
	v := fn.Invoke()
	if v.IsUndefined() || v.IsNull() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func argString(args []js.Value, i int) string {
	if len(args) <= i || args[i].IsUndefined() || args[i].IsNull() {
		return ""
	}
	return args[i].String()
}

// runProgram(source, inputsJSON, stateJSON) returns the bridge's JSON result.
func runProgram(this js.Value, args []js.Value) any {
	return mobile.RunWith(argString(args, 0), argString(args, 1), argString(args, 2), inputNext)
}

func main() {
	js.Global().Set("tinybasicRun", js.FuncOf(runProgram))
	select {}
}
