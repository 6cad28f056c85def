package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuda/tinybasic"
	tbruntime "github.com/gosuda/tinybasic/runtime"
)

type runResult struct {
	Outputs []tbruntime.Output `json:"outputs"`
	Status  string             `json:"status"`
	State   json.RawMessage    `json:"state,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Run executes a program and returns a JSON result. When stateJSON is set
// the program text is ignored and the run resumes from that state.
// inputsJSON format: ["1","42", ...]
// When the inputs run out, status is "suspended" and state holds the
// snapshot to pass back in.
func Run(source, inputsJSON, stateJSON string) string {
	return RunWith(source, inputsJSON, stateJSON, nil)
}

// RunWith is Run with a provider consulted after the queued inputs.
func RunWith(source, inputsJSON, stateJSON string, provider tbruntime.InputProvider) string {
	result := runResult{Status: tbruntime.StatusFailed.String()}
	encode := func() string {
		b, _ := json.Marshal(result)
		return string(b)
	}

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			return encode()
		}
	}

	var vm *tbruntime.VM
	if strings.TrimSpace(stateJSON) != "" {
		snap, err := tbruntime.UnmarshalSnapshot([]byte(stateJSON))
		if err != nil {
			result.Error = fmt.Sprintf("state: %v", err)
			return encode()
		}
		vm, err = tinybasic.Resume(snap)
		if err != nil {
			result.Error = fmt.Sprintf("resume: %v", err)
			return encode()
		}
	} else {
		if strings.TrimSpace(source) == "" {
			result.Error = "no program provided"
			return encode()
		}
		var err error
		vm, err = tinybasic.Compile(source)
		if err != nil {
			result.Error = fmt.Sprintf("compile: %v", err)
			return encode()
		}
	}
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}
	if provider != nil {
		vm.SetInputProvider(provider)
	}

	res, err := vm.Run()
	result.Outputs = res.Outputs
	result.Status = res.Status.String()
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
		return encode()
	}
	if res.Snapshot != nil {
		b, err := tbruntime.MarshalSnapshot(res.Snapshot)
		if err != nil {
			result.Error = err.Error()
			return encode()
		}
		result.State = b
	}
	return encode()
}
