package main

import (
	tbruntime "github.com/gosuda/tinybasic/runtime"
)

type appConfig struct {
	program  string
	input    string
	inState  string
	outState string
	stateFmt string
	seed     int64
	seeded   bool
	trace    bool
	tui      bool
}

type vmStartedMsg struct {
	events <-chan any
}

type vmOutputMsg struct {
	out tbruntime.Output
}

type vmInputResp struct {
	value string
	ok    bool
}

type vmPromptMsg struct {
	prompt string
	resp   chan vmInputResp
}

type vmDoneMsg struct {
	status tbruntime.RunStatus
	note   string
	err    error
}

type vmPollMsg struct{}

type pendingInput struct {
	prompt string
	resp   chan vmInputResp
}
