package interpreter

import (
	"lox/interpreter-go/pkg/runtime"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
)

// completion is the outcome of executing a statement. A return completion
// propagates out of blocks, ifs and loops and is consumed by the nearest
// function call.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var normalCompletion = completion{kind: completionNormal}

func returnCompletion(value runtime.Value) completion {
	return completion{kind: completionReturn, value: value}
}

func (c completion) returning() bool {
	return c.kind == completionReturn
}
