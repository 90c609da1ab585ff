package driver

import (
	"time"

	"lox/interpreter-go/pkg/runtime"
)

// now is swapped out by tests.
var now = time.Now

// Natives returns the host functions every session starts with.
func Natives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"clock": runtime.NewNativeFunction("clock", 0, func(*runtime.NativeCallContext, []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(now().UnixNano()) / float64(time.Second)}, nil
		}),
	}
}
