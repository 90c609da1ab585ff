package runtime

import (
	"strconv"
	"strings"

	"lox/interpreter-go/pkg/ast"
)

// Display renders a value the way `print` shows it. An array nested inside
// itself renders as empty at the point of recursion.
func Display(v Value) string {
	return display(v, nil)
}

func display(v Value, open map[*ArrayValue]bool) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return ast.FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *ArrayValue:
		if open[val] {
			return "[  ]"
		}
		if open == nil {
			open = make(map[*ArrayValue]bool)
		}
		open[val] = true
		defer delete(open, val)
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			parts = append(parts, display(el, open))
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	case *FunctionValue:
		if val.IsLambda() {
			return "<lambda>"
		}
		return "<fn " + val.Name + ">"
	case *NativeFunctionValue:
		return "<native fn>"
	case *ClassValue:
		return val.Name
	case *InstanceValue:
		return val.Class.Name + " instance"
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// FromLiteral converts a scanned literal into a runtime value.
func FromLiteral(literal any) Value {
	switch v := literal.(type) {
	case bool:
		return BoolValue{Val: v}
	case float64:
		return NumberValue{Val: v}
	case string:
		return StringValue{Val: v}
	default:
		return Nil
	}
}
