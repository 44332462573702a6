// Package expr compiles textual expressions of a single variable x
// into evaluable functions for the root-finding library.
package expr

import (
	"fmt"
	"math"
	"regexp"

	"github.com/Knetic/govaluate"

	"github.com/copyleftdev/ROOTR/internal/rootfind"
)

// builtins are the math functions available inside expressions.
var builtins = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return f(toFloat(args[0])), nil
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return math.NaN()
	}
}

// decimalComma matches a comma used as a decimal separator, i.e.
// directly between two digits. Argument-list commas like "pow(x, 3)"
// are left alone.
var decimalComma = regexp.MustCompile(`(\d),(\d)`)

// Compile parses src as an expression of the variable x and returns it
// as an evaluable function. Parse errors are reported to the caller;
// runtime evaluation errors surface as NaN from the returned function,
// which the solver guards terminate on.
//
// The returned function allocates its own parameter map per call, so
// it is safe to share across concurrent solves.
func Compile(src string) (rootfind.Func, error) {
	// Accept decimal commas in numeric literals.
	src = decimalComma.ReplaceAllString(src, "$1.$2")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(src, builtins)
	if err != nil {
		return nil, fmt.Errorf("expr: compile %q: %w", src, err)
	}

	return func(x float64) float64 {
		v, err := parsed.Evaluate(map[string]interface{}{"x": x})
		if err != nil {
			return math.NaN()
		}
		f, ok := v.(float64)
		if !ok {
			return math.NaN()
		}
		return f
	}, nil
}
