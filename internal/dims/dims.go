// Package dims evaluates the arithmetic users type into dimension
// fields: "2*12.5+1" is 26 mm, "4cm" is 40 mm. Keeping evaluation here
// lets every numeric field accept expressions without the engines
// knowing about parsing.
package dims

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
)

// ErrNotNumeric reports an expression that evaluated to something other
// than a finite number.
var ErrNotNumeric = errors.New("dims: expression is not numeric")

// units are the accepted trailing suffixes and their factor to
// millimetres.
var units = []struct {
	suffix string
	factor float64
}{
	{"mm", 1},
	{"cm", 10},
	{"in", 25.4},
}

// EvalMm evaluates a dimension expression to millimetres. A trailing
// mm, cm or in suffix scales the whole expression; bare results are
// already millimetres. Clamping to an engine's documented bounds stays
// with the engine.
func EvalMm(input string) (float64, error) {
	body := strings.TrimSpace(input)
	factor := 1.0
	lower := strings.ToLower(body)
	for _, u := range units {
		if strings.HasSuffix(lower, u.suffix) {
			factor = u.factor
			body = strings.TrimSpace(body[:len(body)-len(u.suffix)])
			break
		}
	}
	if body == "" {
		return 0, errors.New("dims: empty expression")
	}

	out, err := expr.Eval(body, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("dims: evaluating %q: %w", input, err)
	}

	var v float64
	switch n := out.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, fmt.Errorf("%w: %q yields %T", ErrNotNumeric, input, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q yields %v", ErrNotNumeric, input, v)
	}
	return v * factor, nil
}
