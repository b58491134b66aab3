package objective

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Built-in objective names.
const (
	Cubic478    = "cubic_478"
	Cubic27     = "cubic_27"
	Quadratic56 = "quadratic_56"
	ExpGap      = "exp_gap"
)

// DefaultName is the objective used when a run does not name one.
const DefaultName = Cubic478

var builtins = map[string]func(float64) float64{
	// Roots at 478, -4567 and 1240.
	Cubic478: func(x float64) float64 {
		return (x - 478.0) * (x + 4567.0) * (x - 1240.0)
	},
	// Root at 3.
	Cubic27: func(x float64) float64 {
		return x*x*x - 27.0
	},
	// Roots at 2 and 3.
	Quadratic56: func(x float64) float64 {
		return x*x - 5.0*x + 6.0
	},
	// Root at -10.
	ExpGap: func(x float64) float64 {
		return math.Pow(3.0, x) - math.Pow(9.0, x+5.0)
	},
}

// Resolve returns the built-in objective registered under name. The empty
// name resolves to DefaultName.
func Resolve(name string) (Function, error) {
	key := strings.TrimSpace(strings.ToLower(name))
	if key == "" {
		key = DefaultName
	}
	eval, ok := builtins[key]
	if !ok {
		return nil, fmt.Errorf("unknown objective: %s (known: %s)", name, strings.Join(Names(), ", "))
	}
	return Func{name: key, eval: eval}, nil
}

// Names lists the built-in objective names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
