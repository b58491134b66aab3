package objective

import (
	"errors"
	"math"
)

// Function is a closed-form scalar objective whose roots are sought. Eval may
// return NaN or infinities; callers decide how non-finite values rank.
type Function interface {
	Name() string
	Eval(x float64) float64
}

// Func adapts a plain closure into a named Function.
type Func struct {
	name string
	eval func(float64) float64
}

func NewFunc(name string, eval func(float64) float64) (Func, error) {
	if name == "" {
		return Func{}, errors.New("objective name is required")
	}
	if eval == nil {
		return Func{}, errors.New("objective closure is required")
	}
	return Func{name: name, eval: eval}, nil
}

func (f Func) Name() string { return f.name }

func (f Func) Eval(x float64) float64 { return f.eval(x) }

// Fitness is the unsigned objective value of a candidate; zero at an exact
// root, lower is better.
func Fitness(f Function, x float64) float64 {
	return math.Abs(f.Eval(x))
}
