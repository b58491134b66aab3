package evo

import (
	"fmt"
	"math/rand"
)

// Interval is a half-open range [Low, High) of real candidate values.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (iv Interval) Validate() error {
	if !(iv.Low < iv.High) {
		return fmt.Errorf("interval low must be below high: [%v, %v)", iv.Low, iv.High)
	}
	return nil
}

// Sample draws a uniform value from the interval.
func (iv Interval) Sample(rng *rand.Rand) float64 {
	return iv.Low + rng.Float64()*(iv.High-iv.Low)
}

// Scale multiplies both endpoints by m, keeping the endpoints ordered.
func (iv Interval) Scale(m float64) Interval {
	low, high := iv.Low*m, iv.High*m
	if low > high {
		low, high = high, low
	}
	return Interval{Low: low, High: high}
}

// Contains reports whether x lies inside the half-open interval.
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Low && x < iv.High
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%v, %v)", iv.Low, iv.High)
}
