package evo

import "math"

// betterFitness reports whether a ranks strictly better (lower) than b.
// NaN always loses, so a candidate with non-finite fitness is never chosen
// as champion; the natural < order handles infinities.
func betterFitness(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

// worseFitness reports whether a ranks strictly worse (higher) than b.
// NaN ranks worst, putting broken candidates first in line for replacement.
func worseFitness(a, b float64) bool {
	if math.IsNaN(a) {
		return !math.IsNaN(b)
	}
	if math.IsNaN(b) {
		return false
	}
	return a > b
}
