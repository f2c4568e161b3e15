package encoding

import "math"

const (
	// NoFloor is the floor sentinel meaning "no dominant baseline". Every sample is active.
	NoFloor uint16 = math.MaxUint16

	// DefaultMaxFloor is the default cutoff: only values below it may become the floor.
	DefaultMaxFloor uint16 = 1000

	// DefaultWindow is the default tolerance around the floor inside which samples are inactive.
	DefaultWindow uint16 = 3

	// floorDominance is the divisor for the dominance threshold: a floor must
	// account for strictly more than 1/floorDominance of the samples.
	floorDominance = 10
)

// DetectFloor returns the most common sample value below maxFloor when it
// accounts for more than 10% of samples, and NoFloor otherwise.
//
// Ties between equally common values resolve to the smaller value. Runs in
// O(len(samples)) time with an O(maxFloor) histogram.
func DetectFloor(samples []uint16, maxFloor uint16) uint16 {
	if len(samples) == 0 || maxFloor == 0 {
		return NoFloor
	}

	hist := make([]int, maxFloor)
	for _, s := range samples {
		if s < maxFloor {
			hist[s]++
		}
	}

	best, bestCount := 0, 0
	for v, c := range hist {
		if c > bestCount {
			best, bestCount = v, c
		}
	}

	if bestCount*floorDominance > len(samples) {
		return uint16(best)
	}

	return NoFloor
}
