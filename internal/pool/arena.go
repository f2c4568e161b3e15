package pool

import "sync"

// Arena holds the scratch slices one block needs while it is encoded or decoded.
//
// All slices are returned with zero length and enough capacity for the block,
// so callers append into them without reallocating. An Arena must not be used
// after PutArena.
type Arena struct {
	// Actives receives the active sample values (encode) or the reconstructed actives (decode).
	Actives []uint32
	// Signal holds the zigzagged signal values before packing or after unpacking.
	Signal []uint32
	// Outliers holds the zigzagged outlier values before packing or after unpacking.
	Outliers []uint32
	// Deltas holds the first differences of Actives.
	Deltas []int32
}

var arenaPool = sync.Pool{
	New: func() any { return &Arena{} },
}

// GetArena retrieves an Arena sized for a block of n samples.
//
// Example:
//
//	arena := pool.GetArena(len(samples))
//	defer pool.PutArena(arena)
func GetArena(n int) *Arena {
	a, _ := arenaPool.Get().(*Arena)
	a.Actives = grow(a.Actives, n)
	a.Signal = grow(a.Signal, n)
	a.Outliers = grow(a.Outliers, n)
	a.Deltas = grow(a.Deltas, n)

	return a
}

// PutArena returns an Arena to the pool.
func PutArena(a *Arena) {
	if a == nil {
		return
	}
	arenaPool.Put(a)
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, 0, n)
	}

	return s[:0]
}
