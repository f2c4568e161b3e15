package encoding

import (
	"math/bits"

	"github.com/arloliu/powerstrip/format"
)

// DeltaEncode returns the first differences of actives with an implicit leading zero.
func DeltaEncode(actives []uint32) []int32 {
	return AppendDeltas(make([]int32, 0, len(actives)), actives)
}

// AppendDeltas appends the first differences of actives to dst.
//
// deltas[0] is actives[0] and deltas[i] is actives[i]-actives[i-1].
func AppendDeltas(dst []int32, actives []uint32) []int32 {
	var prev int32
	for _, v := range actives {
		cur := int32(v)
		dst = append(dst, cur-prev)
		prev = cur
	}

	return dst
}

// BitsNeeded returns the narrowest signed width that holds delta: 1 for zero,
// otherwise floor(log2|delta|)+2.
func BitsNeeded(delta int32) int {
	if delta == 0 {
		return 1
	}

	mag := uint32(delta)
	if delta < 0 {
		mag = uint32(-int64(delta))
	}

	return bits.Len32(mag) + 1
}

// BestBitWidth returns the signal width in [1, format.MaxSignalBits] that
// minimizes w*count(fits) + format.OutlierBits*count(escaped).
//
// A delta fits width w when BitsNeeded(delta) <= w, which is exactly when its
// zigzag value is below the escape marker for w. Ties resolve to the smaller width.
// Empty input returns 1.
func BestBitWidth(deltas []int32) uint8 {
	var counts [format.MaxSignalBits + 2]int
	for _, d := range deltas {
		counts[min(BitsNeeded(d), format.MaxSignalBits+1)]++
	}

	best, bestCost := 1, -1
	fits := 0
	for w := 1; w <= format.MaxSignalBits; w++ {
		fits += counts[w]
		cost := w*fits + format.OutlierBits*(len(deltas)-fits)
		if bestCost < 0 || cost < bestCost {
			best, bestCost = w, cost
		}
	}

	return uint8(best)
}

// ZigZagEncode maps a signed value onto the unsigned order 0, -1, 1, -2, 2, ...
func ZigZagEncode(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(z uint32) int32 {
	return int32(z>>1) ^ -int32(z&1)
}
