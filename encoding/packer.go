package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/bitpack"
	"github.com/arloliu/powerstrip/internal/pool"
)

// Bitpacked is a run of Len values packed at Bits bits each.
type Bitpacked struct {
	Len  uint32
	Bits uint8
	Data []byte
}

// PackBits packs values at the given width.
func PackBits(values []uint32, width uint8) Bitpacked {
	return Bitpacked{
		Len:  uint32(len(values)),
		Bits: width,
		Data: bitpack.Pack(nil, values, int(width)),
	}
}

// Validate checks that Bits is a supported width and that Data holds exactly
// the packed size of Len values.
func (b Bitpacked) Validate() error {
	if b.Bits < bitpack.MinWidth || b.Bits > bitpack.MaxWidth {
		return fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, b.Bits)
	}

	want := bitpack.PackedSize(int(b.Len), int(b.Bits))
	if len(b.Data) != want {
		return fmt.Errorf("%w: %d values at %d bits need %d bytes, have %d",
			errs.ErrRegionSize, b.Len, b.Bits, want, len(b.Data))
	}

	return nil
}

// Values unpacks the region, appending to dst.
func (b Bitpacked) Values(dst []uint32) ([]uint32, error) {
	if err := b.Validate(); err != nil {
		return dst, err
	}

	return bitpack.Unpack(dst, b.Data, int(b.Len), int(b.Bits))
}

// Size returns the encoded size of Data in bytes.
func (b Bitpacked) Size() int {
	return len(b.Data)
}

// Packed is the delta-encoded form of an actives buffer: one signal value per
// active sample, plus the escaped deltas that did not fit the signal width.
type Packed struct {
	Signal   Bitpacked
	Outliers Bitpacked
}

// Marker returns the escape value for a signal width.
func Marker(width uint8) uint32 {
	return uint32(1)<<width - 1
}

// Pack delta-encodes actives and packs the zigzagged deltas at the width
// chosen by BestBitWidth, escaping the deltas that do not fit into the
// 17-bit outlier channel.
func Pack(actives []uint32) Packed {
	arena := pool.GetArena(len(actives))
	defer pool.PutArena(arena)

	deltas := AppendDeltas(arena.Deltas, actives)
	width := BestBitWidth(deltas)
	marker := Marker(width)

	signal, outliers := arena.Signal, arena.Outliers
	for _, d := range deltas {
		z := ZigZagEncode(d)
		if z >= marker {
			outliers = append(outliers, z)
			signal = append(signal, marker)
		} else {
			signal = append(signal, z)
		}
	}

	return Packed{
		Signal:   PackBits(signal, width),
		Outliers: PackBits(outliers, format.OutlierBits),
	}
}

// Unpack reverses Pack, appending the reconstructed actives to dst.
//
// Returns errs.ErrInvalidBitWidth for a signal width outside [1, 16] or an
// outlier width other than 17, errs.ErrOutlierUnderflow when the signal holds
// more markers than there are outliers, errs.ErrOutlierSurplus when outliers
// are left over, and errs.ErrValueOverflow when a value leaves [0, 65535].
func (p Packed) Unpack(dst []uint32) ([]uint32, error) {
	if p.Signal.Bits < 1 || p.Signal.Bits > format.MaxSignalBits {
		return dst, fmt.Errorf("%w: signal width %d", errs.ErrInvalidBitWidth, p.Signal.Bits)
	}
	if p.Outliers.Bits != format.OutlierBits {
		return dst, fmt.Errorf("%w: outlier width %d", errs.ErrInvalidBitWidth, p.Outliers.Bits)
	}
	if err := p.Signal.Validate(); err != nil {
		return dst, fmt.Errorf("signal: %w", err)
	}
	if err := p.Outliers.Validate(); err != nil {
		return dst, fmt.Errorf("outliers: %w", err)
	}

	arena := pool.GetArena(int(p.Signal.Len))
	defer pool.PutArena(arena)

	signal, err := p.Signal.Values(arena.Signal)
	if err != nil {
		return dst, fmt.Errorf("signal: %w", err)
	}
	outliers, err := p.Outliers.Values(arena.Outliers)
	if err != nil {
		return dst, fmt.Errorf("outliers: %w", err)
	}

	marker := Marker(p.Signal.Bits)
	next := 0
	var prev int64
	for i, z := range signal {
		if z == marker {
			if next >= len(outliers) {
				return dst, fmt.Errorf("%w: marker at %d, %d outliers", errs.ErrOutlierUnderflow, i, len(outliers))
			}
			z = outliers[next]
			next++
		}

		prev += int64(ZigZagDecode(z))
		if prev < 0 || prev > math.MaxUint16 {
			return dst, fmt.Errorf("%w: %d at active %d", errs.ErrValueOverflow, prev, i)
		}
		dst = append(dst, uint32(prev))
	}

	if next != len(outliers) {
		return dst, fmt.Errorf("%w: %d of %d outliers consumed", errs.ErrOutlierSurplus, next, len(outliers))
	}

	return dst, nil
}
