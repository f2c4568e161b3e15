package encoding

import (
	"fmt"

	"github.com/arloliu/powerstrip/errs"
)

// Segments is an ordered set of disjoint, non-adjacent runs of active samples.
//
// Starts[i] is the sample index where run i begins and Lengths[i] the number of
// samples in it. Both slices always have the same length.
type Segments struct {
	Starts  []uint32
	Lengths []uint32
}

// Count returns the number of runs.
func (s Segments) Count() int {
	return len(s.Starts)
}

// ActiveLen returns the total number of active samples covered by the runs.
func (s Segments) ActiveLen() uint64 {
	var n uint64
	for _, l := range s.Lengths {
		n += uint64(l)
	}

	return n
}

// Validate checks that the runs are ordered, non-empty, separated by at least
// one inactive sample, end within total and cover exactly activeLen samples.
//
// Returns an error wrapping errs.ErrSegmentOutOfRange on the first violation.
func (s Segments) Validate(total uint32, activeLen uint32) error {
	if len(s.Starts) != len(s.Lengths) {
		return fmt.Errorf("%w: %d starts but %d lengths", errs.ErrSegmentOutOfRange, len(s.Starts), len(s.Lengths))
	}

	var (
		end     uint64
		covered uint64
	)
	for i, start := range s.Starts {
		length := s.Lengths[i]
		if length == 0 {
			return fmt.Errorf("%w: segment %d is empty", errs.ErrSegmentOutOfRange, i)
		}
		if i > 0 && uint64(start) <= end {
			return fmt.Errorf("%w: segment %d starts at %d, previous ends at %d",
				errs.ErrSegmentOutOfRange, i, start, end)
		}

		end = uint64(start) + uint64(length)
		if end > uint64(total) {
			return fmt.Errorf("%w: segment %d ends at %d past block of %d samples",
				errs.ErrSegmentOutOfRange, i, end, total)
		}
		covered += uint64(length)
	}

	if covered != uint64(activeLen) {
		return fmt.Errorf("%w: segments cover %d samples, have %d actives",
			errs.ErrSegmentOutOfRange, covered, activeLen)
	}

	return nil
}

// IsActive reports whether sample s falls outside the window around floor.
func IsActive(s, floor, window uint16) bool {
	if floor == NoFloor {
		return true
	}
	v, f, w := int(s), int(floor), int(window)

	return v < f-w || v > f+w
}

// Strip splits samples into runs of active samples and appends their values to actives.
//
// A run closes on the first inactive sample or at the end of input. With
// floor NoFloor the whole block is a single run.
func Strip(samples []uint16, floor, window uint16, actives []uint32) (Segments, []uint32) {
	var segs Segments

	inRun := false
	for i, s := range samples {
		if !IsActive(s, floor, window) {
			inRun = false
			continue
		}
		if !inRun {
			segs.Starts = append(segs.Starts, uint32(i))
			segs.Lengths = append(segs.Lengths, 0)
			inRun = true
		}
		segs.Lengths[len(segs.Lengths)-1]++
		actives = append(actives, uint32(s))
	}

	return segs, actives
}

// Unstrip rebuilds a block of total samples into out[:total].
//
// Every sample is set to floor, then each run is overwritten with consecutive
// values from actives. The segment set is validated first, so a frame from an
// untrusted source cannot write out of range. out must hold at least total samples.
func Unstrip(segs Segments, floor uint16, total uint32, actives []uint32, out []uint16) error {
	if uint64(len(out)) < uint64(total) {
		return fmt.Errorf("%w: output buffer holds %d samples, block has %d", errs.ErrTruncated, len(out), total)
	}
	if uint64(len(actives)) > uint64(total) {
		return fmt.Errorf("%w: %d actives for a block of %d samples", errs.ErrSegmentOutOfRange, len(actives), total)
	}
	if err := segs.Validate(total, uint32(len(actives))); err != nil {
		return err
	}

	out = out[:total]
	for i := range out {
		out[i] = floor
	}

	next := 0
	for i, start := range segs.Starts {
		run := out[start : start+segs.Lengths[i]]
		for j := range run {
			run[j] = uint16(actives[next])
			next++
		}
	}

	return nil
}
