package section

import (
	"fmt"

	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/internal/cursor"
)

// Frame is the packed body of a block before entropy coding.
type Frame struct {
	// Signal holds one value per active sample at the chosen width.
	Signal encoding.Bitpacked
	// Outliers holds the escaped deltas at 17 bits.
	Outliers encoding.Bitpacked
	// Total is the number of samples in the block.
	Total uint32
	// Floor is the baseline written into inactive positions, or encoding.NoFloor.
	Floor uint16
	// Segments lists the runs of active samples.
	Segments encoding.Segments
}

// Packed returns the frame's regions as the packer's output type.
func (f Frame) Packed() encoding.Packed {
	return encoding.Packed{Signal: f.Signal, Outliers: f.Outliers}
}

// Size returns the encoded size of the frame in bytes.
func (f Frame) Size() int {
	return RegionSize(f.Signal) + RegionSize(f.Outliers) +
		SegmentHeaderSize + f.Segments.Count()*SegmentEntrySize
}

// AppendTo appends the encoded frame to dst and returns the extended slice.
func (f Frame) AppendTo(dst []byte) []byte {
	w := cursor.NewWriter(dst)
	w.Grow(f.Size())

	WriteRegion(w, f.Signal)
	WriteRegion(w, f.Outliers)

	w.PutUint32(f.Total)
	w.PutUint16(f.Floor)
	w.PutUint32(uint32(f.Segments.Count()))
	w.PutUint32s(f.Segments.Starts)
	w.PutUint32s(f.Segments.Lengths)

	return w.Bytes()
}

// Bytes returns the encoded frame in a new slice.
func (f Frame) Bytes() []byte {
	return f.AppendTo(nil)
}

// ParseFrame decodes a frame that must occupy all of data.
//
// Region data aliases data; segment slices are freshly allocated.
//
// Returns:
//   - Frame: the decoded frame
//   - error: errs.ErrTruncated, errs.ErrInvalidBitWidth, errs.ErrRegionSize,
//     errs.ErrSegmentOutOfRange or errs.ErrTrailingBytes, wrapped with the
//     part of the frame that failed
func ParseFrame(data []byte) (Frame, error) {
	var f Frame
	r := cursor.NewReader(data)

	var err error
	if f.Signal, err = ReadRegion(r); err != nil {
		return Frame{}, fmt.Errorf("signal region: %w", err)
	}
	if f.Outliers, err = ReadRegion(r); err != nil {
		return Frame{}, fmt.Errorf("outlier region: %w", err)
	}

	if f.Total, err = r.Uint32(); err != nil {
		return Frame{}, fmt.Errorf("segment header: %w", err)
	}
	if f.Floor, err = r.Uint16(); err != nil {
		return Frame{}, fmt.Errorf("segment header: %w", err)
	}
	count, err := r.Uint32()
	if err != nil {
		return Frame{}, fmt.Errorf("segment header: %w", err)
	}
	if uint64(count)*SegmentEntrySize > uint64(r.Remaining()) {
		return Frame{}, fmt.Errorf("segments: %w: %d segments need %d bytes, have %d",
			errs.ErrTruncated, count, uint64(count)*SegmentEntrySize, r.Remaining())
	}

	if f.Segments.Starts, err = r.Uint32s(nil, int(count)); err != nil {
		return Frame{}, fmt.Errorf("segment starts: %w", err)
	}
	if f.Segments.Lengths, err = r.Uint32s(nil, int(count)); err != nil {
		return Frame{}, fmt.Errorf("segment lengths: %w", err)
	}

	if r.Remaining() != 0 {
		return Frame{}, fmt.Errorf("%w: %d bytes at offset %d", errs.ErrTrailingBytes, r.Remaining(), r.Offset())
	}

	if err := f.Segments.Validate(f.Total, f.Signal.Len); err != nil {
		return Frame{}, err
	}

	return f, nil
}
