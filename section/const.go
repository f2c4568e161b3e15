package section

const (
	// RegionHeaderSize is the fixed prefix of a packed region: len, bits and byte length.
	RegionHeaderSize = 4 + 1 + 4
	// SegmentHeaderSize is the fixed prefix of the segment section: total, floor and count.
	SegmentHeaderSize = 4 + 2 + 4
	// SegmentEntrySize is the encoded size of one segment: a start and a length.
	SegmentEntrySize = 4 + 4
	// MinFrameSize is the size of a frame with empty regions and no segments.
	MinFrameSize = 2*RegionHeaderSize + SegmentHeaderSize
)
