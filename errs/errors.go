// Package errs defines the sentinel errors returned by powerstrip packages.
//
// Errors are wrapped with context by the returning package, so callers should
// compare with errors.Is rather than ==.
package errs

import "errors"

// Decode errors: the input does not describe a valid block.
var (
	// ErrTruncated is returned when a read would run past the end of the supplied buffer.
	ErrTruncated = errors.New("truncated input")
	// ErrTrailingBytes is returned when a frame is followed by unread bytes.
	ErrTrailingBytes = errors.New("trailing bytes after frame")
	// ErrInvalidTag is returned when the block tag cannot describe a frame for the configured block size.
	ErrInvalidTag = errors.New("invalid block tag")
	// ErrInvalidBitWidth is returned when a packed region declares an unsupported bit width.
	ErrInvalidBitWidth = errors.New("invalid bit width")
	// ErrRegionSize is returned when a packed region's byte length does not match its value count and width.
	ErrRegionSize = errors.New("packed region size mismatch")
	// ErrSegmentOutOfRange is returned when a segment set is unordered, overlapping or out of bounds.
	ErrSegmentOutOfRange = errors.New("segment out of range")
	// ErrOutlierUnderflow is returned when the signal holds more outlier markers than there are outliers.
	ErrOutlierUnderflow = errors.New("outlier list exhausted")
	// ErrOutlierSurplus is returned when outliers remain after the signal has been consumed.
	ErrOutlierSurplus = errors.New("unused outliers")
	// ErrValueOverflow is returned when a reconstructed sample falls outside the 16-bit range.
	ErrValueOverflow = errors.New("reconstructed value out of range")
	// ErrEntropyLength is returned when entropy decoding does not yield the length recorded in the tag.
	ErrEntropyLength = errors.New("entropy decoded length mismatch")
	// ErrInvalidRawPayload is returned when a raw block payload is not a whole number of samples.
	ErrInvalidRawPayload = errors.New("invalid raw payload")
)

// Configuration and input errors.
var (
	// ErrInvalidBlockSize is returned when a block sample count is outside the supported range.
	ErrInvalidBlockSize = errors.New("invalid block size")
	// ErrBlockTooLarge is returned when a block exceeds the configured sample count or stream limit.
	ErrBlockTooLarge = errors.New("block too large")
	// ErrInvalidCompression is returned for an unknown entropy coder type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrInvalidWindow is returned when the floor window is wider than the floor cutoff allows.
	ErrInvalidWindow = errors.New("invalid floor window")
	// ErrOddLength is returned when a byte stream ends with half of a sample.
	ErrOddLength = errors.New("stream ends with half of a uint16")
	// ErrInvalidConcurrency is returned for a worker count below one.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
)
