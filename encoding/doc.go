// Package encoding implements the sample transforms of the powerstrip block codec.
//
// A block of 16-bit readings passes through three stages before framing:
//
//  1. Floor detection: DetectFloor finds the dominant baseline value.
//  2. Segmentation: Strip splits the block into baseline runs and active runs,
//     collecting active values into a dense buffer. Unstrip reverses it.
//  3. Delta bit-budget packing: Pack delta-encodes the actives, picks the bit
//     width that minimizes the packed size, zigzags the deltas and routes the
//     ones that do not fit into a fixed 17-bit outlier channel.
//
// # Floor collapse
//
// Samples within Window of the floor are inactive and decode as the floor
// itself, so their exact value is lost. A window of 0 makes every sample that
// differs from the floor active and the codec exact for arbitrary input.
//
// # Outlier escape
//
// For a signal width w the all-ones value 2^w-1 is reserved as the escape
// marker. A delta whose zigzag value exceeds 2^w-2 is stored in the outlier
// channel and the marker takes its place in the signal, so a signal value can
// never be mistaken for an escape.
//
// All functions are pure and safe for concurrent use.
package encoding
