// Package section defines the binary layout of a powerstrip frame.
//
// A frame is the packed, not yet entropy-coded body of a block. It carries
// everything the decoder needs to rebuild the samples: the two packed regions
// produced by the delta bit-budget packer, the block length, the floor and the
// exact segment set. Encoder tunables such as the floor window are not stored.
//
// # Frame Structure
//
// All integers are little-endian and fields follow each other with no padding:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Signal region (9 bytes + data)                          │
//	│  - Len (u32): number of values                          │
//	│  - Bits (u8): signal width, 1..16                       │
//	│  - ByteLen (u32): packed data length                    │
//	│  - Data (ByteLen bytes)                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Outlier region (9 bytes + data)                         │
//	│  - Same layout, Bits is always 17                       │
//	├─────────────────────────────────────────────────────────┤
//	│ Segment section (10 bytes + 8 bytes per segment)        │
//	│  - Total (u32): samples in the block                    │
//	│  - Floor (u16): baseline, 0xFFFF for none               │
//	│  - Count (u32): number of segments                      │
//	│  - Starts (Count × u32)                                 │
//	│  - Lengths (Count × u32)                                │
//	└─────────────────────────────────────────────────────────┘
//
// # Validation
//
// ParseFrame treats its input as untrusted. Every read is bounds checked,
// each region's ByteLen must equal the packed size of Len values at Bits,
// the segment set must be ordered and cover exactly the signal length, and no
// bytes may follow the segment lengths.
//
// Example:
//
//	data := frame.AppendTo(nil)
//
//	parsed, err := section.ParseFrame(data)
//	if err != nil {
//	    return err
//	}
package section
