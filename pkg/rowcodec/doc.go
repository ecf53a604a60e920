// Package rowcodec packs homogeneous records into a dense bit-level binary
// format driven by a per-field bit width declared in a Spec.
//
// # Row Format
//
// A Spec is an ordered list of named fields. Each record is laid out field
// by field into a bit stream:
//
//	Uint(n)   n bits, unsigned, 1 <= n <= 64
//	Int(n)    n bits, two's complement, 1 <= n <= 64
//	Bool      1 bit (1 = true)
//	Bytes(k)  k bytes, byte-aligned, k >= 0
//
// Bits accumulate MSB-first: the first bit written lands in the most
// significant bit of the first byte, and a value spanning a byte boundary
// continues into the most significant bits of the next byte. This ordering
// is part of the wire contract; two implementations must agree on it to
// interoperate.
//
// Two alignment points exist and nothing else pads the stream: the cursor
// is rounded up to the next byte boundary immediately before every Bytes
// field, and again after the last field of each record. Padding bits are
// written as zero and skipped, not validated, on decode.
//
// The encoded stream is exactly recordCount * RowSize() bytes. There is no
// length prefix, delimiter or trailer; callers recover the record count by
// dividing the buffer length by RowSize(). A Spec whose RowSize is zero
// cannot make that distinction: an empty buffer decodes to zero records,
// and any non-empty buffer against such a Spec is rejected.
//
// # Integrity
//
// The row format carries no checksum of its own. Wrap encoded rows with
// package envelope when corruption detection is required.
//
// # Thread Safety
//
// A validated Spec is immutable and safe to share between goroutines.
// Encode and Decode hold no state between calls.
package rowcodec
