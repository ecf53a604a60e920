// Package envelope wraps arbitrary byte payloads in a self-describing
// header with automatic compression selection and CRC-32 integrity
// verification.
//
// # Wire Format
//
// An envelope is a fixed 17-byte header followed by the payload:
//
//	offset 0   magic          3 bytes  ASCII "RBE"
//	offset 3   version        1 byte   currently 0x01
//	offset 4   algorithm      1 byte   0=none 1=gzip 2=zstd 3=s2
//	offset 5   original_size  4 bytes  big-endian, uncompressed length
//	offset 9   payload_size   4 bytes  big-endian, bytes after the header
//	offset 13  crc32          4 bytes  big-endian, IEEE CRC-32 of the
//	                                   uncompressed data
//	offset 17  payload        payload_size bytes
//
// The checksum always covers the original bytes, whichever algorithm was
// chosen, so Unwrap verifies integrity end to end after decompression.
//
// # Algorithm Selection
//
// Wrap tries every requested algorithm that is present in the registry,
// always keeps the identity transform as a candidate, and picks the
// smallest result. A compressing algorithm is only used when it saves at
// least Options.MinGain bytes; otherwise the data is stored uncompressed.
// Backend failures during Wrap discard that candidate and are never
// surfaced. During Unwrap a failure of the algorithm named in the header
// is fatal.
//
// # Thread Safety
//
// A Registry is read-only after construction and safe for concurrent use,
// as are all package-level functions.
package envelope
