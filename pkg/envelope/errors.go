package envelope

import "errors"

var (
	// ErrTruncated is returned when the input is shorter than the fixed
	// header or than the payload size the header declares.
	ErrTruncated = errors.New("envelope: truncated input")

	// ErrBadMagic is returned when the input does not start with the
	// envelope magic bytes.
	ErrBadMagic = errors.New("envelope: bad magic")

	// ErrUnsupportedVersion is returned for any version byte other than
	// the single supported value.
	ErrUnsupportedVersion = errors.New("envelope: unsupported version")

	// ErrUnknownAlgorithm is returned when the header names an algorithm
	// id this package does not define.
	ErrUnknownAlgorithm = errors.New("envelope: unknown algorithm")

	// ErrAlgorithmUnavailable is returned by Unwrap when the header names
	// a defined algorithm that has no backend in the registry.
	ErrAlgorithmUnavailable = errors.New("envelope: algorithm unavailable")

	// ErrDecompress wraps a backend failure while decompressing the
	// payload named by the header.
	ErrDecompress = errors.New("envelope: decompression failed")

	// ErrSizeMismatch is returned when the payload length disagrees with
	// payload_size, or the decompressed length disagrees with
	// original_size.
	ErrSizeMismatch = errors.New("envelope: size mismatch")

	// ErrChecksum is returned when the CRC-32 of the restored data does
	// not match the header.
	ErrChecksum = errors.New("envelope: checksum mismatch")

	// ErrTooLarge is returned by Wrap when data or payload exceeds the
	// 32-bit size fields of the header.
	ErrTooLarge = errors.New("envelope: data exceeds 4 GiB header limit")
)
