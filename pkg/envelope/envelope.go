package envelope

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

const (
	// HeaderSize is the fixed length of the envelope header.
	HeaderSize = 17
	// Version is the single supported format version.
	Version byte = 0x01
	// DefaultMinGain is the minimum byte saving required before a
	// compressing algorithm is preferred over storing uncompressed.
	DefaultMinGain = 16
)

var magic = [3]byte{'R', 'B', 'E'}

// Options controls algorithm selection during Wrap.
type Options struct {
	// Algorithms is the ordered candidate list. When empty, Gzip is
	// tried. None is always a candidate regardless of this list.
	Algorithms []Algorithm
	// MinGain is the minimum number of bytes a compressing algorithm
	// must save to be chosen; values <= 0 mean DefaultMinGain. A
	// threshold below one byte is therefore not expressible: zero is
	// the field's unset value, not "keep any saving".
	MinGain int
}

// Metadata describes what Unwrap found.
type Metadata struct {
	Algorithm      Algorithm `json:"algorithm"`
	OriginalSize   int       `json:"original_size"`
	CompressedSize int       `json:"compressed_size"`
	// Ratio is 1 - compressed/original, 0 when the original is empty.
	Ratio float64 `json:"compression_ratio"`
}

// Info reports the raw header claims without verifying them against the
// payload. It is a fast introspection result, not proof of integrity.
type Info struct {
	Version      byte      `json:"version"`
	Algorithm    Algorithm `json:"algorithm"`
	OriginalSize uint32    `json:"original_size"`
	PayloadSize  uint32    `json:"payload_size"`
	CRC32        uint32    `json:"crc32"`
	// EnvelopeSize is the total input length, header included.
	EnvelopeSize int `json:"envelope_size"`
}

// defaultRegistry is the process-wide capability table, built once at
// startup and never mutated afterwards.
var defaultRegistry = NewRegistry()

// Wrap compresses and frames data using the default registry.
func Wrap(data []byte, opts Options) ([]byte, error) {
	return defaultRegistry.Wrap(data, opts)
}

// Unwrap restores the payload of an envelope using the default registry.
func Unwrap(data []byte) ([]byte, Metadata, error) {
	return defaultRegistry.Unwrap(data)
}

// Inspect parses an envelope header using the default registry.
func Inspect(data []byte) (Info, error) {
	return defaultRegistry.Inspect(data)
}

// Available lists the algorithms usable with the default registry.
func Available() []Algorithm {
	return defaultRegistry.Available()
}

// Wrap frames data with the best available transform. Backend compression
// failures discard that candidate; Wrap itself only fails when data does
// not fit the header's 32-bit size fields.
func (r *Registry) Wrap(data []byte, opts Options) ([]byte, error) {
	if len(data) > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	candidates := opts.Algorithms
	if len(candidates) == 0 {
		candidates = []Algorithm{Gzip}
	}
	minGain := opts.MinGain
	if minGain <= 0 {
		minGain = DefaultMinGain
	}

	checksum := crc32.ChecksumIEEE(data)

	// None is the baseline; a compressor must beat the current best
	// strictly, so the first-listed algorithm wins ties.
	chosen := None
	payload := data
	for _, a := range candidates {
		if a == None {
			continue
		}
		b, ok := r.lookup(a)
		if !ok {
			continue
		}
		out, err := b.Compress(data)
		if err != nil {
			continue
		}
		if len(out) < len(payload) {
			chosen = a
			payload = out
		}
	}
	if chosen != None && len(data)-len(payload) < minGain {
		chosen = None
		payload = data
	}
	if len(payload) > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	out := make([]byte, HeaderSize+len(payload))
	copy(out[0:3], magic[:])
	out[3] = Version
	out[4] = byte(chosen)
	binary.BigEndian.PutUint32(out[5:9], uint32(len(data)))
	binary.BigEndian.PutUint32(out[9:13], uint32(len(payload)))
	binary.BigEndian.PutUint32(out[13:17], checksum)
	copy(out[HeaderSize:], payload)
	return out, nil
}

// Unwrap validates the header, reverses the recorded transform and
// verifies size and checksum. Every failure mode maps to a distinct
// sentinel error.
func (r *Registry) Unwrap(data []byte) ([]byte, Metadata, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return nil, Metadata{}, err
	}
	if int(hdr.PayloadSize) != len(data)-HeaderSize {
		return nil, Metadata{}, fmt.Errorf("payload is %d bytes, header says %d: %w",
			len(data)-HeaderSize, hdr.PayloadSize, ErrSizeMismatch)
	}
	payload := data[HeaderSize:]

	var restored []byte
	if hdr.Algorithm == None {
		restored = payload
	} else {
		b, ok := r.lookup(hdr.Algorithm)
		if !ok {
			return nil, Metadata{}, fmt.Errorf("%s: %w", hdr.Algorithm, ErrAlgorithmUnavailable)
		}
		restored, err = b.Decompress(payload)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("%s: %v: %w", hdr.Algorithm, err, ErrDecompress)
		}
	}

	if len(restored) != int(hdr.OriginalSize) {
		return nil, Metadata{}, fmt.Errorf("restored %d bytes, header says %d: %w",
			len(restored), hdr.OriginalSize, ErrSizeMismatch)
	}
	if sum := crc32.ChecksumIEEE(restored); sum != hdr.CRC32 {
		return nil, Metadata{}, fmt.Errorf("crc32 %08x, header says %08x: %w",
			sum, hdr.CRC32, ErrChecksum)
	}

	md := Metadata{
		Algorithm:      hdr.Algorithm,
		OriginalSize:   int(hdr.OriginalSize),
		CompressedSize: int(hdr.PayloadSize),
	}
	if hdr.OriginalSize > 0 {
		md.Ratio = 1 - float64(hdr.PayloadSize)/float64(hdr.OriginalSize)
	}
	return restored, md, nil
}

// Inspect parses and validates the header only. It never decompresses
// the payload and never checks the CRC, so its result reflects what the
// header claims, not what the payload contains.
func (r *Registry) Inspect(data []byte) (Info, error) {
	hdr, err := parseHeader(data)
	if err != nil {
		return Info{}, err
	}
	hdr.EnvelopeSize = len(data)
	return hdr, nil
}

func parseHeader(data []byte) (Info, error) {
	if len(data) < HeaderSize {
		return Info{}, ErrTruncated
	}
	if data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] {
		return Info{}, ErrBadMagic
	}
	if data[3] != Version {
		return Info{}, fmt.Errorf("version %d: %w", data[3], ErrUnsupportedVersion)
	}
	alg := Algorithm(data[4])
	if !alg.defined() {
		return Info{}, fmt.Errorf("id %d: %w", data[4], ErrUnknownAlgorithm)
	}
	return Info{
		Version:      data[3],
		Algorithm:    alg,
		OriginalSize: binary.BigEndian.Uint32(data[5:9]),
		PayloadSize:  binary.BigEndian.Uint32(data[9:13]),
		CRC32:        binary.BigEndian.Uint32(data[13:17]),
	}, nil
}
