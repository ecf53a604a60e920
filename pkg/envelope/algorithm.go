package envelope

import "fmt"

// Algorithm identifies a compression transform in the envelope header.
type Algorithm uint8

const (
	// None stores the payload uncompressed. Always available.
	None Algorithm = 0
	// Gzip is DEFLATE with a gzip container, the general-purpose default.
	Gzip Algorithm = 1
	// Zstd trades a little speed for better ratios on larger payloads.
	Zstd Algorithm = 2
	// S2 is a Snappy-compatible format tuned for throughput.
	S2 Algorithm = 3
)

// String returns the lower-case name used by CLI flags and metadata.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// defined reports whether a is one of the ids this package assigns.
func (a Algorithm) defined() bool {
	return a <= S2
}

// ParseAlgorithm maps a name back to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	case "s2":
		return S2, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
	}
}

// ParseAlgorithms maps a list of names, preserving order.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	algs := make([]Algorithm, 0, len(names))
	for _, name := range names {
		a, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algs = append(algs, a)
	}
	return algs, nil
}
