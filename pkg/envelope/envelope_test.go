package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		opts Options
	}{
		{
			name: "default options",
			data: bytes.Repeat([]byte("abcdefgh"), 512),
			opts: Options{},
		},
		{
			name: "none only",
			data: []byte("short payload"),
			opts: Options{Algorithms: []Algorithm{None}},
		},
		{
			name: "gzip",
			data: bytes.Repeat([]byte("compress me "), 1000),
			opts: Options{Algorithms: []Algorithm{Gzip}},
		},
		{
			name: "zstd",
			data: bytes.Repeat([]byte("compress me "), 1000),
			opts: Options{Algorithms: []Algorithm{Zstd}},
		},
		{
			name: "s2",
			data: bytes.Repeat([]byte("compress me "), 1000),
			opts: Options{Algorithms: []Algorithm{S2}},
		},
		{
			name: "all candidates",
			data: bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03}, 4096),
			opts: Options{Algorithms: []Algorithm{Gzip, Zstd, S2}},
		},
		{
			name: "empty payload",
			data: []byte{},
			opts: Options{},
		},
		{
			name: "incompressible payload",
			data: incompressible(4096),
			opts: Options{Algorithms: []Algorithm{Gzip, Zstd, S2}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped, err := Wrap(tc.data, tc.opts)
			if err != nil {
				t.Fatalf("Wrap failed: %v", err)
			}

			restored, md, err := Unwrap(wrapped)
			if err != nil {
				t.Fatalf("Unwrap failed: %v", err)
			}
			if !bytes.Equal(restored, tc.data) {
				t.Fatal("restored data does not match original")
			}
			if md.OriginalSize != len(tc.data) {
				t.Errorf("OriginalSize = %d, want %d", md.OriginalSize, len(tc.data))
			}
			if md.CompressedSize != len(wrapped)-HeaderSize {
				t.Errorf("CompressedSize = %d, want %d", md.CompressedSize, len(wrapped)-HeaderSize)
			}
		})
	}
}

// incompressible returns a deterministic high-entropy buffer (xorshift).
func incompressible(n int) []byte {
	out := make([]byte, n)
	state := uint64(0x9E3779B97F4A7C15)
	for i := range out {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		out[i] = byte(state)
	}
	return out
}

func TestWrap_HelloWorldNone(t *testing.T) {
	data := []byte("Hello, World!")

	wrapped, err := Wrap(data, Options{Algorithms: []Algorithm{None}})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if len(wrapped) != HeaderSize+len(data) {
		t.Errorf("envelope length = %d, want %d", len(wrapped), HeaderSize+len(data))
	}

	restored, md, err := Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap failed: %v", err)
	}
	if string(restored) != "Hello, World!" {
		t.Errorf("restored = %q", restored)
	}
	if md.Algorithm != None {
		t.Errorf("algorithm = %s, want none", md.Algorithm)
	}
	if md.Ratio != 0.0 {
		t.Errorf("ratio = %v, want 0.0", md.Ratio)
	}
}

func TestWrap_MinGainThreshold(t *testing.T) {
	// Compresses well, but the saving is bounded by the input size.
	data := bytes.Repeat([]byte("a"), 64)

	t.Run("gain below threshold falls back to none", func(t *testing.T) {
		wrapped, err := Wrap(data, Options{Algorithms: []Algorithm{Gzip}, MinGain: 1 << 20})
		if err != nil {
			t.Fatalf("Wrap failed: %v", err)
		}
		info, err := Inspect(wrapped)
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if info.Algorithm != None {
			t.Errorf("algorithm = %s, want none", info.Algorithm)
		}
		if int(info.PayloadSize) != len(data) {
			t.Errorf("payload size = %d, want %d", info.PayloadSize, len(data))
		}
	})

	t.Run("zero min gain means the default threshold", func(t *testing.T) {
		// The backend saves 10 bytes, below DefaultMinGain; an unset
		// MinGain must not keep it.
		r := NewEmptyRegistry()
		r.Register(Gzip, constBackend{out: bytes.Repeat([]byte("z"), 90)})

		wrapped, err := r.Wrap(bytes.Repeat([]byte("x"), 100), Options{Algorithms: []Algorithm{Gzip}})
		if err != nil {
			t.Fatalf("Wrap failed: %v", err)
		}
		info, err := r.Inspect(wrapped)
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if info.Algorithm != None {
			t.Errorf("algorithm = %s, want none", info.Algorithm)
		}
	})

	t.Run("gain above threshold keeps compression", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), 1<<16)
		wrapped, err := Wrap(big, Options{Algorithms: []Algorithm{Gzip}, MinGain: 16})
		if err != nil {
			t.Fatalf("Wrap failed: %v", err)
		}
		info, err := Inspect(wrapped)
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if info.Algorithm != Gzip {
			t.Errorf("algorithm = %s, want gzip", info.Algorithm)
		}
		if info.PayloadSize >= info.OriginalSize {
			t.Errorf("payload %d not smaller than original %d", info.PayloadSize, info.OriginalSize)
		}
	})
}

func TestWrap_BackendFailureIsAbsorbed(t *testing.T) {
	r := NewEmptyRegistry()
	r.Register(Gzip, failingBackend{})

	data := bytes.Repeat([]byte("abc"), 100)
	wrapped, err := r.Wrap(data, Options{Algorithms: []Algorithm{Gzip}})
	if err != nil {
		t.Fatalf("Wrap failed despite fallback: %v", err)
	}

	restored, md, err := r.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap failed: %v", err)
	}
	if md.Algorithm != None {
		t.Errorf("algorithm = %s, want none", md.Algorithm)
	}
	if !bytes.Equal(restored, data) {
		t.Error("restored data does not match original")
	}
}

func TestWrap_UnavailableAlgorithmSkipped(t *testing.T) {
	r := NewEmptyRegistry()

	data := bytes.Repeat([]byte("abc"), 100)
	wrapped, err := r.Wrap(data, Options{Algorithms: []Algorithm{Zstd}})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	info, err := r.Inspect(wrapped)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Algorithm != None {
		t.Errorf("algorithm = %s, want none", info.Algorithm)
	}
}

type failingBackend struct{}

func (failingBackend) Compress([]byte) ([]byte, error) {
	return nil, errors.New("boom")
}

func (failingBackend) Decompress([]byte) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestUnwrap_CorruptionDetection(t *testing.T) {
	data := bytes.Repeat([]byte("integrity matters "), 200)
	wrapped, err := Wrap(data, Options{Algorithms: []Algorithm{Gzip}})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	clone := func() []byte { return append([]byte(nil), wrapped...) }

	t.Run("flipped payload byte fails checksum or inflate", func(t *testing.T) {
		for off := HeaderSize; off < len(wrapped); off++ {
			b := clone()
			b[off] ^= 0xFF
			_, _, err := Unwrap(b)
			if err == nil {
				t.Fatalf("Unwrap accepted corrupted payload at offset %d", off)
			}
			if !errors.Is(err, ErrChecksum) && !errors.Is(err, ErrDecompress) && !errors.Is(err, ErrSizeMismatch) {
				t.Fatalf("offset %d: unexpected error kind: %v", off, err)
			}
		}
	})

	t.Run("flipped payload byte on stored data fails checksum", func(t *testing.T) {
		plain, err := Wrap(data, Options{Algorithms: []Algorithm{None}})
		if err != nil {
			t.Fatalf("Wrap failed: %v", err)
		}
		plain[len(plain)-1] ^= 0x01
		_, _, err = Unwrap(plain)
		if !errors.Is(err, ErrChecksum) {
			t.Fatalf("error = %v, want ErrChecksum", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		b := clone()
		b[0] = 'X'
		if _, _, err := Unwrap(b); !errors.Is(err, ErrBadMagic) {
			t.Fatalf("error = %v, want ErrBadMagic", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		b := clone()
		b[3] = 0x7F
		if _, _, err := Unwrap(b); !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("error = %v, want ErrUnsupportedVersion", err)
		}
	})

	t.Run("unknown algorithm id", func(t *testing.T) {
		b := clone()
		b[4] = 0xEE
		if _, _, err := Unwrap(b); !errors.Is(err, ErrUnknownAlgorithm) {
			t.Fatalf("error = %v, want ErrUnknownAlgorithm", err)
		}
	})

	t.Run("tampered original size", func(t *testing.T) {
		b := clone()
		binary.BigEndian.PutUint32(b[5:9], uint32(len(data)+1))
		if _, _, err := Unwrap(b); !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("error = %v, want ErrSizeMismatch", err)
		}
	})

	t.Run("tampered payload size", func(t *testing.T) {
		b := clone()
		binary.BigEndian.PutUint32(b[9:13], binary.BigEndian.Uint32(b[9:13])+1)
		if _, _, err := Unwrap(b); !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("error = %v, want ErrSizeMismatch", err)
		}
	})

	t.Run("truncated header", func(t *testing.T) {
		if _, _, err := Unwrap(wrapped[:HeaderSize-1]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("error = %v, want ErrTruncated", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		if _, _, err := Unwrap(wrapped[:len(wrapped)-1]); !errors.Is(err, ErrSizeMismatch) {
			t.Fatalf("error = %v, want ErrSizeMismatch", err)
		}
	})
}

func TestInspect_ReportsHeaderClaims(t *testing.T) {
	data := bytes.Repeat([]byte("inspect "), 512)
	wrapped, err := Wrap(data, Options{Algorithms: []Algorithm{Zstd}})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	info, err := Inspect(wrapped)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Version != Version {
		t.Errorf("version = %d, want %d", info.Version, Version)
	}
	if info.Algorithm != Zstd {
		t.Errorf("algorithm = %s, want zstd", info.Algorithm)
	}
	if int(info.OriginalSize) != len(data) {
		t.Errorf("original size = %d, want %d", info.OriginalSize, len(data))
	}
	if info.EnvelopeSize != len(wrapped) {
		t.Errorf("envelope size = %d, want %d", info.EnvelopeSize, len(wrapped))
	}

	// Inspect must not validate the payload.
	corrupted := append([]byte(nil), wrapped...)
	corrupted[len(corrupted)-1] ^= 0xFF
	if _, err := Inspect(corrupted); err != nil {
		t.Errorf("Inspect validated payload content: %v", err)
	}
}

func TestRegistry_Available(t *testing.T) {
	full := NewRegistry().Available()
	want := []Algorithm{None, Gzip, Zstd, S2}
	if len(full) != len(want) {
		t.Fatalf("Available() = %v, want %v", full, want)
	}
	for i := range want {
		if full[i] != want[i] {
			t.Fatalf("Available() = %v, want %v", full, want)
		}
	}

	empty := NewEmptyRegistry().Available()
	if len(empty) != 1 || empty[0] != None {
		t.Fatalf("empty registry Available() = %v, want [none]", empty)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range []Algorithm{None, Gzip, Zstd, S2} {
		got, err := ParseAlgorithm(a.String())
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) failed: %v", a.String(), err)
		}
		if got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if _, err := ParseAlgorithm("lz77"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestWrap_TieBreakFirstListedWins(t *testing.T) {
	r := NewEmptyRegistry()
	// Two backends that produce identical 8-byte outputs.
	r.Register(Gzip, constBackend{out: []byte("12345678")})
	r.Register(Zstd, constBackend{out: []byte("abcdefgh")})

	data := bytes.Repeat([]byte("x"), 1024)
	wrapped, err := r.Wrap(data, Options{Algorithms: []Algorithm{Zstd, Gzip}, MinGain: 1})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	info, err := r.Inspect(wrapped)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Algorithm != Zstd {
		t.Errorf("algorithm = %s, want first-listed zstd", info.Algorithm)
	}
}

type constBackend struct{ out []byte }

func (b constBackend) Compress([]byte) ([]byte, error)   { return b.out, nil }
func (b constBackend) Decompress([]byte) ([]byte, error) { return nil, errors.New("not reversible") }
