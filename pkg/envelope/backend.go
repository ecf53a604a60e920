package envelope

import (
	"bytes"
	"io"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Backend is one pluggable compression implementation. Both methods are
// one-shot transforms over in-memory buffers and must be safe for
// concurrent use.
type Backend interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Registry is the capability table mapping algorithm ids to backends.
// It is constructed once and read-only afterwards; None needs no backend
// and is always available.
type Registry struct {
	backends map[Algorithm]Backend
}

// NewRegistry returns a registry with every built-in backend registered.
func NewRegistry() *Registry {
	r := &Registry{backends: make(map[Algorithm]Backend)}
	r.Register(Gzip, gzipBackend{})
	r.Register(Zstd, newZstdBackend())
	r.Register(S2, s2Backend{})
	return r
}

// NewEmptyRegistry returns a registry with no compressing backends, so
// only None is available. Useful for tests and constrained builds.
func NewEmptyRegistry() *Registry {
	return &Registry{backends: make(map[Algorithm]Backend)}
}

// Register installs a backend for a. Call before the registry is shared;
// registries are not synchronized.
func (r *Registry) Register(a Algorithm, b Backend) {
	r.backends[a] = b
}

// Available returns the usable algorithms in ascending id order. None is
// always included.
func (r *Registry) Available() []Algorithm {
	algs := []Algorithm{None}
	for a := range r.backends {
		algs = append(algs, a)
	}
	sort.Slice(algs, func(i, j int) bool { return algs[i] < algs[j] })
	return algs
}

func (r *Registry) lookup(a Algorithm) (Backend, bool) {
	b, ok := r.backends[a]
	return b, ok
}

type gzipBackend struct{}

func (gzipBackend) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipBackend) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// zstdBackend reuses one encoder and one decoder; EncodeAll/DecodeAll
// are safe for concurrent use.
type zstdBackend struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdBackend() zstdBackend {
	enc, _ := zstd.NewWriter(nil)
	dec, _ := zstd.NewReader(nil)
	return zstdBackend{enc: enc, dec: dec}
}

func (b zstdBackend) Compress(data []byte) ([]byte, error) {
	return b.enc.EncodeAll(data, nil), nil
}

func (b zstdBackend) Decompress(data []byte) ([]byte, error) {
	return b.dec.DecodeAll(data, nil)
}

type s2Backend struct{}

func (s2Backend) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Backend) Decompress(data []byte) ([]byte, error) {
	return s2.Decode(nil, data)
}
