// Package archive persists wrapped envelopes in a local pebble database,
// keyed by ksuid. It stores envelopes as opaque blobs; integrity checking
// happens in package envelope when an entry is unwrapped.
package archive

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssorent/rowbin/pkg/envelope"
)

// Entry summarizes one archived envelope using its header claims.
type Entry struct {
	ID           string             `json:"id"`
	Algorithm    envelope.Algorithm `json:"algorithm"`
	OriginalSize uint32             `json:"original_size"`
	PayloadSize  uint32             `json:"payload_size"`
	EnvelopeSize int                `json:"envelope_size"`
}

// Store is an envelope archive backed by pebble.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) an archive at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Create stores a new envelope and returns its id. The blob must parse as
// an envelope; arbitrary bytes are rejected before they reach disk.
func (s *Store) Create(data []byte) (*ksuid.KSUID, error) {
	if _, err := envelope.Inspect(data); err != nil {
		return nil, fmt.Errorf("refusing to archive: %w", err)
	}

	id := ksuid.New()
	key := id.Bytes()
	if err := s.db.Set(key, data, pebble.NoSync); err != nil {
		return nil, err
	}

	return &id, nil
}

// Read returns the envelope stored under id.
func (s *Store) Read(id *ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Update replaces the envelope stored under id.
func (s *Store) Update(id *ksuid.KSUID, data []byte) error {
	if _, err := envelope.Inspect(data); err != nil {
		return fmt.Errorf("refusing to archive: %w", err)
	}
	return s.db.Set(id.Bytes(), data, pebble.NoSync)
}

// Delete removes the envelope stored under id.
func (s *Store) Delete(id *ksuid.KSUID) error {
	return s.db.Delete(id.Bytes(), pebble.NoSync)
}

// List returns a summary of every archived envelope in key order.
func (s *Store) List() ([]Entry, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("corrupt archive key: %w", err)
		}
		info, err := envelope.Inspect(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", id, err)
		}
		entries = append(entries, Entry{
			ID:           id.String(),
			Algorithm:    info.Algorithm,
			OriginalSize: info.OriginalSize,
			PayloadSize:  info.PayloadSize,
			EnvelopeSize: info.EnvelopeSize,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ParseID parses a textual ksuid into an archive id.
func ParseID(s string) (*ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid archive id %q: %w", s, err)
	}
	return &id, nil
}
