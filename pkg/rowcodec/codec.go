package rowcodec

import "fmt"

// Encode packs records, in order, against the spec and returns the
// concatenated rows. Any missing value, type mismatch, out-of-range
// integer or wrong-length byte field fails the whole call with an error
// naming the field; no partial output is returned.
func (s *Spec) Encode(records []Record) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w := &bitWriter{}
	for i, rec := range records {
		if err := s.encodeRecord(w, rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		w.align()
	}
	return w.bytes(), nil
}

func (s *Spec) encodeRecord(w *bitWriter, rec Record) error {
	for _, f := range s.Fields {
		v, ok := rec[f.Name]
		if !ok {
			return fmt.Errorf("field %q: %w", f.Name, ErrMissingField)
		}
		switch f.Type.Kind {
		case KindUint:
			u, ok := v.(UintValue)
			if !ok {
				return fmt.Errorf("field %q: want uint, got %s: %w", f.Name, v.kind(), ErrWrongType)
			}
			if f.Type.Bits < 64 && uint64(u) > maxUint(f.Type.Bits) {
				return fmt.Errorf("field %q: %d exceeds %d-bit max %d: %w",
					f.Name, uint64(u), f.Type.Bits, maxUint(f.Type.Bits), ErrOutOfRange)
			}
			w.writeBits(uint64(u), uint(f.Type.Bits))
		case KindInt:
			iv, ok := v.(IntValue)
			if !ok {
				return fmt.Errorf("field %q: want int, got %s: %w", f.Name, v.kind(), ErrWrongType)
			}
			if f.Type.Bits < 64 {
				lo, hi := intRange(f.Type.Bits)
				if int64(iv) < lo || int64(iv) > hi {
					return fmt.Errorf("field %q: %d outside %d-bit range [%d, %d]: %w",
						f.Name, int64(iv), f.Type.Bits, lo, hi, ErrOutOfRange)
				}
			}
			w.writeBits(uint64(iv)&mask(f.Type.Bits), uint(f.Type.Bits))
		case KindBool:
			b, ok := v.(BoolValue)
			if !ok {
				return fmt.Errorf("field %q: want bool, got %s: %w", f.Name, v.kind(), ErrWrongType)
			}
			bit := uint64(0)
			if b {
				bit = 1
			}
			w.writeBits(bit, 1)
		case KindBytes:
			p, ok := v.(BytesValue)
			if !ok {
				return fmt.Errorf("field %q: want bytes, got %s: %w", f.Name, v.kind(), ErrWrongType)
			}
			if len(p) != f.Type.Size {
				return fmt.Errorf("field %q: got %d bytes, want %d: %w",
					f.Name, len(p), f.Type.Size, ErrBadLength)
			}
			w.align()
			w.writeBytes(p)
		}
	}
	return nil
}

// Decode reads whole records from data until it is fully consumed. The
// buffer must be a multiple of RowSize bytes produced with the same spec;
// running out of bits mid-field returns ErrShortBuffer. For a spec whose
// RowSize is zero only the empty buffer is decodable: it yields zero
// records, and anything else returns ErrZeroSizeRow.
func (s *Spec) Decode(data []byte) ([]Record, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.RowSize() == 0 {
		if len(data) == 0 {
			return []Record{}, nil
		}
		return nil, ErrZeroSizeRow
	}

	r := &bitReader{data: data}
	records := []Record{}
	for r.remaining() > 0 {
		rec, err := s.decodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		r.align()
		records = append(records, rec)
	}
	return records, nil
}

func (s *Spec) decodeRecord(r *bitReader) (Record, error) {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Type.Kind {
		case KindUint:
			u, err := r.readBits(uint(f.Type.Bits))
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			rec[f.Name] = UintValue(u)
		case KindInt:
			u, err := r.readBits(uint(f.Type.Bits))
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			rec[f.Name] = IntValue(signExtend(u, f.Type.Bits))
		case KindBool:
			u, err := r.readBits(1)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			rec[f.Name] = BoolValue(u == 1)
		case KindBytes:
			r.align()
			p, err := r.readBytes(f.Type.Size)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			rec[f.Name] = BytesValue(p)
		}
	}
	return rec, nil
}

func maxUint(bits int) uint64 {
	return mask(bits)
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

func intRange(bits int) (lo, hi int64) {
	lo = -(int64(1) << (bits - 1))
	hi = (int64(1) << (bits - 1)) - 1
	return lo, hi
}

func signExtend(u uint64, bits int) int64 {
	if bits >= 64 {
		return int64(u)
	}
	if u&(uint64(1)<<(bits-1)) != 0 {
		u |= ^mask(bits)
	}
	return int64(u)
}
