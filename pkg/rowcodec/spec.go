package rowcodec

import "fmt"

// Kind discriminates the closed set of field types.
type Kind uint8

const (
	KindUint Kind = iota
	KindInt
	KindBool
	KindBytes
)

// String returns the schema-file name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// FieldType describes the binary shape of one field. Bits is the width for
// KindUint and KindInt; Size is the byte count for KindBytes; KindBool uses
// neither. Construct via Uint, Int, Bool or Bytes.
type FieldType struct {
	Kind Kind
	Bits int
	Size int
}

// Uint declares an unsigned integer field of bits width.
func Uint(bits int) FieldType { return FieldType{Kind: KindUint, Bits: bits} }

// Int declares a two's-complement signed integer field of bits width.
func Int(bits int) FieldType { return FieldType{Kind: KindInt, Bits: bits} }

// Bool declares a single-bit boolean field.
func Bool() FieldType { return FieldType{Kind: KindBool, Bits: 1} }

// Bytes declares a byte-aligned fixed-size byte field.
func Bytes(size int) FieldType { return FieldType{Kind: KindBytes, Size: size} }

// Field is one named entry of a Spec.
type Field struct {
	Name string
	Type FieldType
}

// Spec is an ordered, validated field list defining a record's bit layout.
// A Spec is immutable after validation and reusable across any number of
// Encode/Decode calls.
type Spec struct {
	Fields []Field
}

// NewSpec builds and validates a Spec from the given fields.
func NewSpec(fields ...Field) (*Spec, error) {
	s := &Spec{Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the structural invariants: at least one field, unique
// names, and widths inside the declared bounds. The returned error names
// the offending field.
func (s *Spec) Validate() error {
	if len(s.Fields) == 0 {
		return ErrEmptySpec
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("field %q: %w", f.Name, ErrDuplicateField)
		}
		seen[f.Name] = struct{}{}

		switch f.Type.Kind {
		case KindUint, KindInt:
			if f.Type.Bits < 1 || f.Type.Bits > 64 {
				return fmt.Errorf("field %q: %d bits: %w", f.Name, f.Type.Bits, ErrWidthRange)
			}
		case KindBool:
			// fixed 1-bit width, nothing to check
		case KindBytes:
			if f.Type.Size < 0 {
				return fmt.Errorf("field %q: %d bytes: %w", f.Name, f.Type.Size, ErrWidthRange)
			}
		default:
			return fmt.Errorf("field %q: unrecognized kind %d: %w", f.Name, f.Type.Kind, ErrWidthRange)
		}
	}
	return nil
}

// RowSize returns the encoded size of one record in bytes. It applies the
// same alignment rule as Encode: round up to a byte boundary before every
// Bytes field and at the end of the record.
func (s *Spec) RowSize() int {
	bits := 0
	for _, f := range s.Fields {
		switch f.Type.Kind {
		case KindBytes:
			bits = alignUp(bits)
			bits += f.Type.Size * 8
		case KindBool:
			bits++
		default:
			bits += f.Type.Bits
		}
	}
	return alignUp(bits) / 8
}

func alignUp(bits int) int { return (bits + 7) &^ 7 }
