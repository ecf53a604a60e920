package rowcodec

// Value is the closed set of scalar values a record field can hold.
// Exactly one concrete type exists per Kind so that Encode and Decode can
// match exhaustively; a new field kind cannot be handled silently.
type Value interface {
	kind() Kind
}

// UintValue holds an unsigned integer for a Uint field.
type UintValue uint64

// IntValue holds a signed integer for an Int field.
type IntValue int64

// BoolValue holds a boolean for a Bool field.
type BoolValue bool

// BytesValue holds the raw bytes of a Bytes field. Its length must equal
// the declared field size.
type BytesValue []byte

func (UintValue) kind() Kind  { return KindUint }
func (IntValue) kind() Kind   { return KindInt }
func (BoolValue) kind() Kind  { return KindBool }
func (BytesValue) kind() Kind { return KindBytes }

// Record maps field names to values. Records are transient: callers build
// them for Encode, and Decode returns freshly allocated ones.
type Record map[string]Value

// Equal reports whether two records hold the same fields with the same
// values. Bytes values compare by content.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for name, v := range r {
		w, ok := o[name]
		if !ok {
			return false
		}
		if !valueEqual(v, w) {
			return false
		}
	}
	return true
}

func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case UintValue:
		bv, ok := b.(UintValue)
		return ok && av == bv
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av == bv
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case BytesValue:
		bv, ok := b.(BytesValue)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
