package rowcodec

import "errors"

var (
	// ErrEmptySpec is returned when a Spec declares no fields.
	ErrEmptySpec = errors.New("rowcodec: spec has no fields")

	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("rowcodec: duplicate field name")

	// ErrWidthRange is returned when a field width is outside its
	// permitted range (1..64 bits for integers, >= 0 bytes for Bytes).
	ErrWidthRange = errors.New("rowcodec: field width out of range")

	// ErrMissingField is returned by Encode when a record has no value
	// for a declared field.
	ErrMissingField = errors.New("rowcodec: missing field")

	// ErrWrongType is returned by Encode when a record value does not
	// match the declared field type.
	ErrWrongType = errors.New("rowcodec: value type mismatch")

	// ErrOutOfRange is returned by Encode when an integer value does not
	// fit the declared bit width.
	ErrOutOfRange = errors.New("rowcodec: value out of range")

	// ErrBadLength is returned by Encode when a Bytes value is not
	// exactly the declared size.
	ErrBadLength = errors.New("rowcodec: byte field length mismatch")

	// ErrShortBuffer is returned by Decode when the input runs out of
	// bits mid-field. It indicates a buffer that is not a whole multiple
	// of RowSize, or a spec that does not match the data.
	ErrShortBuffer = errors.New("rowcodec: buffer too short for next field")

	// ErrZeroSizeRow is returned by Decode when the Spec's RowSize is
	// zero and the input is non-empty. The format cannot express record
	// count for zero-size rows; only the empty buffer is decodable.
	ErrZeroSizeRow = errors.New("rowcodec: non-empty buffer with zero-size rows")
)
