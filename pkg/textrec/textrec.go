// Package textrec converts records to and from a line-delimited text form
// so human-readable data can feed the row codec. One record per line,
// fields as name=value pairs separated by single spaces, in spec order:
//
//	status=2 vip=true tries=5 amount=12345 tag=010203
//
// Integers render in decimal, booleans as true/false, byte fields as
// lower-case hex. The adapter contains no format-defining logic; the
// binary layout lives entirely in package rowcodec.
package textrec

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssorent/rowbin/pkg/rowcodec"
)

// FormatRecord renders one record as a line, fields in spec order.
func FormatRecord(spec *rowcodec.Spec, rec rowcodec.Record) (string, error) {
	var sb strings.Builder
	for i, f := range spec.Fields {
		v, ok := rec[f.Name]
		if !ok {
			return "", fmt.Errorf("field %q: %w", f.Name, rowcodec.ErrMissingField)
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Name)
		sb.WriteByte('=')
		switch val := v.(type) {
		case rowcodec.UintValue:
			sb.WriteString(strconv.FormatUint(uint64(val), 10))
		case rowcodec.IntValue:
			sb.WriteString(strconv.FormatInt(int64(val), 10))
		case rowcodec.BoolValue:
			sb.WriteString(strconv.FormatBool(bool(val)))
		case rowcodec.BytesValue:
			sb.WriteString(hex.EncodeToString(val))
		default:
			return "", fmt.Errorf("field %q: %w", f.Name, rowcodec.ErrWrongType)
		}
	}
	return sb.String(), nil
}

// ParseRecord parses one line into a record. Every spec field must be
// present; extra or unknown fields are rejected.
func ParseRecord(spec *rowcodec.Spec, line string) (rowcodec.Record, error) {
	byName := make(map[string]rowcodec.FieldType, len(spec.Fields))
	for _, f := range spec.Fields {
		byName[f.Name] = f.Type
	}

	rec := make(rowcodec.Record, len(spec.Fields))
	for _, tok := range strings.Fields(line) {
		name, raw, found := strings.Cut(tok, "=")
		if !found {
			return nil, fmt.Errorf("malformed pair %q: expected name=value", tok)
		}
		ft, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		if _, dup := rec[name]; dup {
			return nil, fmt.Errorf("field %q: repeated on line", name)
		}

		v, err := parseValue(ft, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		rec[name] = v
	}

	for _, f := range spec.Fields {
		if _, ok := rec[f.Name]; !ok {
			return nil, fmt.Errorf("field %q: %w", f.Name, rowcodec.ErrMissingField)
		}
	}
	return rec, nil
}

func parseValue(ft rowcodec.FieldType, raw string) (rowcodec.Value, error) {
	switch ft.Kind {
	case rowcodec.KindUint:
		u, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		return rowcodec.UintValue(u), nil
	case rowcodec.KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid signed integer %q", raw)
		}
		return rowcodec.IntValue(i), nil
	case rowcodec.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q", raw)
		}
		return rowcodec.BoolValue(b), nil
	case rowcodec.KindBytes:
		p, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q", raw)
		}
		return rowcodec.BytesValue(p), nil
	default:
		return nil, fmt.Errorf("unrecognized field kind %d", ft.Kind)
	}
}

// Read parses all records from r, one per line. Blank lines and lines
// starting with '#' are skipped.
func Read(r io.Reader, spec *rowcodec.Spec) ([]rowcodec.Record, error) {
	var records []rowcodec.Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := ParseRecord(spec, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// Write renders all records to w, one per line.
func Write(w io.Writer, spec *rowcodec.Spec, records []rowcodec.Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		line, err := FormatRecord(spec, rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
