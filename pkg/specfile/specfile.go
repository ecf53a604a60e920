// Package specfile loads and saves rowcodec field specifications as YAML.
//
// A spec file lists fields in encoding order:
//
//	fields:
//	  - name: status
//	    type: uint
//	    bits: 3
//	  - name: vip
//	    type: bool
//	  - name: tag
//	    type: bytes
//	    size: 3
//
// Load always returns a validated spec; the rowcodec invariants (unique
// names, width bounds) are enforced before the spec reaches any codec.
package specfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssorent/rowbin/pkg/rowcodec"
)

type fileSpec struct {
	Fields []fileField `yaml:"fields"`
}

type fileField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Bits int    `yaml:"bits,omitempty"`
	Size int    `yaml:"size,omitempty"`
}

// Parse builds a validated spec from YAML bytes.
func Parse(data []byte) (*rowcodec.Spec, error) {
	var fs fileSpec
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("failed to parse spec file: %w", err)
	}

	fields := make([]rowcodec.Field, 0, len(fs.Fields))
	for _, f := range fs.Fields {
		var ft rowcodec.FieldType
		switch f.Type {
		case "uint":
			ft = rowcodec.Uint(f.Bits)
		case "int":
			ft = rowcodec.Int(f.Bits)
		case "bool":
			ft = rowcodec.Bool()
		case "bytes":
			ft = rowcodec.Bytes(f.Size)
		default:
			return nil, fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
		}
		fields = append(fields, rowcodec.Field{Name: f.Name, Type: ft})
	}

	return rowcodec.NewSpec(fields...)
}

// Load reads and parses a spec file from disk.
func Load(path string) (*rowcodec.Spec, error) {
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid spec path: %w", err)
		}
		path = absPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	return Parse(data)
}

// Save writes a spec back to YAML with one entry per field.
func Save(spec *rowcodec.Spec, path string) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	fs := fileSpec{Fields: make([]fileField, 0, len(spec.Fields))}
	for _, f := range spec.Fields {
		ff := fileField{Name: f.Name, Type: f.Type.Kind.String()}
		switch f.Type.Kind {
		case rowcodec.KindUint, rowcodec.KindInt:
			ff.Bits = f.Type.Bits
		case rowcodec.KindBytes:
			ff.Size = f.Type.Size
		}
		fs.Fields = append(fs.Fields, ff)
	}

	data, err := yaml.Marshal(&fs)
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}
	return nil
}
