package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssorent/rowbin/pkg/archive"
	"github.com/ssorent/rowbin/pkg/envelope"
	"github.com/ssorent/rowbin/pkg/rowcodec"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port       int
	Bind       string
	APIKey     string
	ArchiveDir string
}

// Archiver is the archive seam the server depends on; *archive.Store
// satisfies it, and tests can substitute their own.
type Archiver interface {
	Create(data []byte) (*ksuid.KSUID, error)
	Read(id *ksuid.KSUID) ([]byte, error)
	Update(id *ksuid.KSUID, data []byte) error
	Delete(id *ksuid.KSUID) error
	List() ([]archive.Entry, error)
}

// SpecDTO carries a field specification in request bodies.
type SpecDTO struct {
	Fields []FieldDTO `json:"fields"`
}

// FieldDTO is one field of a SpecDTO; Type is uint/int/bool/bytes.
type FieldDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Bits int    `json:"bits,omitempty"`
	Size int    `json:"size,omitempty"`
}

// PackRequest asks the server to encode text records against a spec.
type PackRequest struct {
	Spec    SpecDTO  `json:"spec"`
	Records []string `json:"records"`
}

// PackResponse carries the packed rows. Data is base64 in JSON.
type PackResponse struct {
	Data        []byte `json:"data"`
	RowSize     int    `json:"row_size"`
	RecordCount int    `json:"record_count"`
}

// UnpackRequest asks the server to decode packed rows back to text.
type UnpackRequest struct {
	Spec SpecDTO `json:"spec"`
	Data []byte  `json:"data"`
}

// UnpackResponse carries the decoded records, one line per record.
type UnpackResponse struct {
	Records []string `json:"records"`
}

// WrapRequest asks the server to build an envelope around Data.
type WrapRequest struct {
	Data       []byte   `json:"data"`
	Algorithms []string `json:"algorithms,omitempty"`
	MinGain    int      `json:"min_gain,omitempty"`
}

// WrapResponse carries the envelope and what was chosen for it.
type WrapResponse struct {
	Data     []byte            `json:"data"`
	Metadata envelope.Metadata `json:"metadata"`
}

// UnwrapRequest asks the server to open and verify an envelope.
type UnwrapRequest struct {
	Data []byte `json:"data"`
}

// UnwrapResponse carries the restored payload and unwrap metadata.
type UnwrapResponse struct {
	Data     []byte            `json:"data"`
	Metadata envelope.Metadata `json:"metadata"`
}

// InspectRequest asks for an envelope's header claims.
type InspectRequest struct {
	Data []byte `json:"data"`
}

// ArchiveCreateRequest stores an envelope in the archive.
type ArchiveCreateRequest struct {
	Data []byte `json:"data"`
}

// ArchiveCreateResponse returns the new entry's id.
type ArchiveCreateResponse struct {
	ID string `json:"id"`
}

// ArchiveReadResponse returns a stored envelope with its header claims.
type ArchiveReadResponse struct {
	Data []byte        `json:"data"`
	Info envelope.Info `json:"info"`
}

// AlgorithmsResponse lists the compression capabilities of this build.
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
}

func (d SpecDTO) toSpec() (*rowcodec.Spec, error) {
	fields := make([]rowcodec.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
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
			return nil, errUnknownFieldType(f.Name, f.Type)
		}
		fields = append(fields, rowcodec.Field{Name: f.Name, Type: ft})
	}
	return rowcodec.NewSpec(fields...)
}
