package specfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssorent/rowbin/pkg/rowcodec"
)

const sampleSpec = `
fields:
  - name: status
    type: uint
    bits: 3
  - name: vip
    type: bool
  - name: tries
    type: uint
    bits: 5
  - name: amount
    type: uint
    bits: 20
  - name: tag
    type: bytes
    size: 3
`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(sampleSpec))
	require.NoError(t, err)

	require.Len(t, spec.Fields, 5)
	assert.Equal(t, "status", spec.Fields[0].Name)
	assert.Equal(t, rowcodec.KindUint, spec.Fields[0].Type.Kind)
	assert.Equal(t, 3, spec.Fields[0].Type.Bits)
	assert.Equal(t, rowcodec.KindBool, spec.Fields[1].Type.Kind)
	assert.Equal(t, rowcodec.KindBytes, spec.Fields[4].Type.Kind)
	assert.Equal(t, 3, spec.Fields[4].Type.Size)
	assert.Equal(t, 7, spec.RowSize())
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown type",
			yaml: "fields:\n  - name: a\n    type: float\n    bits: 32\n",
		},
		{
			name: "missing bits",
			yaml: "fields:\n  - name: a\n    type: uint\n",
		},
		{
			name: "no fields",
			yaml: "fields: []\n",
		},
		{
			name: "duplicate names",
			yaml: "fields:\n  - name: a\n    type: bool\n  - name: a\n    type: bool\n",
		},
		{
			name: "not yaml",
			yaml: "{{{{",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_DuplicateSurfacesRowcodecError(t *testing.T) {
	_, err := Parse([]byte("fields:\n  - name: a\n    type: bool\n  - name: a\n    type: bool\n"))
	assert.True(t, errors.Is(err, rowcodec.ErrDuplicateField))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")

	require.NoError(t, os.WriteFile(path, []byte(sampleSpec), 0644))

	spec, err := Load(path)
	require.NoError(t, err)

	saved := filepath.Join(dir, "saved.yaml")
	require.NoError(t, Save(spec, saved))

	reloaded, err := Load(saved)
	require.NoError(t, err)
	assert.Equal(t, spec.Fields, reloaded.Fields)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
