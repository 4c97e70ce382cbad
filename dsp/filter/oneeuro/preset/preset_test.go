package preset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlPresets = `
[hand]
min_cutoff = 0.5
beta = 4.0

[head]
min_cutoff = 1.0
beta = 0.6
derivative_cutoff = 2.0
`

const yamlPresets = `
hand:
  min_cutoff: 0.5
  beta: 4.0
head:
  min_cutoff: 1.0
  beta: 0.6
  derivative_cutoff: 2.0
`

func TestDecodeTOML(t *testing.T) {
	set, err := Decode(strings.NewReader(tomlPresets), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, []string{"hand", "head"}, set.Names())
	assert.Equal(t, oneeuro.Params{MinCutoff: 0.5, Beta: 4, DerivativeCutoff: 1}, set["hand"])
	assert.Equal(t, oneeuro.Params{MinCutoff: 1, Beta: 0.6, DerivativeCutoff: 2}, set["head"])
}

func TestDecodeYAMLMatchesTOML(t *testing.T) {
	fromYAML, err := Decode(strings.NewReader(yamlPresets), FormatYAML)
	require.NoError(t, err)

	fromTOML, err := Decode(strings.NewReader(tomlPresets), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, fromTOML, fromYAML)
}

func TestDecodeRejectsNegative(t *testing.T) {
	_, err := Decode(strings.NewReader("[bad]\nbeta = -1.0\n"), FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oneeuro.ErrInvalidParams))
	assert.Contains(t, err.Error(), `"bad"`)

	_, err = Decode(strings.NewReader("bad:\n  min_cutoff: -0.5\n"), FormatYAML)
	require.ErrorIs(t, err, oneeuro.ErrInvalidParams)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("[hand]\ncutoff = 1\n"), FormatTOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("hand:\n  cutoff: 1\n"), FormatYAML)
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(strings.NewReader(""), FormatYAML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(""), FormatTOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(tomlPresets), Format(9))
	assert.Error(t, err)
}

func TestSetGet(t *testing.T) {
	set := Builtin()

	p, err := set.Get("default")
	require.NoError(t, err)
	assert.Equal(t, oneeuro.DefaultParams(), p)

	_, err = set.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestBuiltinValid(t *testing.T) {
	for name, p := range Builtin() {
		assert.NoError(t, p.Validate(), name)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{path: "a.toml", want: FormatTOML, ok: true},
		{path: "dir/b.YAML", want: FormatYAML, ok: true},
		{path: "c.yml", want: FormatYAML, ok: true},
		{path: "d.json"},
		{path: "noext"},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if !tt.ok {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlPresets), 0o600))

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, set, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	override := Set{"hand": {MinCutoff: 3, Beta: 1, DerivativeCutoff: 1}, "extra": oneeuro.DefaultParams()}
	merged := Merge(Builtin(), override)

	assert.Len(t, merged, 5)
	assert.Equal(t, override["hand"], merged["hand"])
	assert.Equal(t, Builtin()["head"], merged["head"])
}
