package features

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	assert.Equal(t, 13, m.Len())
	assert.Equal(t, 0, m.Index(FieldIADL))
	assert.Equal(t, 12, m.Index(FieldAge))
	assert.Equal(t, -1, m.Index("Cholesterol"))
}

func TestNewManifest_Rejects(t *testing.T) {
	_, err := NewManifest(nil)
	assert.Error(t, err)

	_, err = NewManifest([]string{FieldAge, " "})
	assert.Error(t, err)

	_, err = NewManifest([]string{FieldAge, FieldGender, FieldAge})
	assert.ErrorContains(t, err, "duplicated")
}

func TestLoadManifest_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feature_names.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Age", "Gender", "IADL score"]`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{FieldAge, FieldGender, FieldIADL}, m.Names())
	assert.True(t, m.Matches([]string{FieldAge, FieldGender, FieldIADL}))
	assert.False(t, m.Matches([]string{FieldGender, FieldAge, FieldIADL}))
	assert.False(t, m.Matches([]string{FieldAge, FieldGender}))
}

func TestLoadManifest_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- Hearing\n- Age\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{FieldHearing, FieldAge}, m.Names())
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read manifest")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Age": 1}`), 0o644))
	_, err = LoadManifest(path)
	assert.ErrorContains(t, err, "parse manifest")
}
