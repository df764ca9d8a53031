package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the ordered list of feature names the classifier expects.
// It is immutable once constructed.
type Manifest struct {
	names []string
	index map[string]int
}

// NewManifest validates names and builds a Manifest. Names must be non-empty
// and unique.
func NewManifest(names []string) (Manifest, error) {
	if len(names) == 0 {
		return Manifest{}, errors.New("manifest is empty")
	}
	m := Manifest{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return Manifest{}, fmt.Errorf("manifest entry %d is blank", i)
		}
		if _, dup := m.index[n]; dup {
			return Manifest{}, fmt.Errorf("manifest entry %q is duplicated", n)
		}
		m.names[i] = n
		m.index[n] = i
	}
	return m, nil
}

// DefaultManifest returns the column order the model was exported with.
func DefaultManifest() Manifest {
	names := []string{FieldIADL, FieldGender}
	names = append(names, indicatorFields...)
	names = append(names, FieldSelfRatedHealth, FieldHearing, FieldAge)
	m, _ := NewManifest(names)
	return m
}

// LoadManifest reads a manifest from a JSON array or, for .yaml/.yml files,
// a YAML list.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &names)
	default:
		err = json.Unmarshal(data, &names)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m, err := NewManifest(names)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Names returns a copy of the ordered feature names.
func (m Manifest) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m Manifest) Len() int { return len(m.names) }

// Index returns the position of name, or -1.
func (m Manifest) Index(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	return -1
}

// Matches reports whether names has exactly the manifest's length and order.
func (m Manifest) Matches(names []string) bool {
	if len(names) != len(m.names) {
		return false
	}
	for i := range names {
		if names[i] != m.names[i] {
			return false
		}
	}
	return true
}
