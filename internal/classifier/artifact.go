package classifier

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
)

//go:embed schema.json
var artifactSchemaJSON []byte

const artifactSchemaURL = "schema://cardiorisk/classifier-artifact.json"

var (
	schemaOnce     sync.Once
	artifactSchema *jsonschema.Schema
	schemaErr      error
)

const (
	KindSVC      = "svc"
	KindLogistic = "logistic"
)

// Artifact is the exported form of a trained binary classifier.
type Artifact struct {
	ModelID      string   `json:"model_id"`
	Kind         string   `json:"kind"`
	FeatureNames []string `json:"feature_names,omitempty"`

	// svc
	Kernel         string      `json:"kernel,omitempty"`
	Gamma          float64     `json:"gamma,omitempty"`
	Coef0          float64     `json:"coef0,omitempty"`
	Degree         int         `json:"degree,omitempty"`
	SupportVectors [][]float64 `json:"support_vectors,omitempty"`
	DualCoef       []float64   `json:"dual_coef,omitempty"`
	ProbA          float64     `json:"prob_a,omitempty"`
	ProbB          float64     `json:"prob_b,omitempty"`

	// logistic
	Coef []float64 `json:"coef,omitempty"`

	Intercept float64 `json:"intercept"`
}

// LoadArtifact reads an artifact file and validates it against the artifact
// schema.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact validates and decodes artifact JSON.
func ParseArtifact(data []byte) (*Artifact, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("artifact schema validation failed: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &a, nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(artifactSchemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse artifact schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(artifactSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add artifact schema: %w", err)
			return
		}
		artifactSchema, schemaErr = c.Compile(artifactSchemaURL)
	})
	return artifactSchema, schemaErr
}

// CheckManifest verifies the artifact was exported for the given manifest.
// Artifacts without feature_names are only checked for dimension.
func (a *Artifact) CheckManifest(m features.Manifest) error {
	if len(a.FeatureNames) > 0 && !m.Matches(a.FeatureNames) {
		return fmt.Errorf("artifact %s feature names %v do not match manifest %v", a.ModelID, a.FeatureNames, m.Names())
	}
	if dim := a.Dimension(); dim != m.Len() {
		return fmt.Errorf("artifact %s expects %d features, manifest has %d", a.ModelID, dim, m.Len())
	}
	return nil
}

// Dimension is the input width the artifact was trained on.
func (a *Artifact) Dimension() int {
	switch a.Kind {
	case KindSVC:
		if len(a.SupportVectors) > 0 {
			return len(a.SupportVectors[0])
		}
	case KindLogistic:
		return len(a.Coef)
	}
	return 0
}

// Scorer builds the in-process model described by the artifact.
func (a *Artifact) Scorer() (Scorer, error) {
	switch a.Kind {
	case KindSVC:
		return newSVC(a)
	case KindLogistic:
		return newLogistic(a)
	}
	return nil, fmt.Errorf("unsupported artifact kind %q", a.Kind)
}
