package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
)

// Scorer is the capability the rest of the service needs from a model:
// an ordered feature vector in, the positive-class probability out.
type Scorer interface {
	Score(ctx context.Context, x []float64) (float64, error)
}

// ErrInvalidProbability is returned when a scorer yields a value that is not
// a finite probability.
var ErrInvalidProbability = errors.New("scorer returned an invalid probability")

// ValidationError reports a vector whose shape does not match the manifest.
type ValidationError struct {
	Expected []string
	Got      []string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("feature vector rejected: %s (expected %d features, got %d)", e.Reason, len(e.Expected), len(e.Got))
}

// Adapter validates vectors against the manifest before delegating to the
// underlying Scorer. It is safe for concurrent use as long as the Scorer is.
type Adapter struct {
	scorer   Scorer
	manifest features.Manifest
	modelID  string
}

func NewAdapter(s Scorer, m features.Manifest, modelID string) *Adapter {
	return &Adapter{scorer: s, manifest: m, modelID: modelID}
}

func (a *Adapter) ModelID() string { return a.modelID }

func (a *Adapter) Manifest() features.Manifest { return a.manifest }

// Score checks v against the manifest and returns the probability of the
// positive class.
func (a *Adapter) Score(ctx context.Context, v features.Vector) (float64, error) {
	if err := a.validate(v); err != nil {
		return 0, err
	}
	p, err := a.scorer.Score(ctx, v.Values)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", a.modelID, err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return p, nil
}

func (a *Adapter) validate(v features.Vector) error {
	expected := a.manifest.Names()
	if len(v.Values) != len(v.Names) {
		return &ValidationError{Expected: expected, Got: v.Names, Reason: "names and values differ in length"}
	}
	if len(v.Names) != len(expected) {
		return &ValidationError{Expected: expected, Got: v.Names, Reason: "length does not match manifest"}
	}
	if !a.manifest.Matches(v.Names) {
		return &ValidationError{Expected: expected, Got: v.Names, Reason: "order does not match manifest"}
	}
	return nil
}
