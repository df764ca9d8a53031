// Package assessment wires encoding, scoring, tiering and advice into one
// read-only pipeline built at startup.
package assessment

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/CardioRisk/internal/advice"
	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
	"github.com/MikeSquared-Agency/CardioRisk/internal/scoring"
)

// Model is the scoring side of the pipeline. *classifier.Adapter implements it.
type Model interface {
	Score(ctx context.Context, v features.Vector) (float64, error)
	ModelID() string
	Manifest() features.Manifest
}

// Result is the outcome of one submission.
type Result struct {
	Vector      features.Vector
	Probability float64
	Tier        scoring.Tier
	Advice      advice.Bundle
	ModelID     string
}

// Pipeline holds the loaded manifest, encoder and model. It has no mutable
// state and may be shared across requests.
type Pipeline struct {
	encoder *features.Encoder
	model   Model
}

// New checks that the encoder and model agree on the manifest.
func New(enc *features.Encoder, model Model) (*Pipeline, error) {
	if enc == nil || model == nil {
		return nil, fmt.Errorf("assessment pipeline needs an encoder and a model")
	}
	if !model.Manifest().Matches(enc.Manifest().Names()) {
		return nil, fmt.Errorf("encoder manifest %v does not match model manifest %v",
			enc.Manifest().Names(), model.Manifest().Names())
	}
	return &Pipeline{encoder: enc, model: model}, nil
}

func (p *Pipeline) ModelID() string { return p.model.ModelID() }

func (p *Pipeline) Manifest() features.Manifest { return p.encoder.Manifest() }

// Encode runs only the feature encoder.
func (p *Pipeline) Encode(in features.RawInput) (features.Vector, error) {
	return p.encoder.Encode(in)
}

// Assess encodes in, scores it and resolves the tier and advice. A
// *features.MappingError stops the pipeline before the model is called.
func (p *Pipeline) Assess(ctx context.Context, in features.RawInput) (*Result, error) {
	v, err := p.encoder.Encode(in)
	if err != nil {
		return nil, err
	}
	prob, err := p.model.Score(ctx, v)
	if err != nil {
		return nil, err
	}
	tier := scoring.TierFor(prob)
	return &Result{
		Vector:      v,
		Probability: prob,
		Tier:        tier,
		Advice:      advice.For(tier),
		ModelID:     p.model.ModelID(),
	}, nil
}
