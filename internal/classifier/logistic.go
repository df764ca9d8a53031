package classifier

import (
	"context"
	"fmt"
	"math"
)

type logistic struct {
	coef      []float64
	intercept float64
}

func newLogistic(a *Artifact) (*logistic, error) {
	if len(a.Coef) == 0 {
		return nil, fmt.Errorf("logistic %s: no coefficients", a.ModelID)
	}
	return &logistic{coef: a.Coef, intercept: a.Intercept}, nil
}

func (m *logistic) Score(_ context.Context, x []float64) (float64, error) {
	if len(x) != len(m.coef) {
		return 0, fmt.Errorf("logistic: got %d features, want %d", len(x), len(m.coef))
	}
	z := m.intercept + dot(m.coef, x)
	if z >= 0 {
		return 1 / (1 + math.Exp(-z)), nil
	}
	e := math.Exp(z)
	return e / (1 + e), nil
}
