package classifier

import (
	"context"
	"fmt"
	"math"
)

type kernelFunc func(u, v []float64) float64

// svc is a binary support vector classifier with Platt-scaled output.
type svc struct {
	kernel    kernelFunc
	sv        [][]float64
	dualCoef  []float64
	intercept float64
	probA     float64
	probB     float64
	dim       int
}

func newSVC(a *Artifact) (*svc, error) {
	if len(a.SupportVectors) == 0 {
		return nil, fmt.Errorf("svc %s: no support vectors", a.ModelID)
	}
	if len(a.SupportVectors) != len(a.DualCoef) {
		return nil, fmt.Errorf("svc %s: %d support vectors but %d dual coefficients", a.ModelID, len(a.SupportVectors), len(a.DualCoef))
	}
	dim := len(a.SupportVectors[0])
	for i, sv := range a.SupportVectors {
		if len(sv) != dim {
			return nil, fmt.Errorf("svc %s: support vector %d has %d features, want %d", a.ModelID, i, len(sv), dim)
		}
	}
	k, err := kernelFor(a)
	if err != nil {
		return nil, err
	}
	return &svc{
		kernel:    k,
		sv:        a.SupportVectors,
		dualCoef:  a.DualCoef,
		intercept: a.Intercept,
		probA:     a.ProbA,
		probB:     a.ProbB,
		dim:       dim,
	}, nil
}

func kernelFor(a *Artifact) (kernelFunc, error) {
	gamma, coef0, degree := a.Gamma, a.Coef0, a.Degree
	if degree == 0 {
		degree = 3
	}
	if a.Kernel != "linear" && !(gamma > 0) {
		return nil, fmt.Errorf("svc %s: kernel %q needs gamma > 0, got %v", a.ModelID, a.Kernel, gamma)
	}
	switch a.Kernel {
	case "linear":
		return dot, nil
	case "rbf":
		return func(u, v []float64) float64 {
			var d float64
			for i := range u {
				diff := u[i] - v[i]
				d += diff * diff
			}
			return math.Exp(-gamma * d)
		}, nil
	case "poly":
		return func(u, v []float64) float64 {
			return math.Pow(gamma*dot(u, v)+coef0, float64(degree))
		}, nil
	case "sigmoid":
		return func(u, v []float64) float64 {
			return math.Tanh(gamma*dot(u, v) + coef0)
		}, nil
	}
	return nil, fmt.Errorf("svc %s: unsupported kernel %q", a.ModelID, a.Kernel)
}

// decision is sum(dual_coef_i * K(sv_i, x)) + intercept, using the
// scikit-learn sign convention where a positive value favours class 1.
func (m *svc) decision(x []float64) float64 {
	f := m.intercept
	for i, sv := range m.sv {
		f += m.dualCoef[i] * m.kernel(sv, x)
	}
	return f
}

func (m *svc) Score(_ context.Context, x []float64) (float64, error) {
	if len(x) != m.dim {
		return 0, fmt.Errorf("svc: got %d features, want %d", len(x), m.dim)
	}
	return plattProbability(m.decision(x), m.probA, m.probB), nil
}

// plattProbability returns P(class 1) for decision value f.
//
// prob_a and prob_b were fitted by libsvm against its internal decision
// value, which is -f for a binary scikit-learn model, and give the
// probability of class 0: 1 / (1 + exp(A*(-f) + B)). The complement is
// 1 / (1 + exp(A*f - B)).
func plattProbability(f, a, b float64) float64 {
	z := f*a - b
	if z >= 0 {
		e := math.Exp(-z)
		return e / (1 + e)
	}
	return 1 / (1 + math.Exp(z))
}

func dot(u, v []float64) float64 {
	var s float64
	for i := range u {
		s += u[i] * v[i]
	}
	return s
}
