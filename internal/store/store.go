package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CardioRisk/internal/config"
)

// Assessment is the audit record of one scored submission. It holds derived
// output only; raw form input is never stored.
type Assessment struct {
	ID          uuid.UUID `json:"id"`
	Probability float64   `json:"probability"`
	Tier        string    `json:"tier"`
	ModelID     string    `json:"model_id"`
	RequestID   string    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AssessmentFilter struct {
	Tier   string
	Limit  int
	Offset int
}

type TierStats struct {
	Count           int     `json:"count"`
	MeanProbability float64 `json:"mean_probability"`
}

type Stats struct {
	Total  int                  `json:"total"`
	ByTier map[string]TierStats `json:"by_tier"`
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type Store interface {
	CreateAssessment(ctx context.Context, a *Assessment) error
	// GetAssessment returns nil, nil when no record exists.
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

var errInvalidAssessment = errors.New("invalid assessment")

// Open connects the configured audit backend.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return NewPostgresStore(ctx, cfg.URL)
	case config.DriverSQLite:
		return NewSQLiteStore(ctx, cfg.URL)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func prepare(a *Assessment) error {
	if a == nil {
		return fmt.Errorf("%w: nil", errInvalidAssessment)
	}
	if a.Probability < 0 || a.Probability > 1 {
		return fmt.Errorf("%w: probability %v", errInvalidAssessment, a.Probability)
	}
	if a.Tier == "" {
		return fmt.Errorf("%w: tier required", errInvalidAssessment)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
