package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	ddl, err := schema("postgres.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const assessmentColumns = `id, probability, tier, model_id, request_id, created_at`

func (s *PostgresStore) CreateAssessment(ctx context.Context, a *Assessment) error {
	if err := prepare(a); err != nil {
		return err
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO cardiorisk_assessments (id, probability, tier, model_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		a.ID, a.Probability, a.Tier, a.ModelID, a.RequestID,
	).Scan(&a.CreatedAt)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a := &Assessment{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM cardiorisk_assessments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Probability, &a.Tier, &a.ModelID, &a.RequestID, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM cardiorisk_assessments WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Tier != "" {
		n++
		query += fmt.Sprintf(" AND tier = $%d", n)
		args = append(args, filter.Tier)
	}
	query += " ORDER BY created_at DESC"
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, clampLimit(filter.Limit))
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a := &Assessment{}
		if err := rows.Scan(&a.ID, &a.Probability, &a.Tier, &a.ModelID, &a.RequestID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT tier, COUNT(*), COALESCE(AVG(probability), 0)
		FROM cardiorisk_assessments GROUP BY tier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &Stats{ByTier: make(map[string]TierStats)}
	for rows.Next() {
		var tier string
		var ts TierStats
		if err := rows.Scan(&tier, &ts.Count, &ts.MeanProbability); err != nil {
			return nil, err
		}
		stats.ByTier[tier] = ts
		stats.Total += ts.Count
	}
	return stats, rows.Err()
}
