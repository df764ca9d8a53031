package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the audit log in a local file, for single-node deployments.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path not specified")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// one writer; sqlite serialises writes anyway
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	ddl, err := schema("sqlite.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateAssessment(ctx context.Context, a *Assessment) error {
	if err := prepare(a); err != nil {
		return err
	}
	a.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cardiorisk_assessments (id, probability, tier, model_id, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Probability, a.Tier, a.ModelID, a.RequestID, a.CreatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+assessmentColumns+`
		FROM cardiorisk_assessments WHERE id = ?`, id.String())
	a, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM cardiorisk_assessments WHERE 1=1`
	args := []interface{}{}
	if filter.Tier != "" {
		query += " AND tier = ?"
		args = append(args, filter.Tier)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, clampLimit(filter.Limit), max(filter.Offset, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	rows, err := s.db.QueryContext(ctx, `
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLite(r rowScanner) (*Assessment, error) {
	var (
		a       Assessment
		id      string
		created int64
	)
	if err := r.Scan(&id, &a.Probability, &a.Tier, &a.ModelID, &a.RequestID, &created); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("stored id %q: %w", id, err)
	}
	a.ID = parsed
	a.CreatedAt = time.Unix(0, created).UTC()
	return &a, nil
}
