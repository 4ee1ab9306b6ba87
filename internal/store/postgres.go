package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/resilience"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	// Retry the ping while the database starts.
	ping := resilience.Policy{
		Attempts: 5,
		Base:     200 * time.Millisecond,
		Cap:      3 * time.Second,
		Factor:   2,
		Jitter:   0.25,
		OnRetry:  resilience.LogRetry("store", "postgres ping"),
	}
	if err := resilience.Do(ctx, ping, pool.Ping); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	listing_url TEXT NOT NULL,
	overall     DOUBLE PRECISION,
	items       JSONB NOT NULL,
	scores      JSONB NOT NULL,
	insight     JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_listing_url ON assessments(listing_url);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SaveAssessment upserts a by ID. An empty ID or zero CreatedAt is filled in.
func (s *PostgresStore) SaveAssessment(ctx context.Context, a *model.Assessment) error {
	fillDefaults(a)
	r, err := encode(a)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, listing_url, overall, items, scores, insight, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			listing_url = EXCLUDED.listing_url,
			overall = EXCLUDED.overall,
			items = EXCLUDED.items,
			scores = EXCLUDED.scores,
			insight = EXCLUDED.insight`,
		r.ID, r.ListingURL, r.Overall, r.Items, r.Scores, r.Insight, a.CreatedAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: save assessment %s", a.ID)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, listing_url, overall, items, scores, insight, created_at FROM assessments WHERE id = $1`,
		id,
	)
	a, err := scanPgAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get assessment %s", id)
	}
	return a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error) {
	query := `SELECT id, listing_url, overall, items, scores, insight, created_at FROM assessments WHERE true`
	args := []any{}
	argIdx := 1

	if filter.ListingURL != "" {
		query += fmt.Sprintf(` AND listing_url = $%d`, argIdx)
		args = append(args, filter.ListingURL)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d`, argIdx)
	args = append(args, filter.limit())
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanPgAssessment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan assessment")
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func scanPgAssessment(s scannable) (*model.Assessment, error) {
	var (
		r         row
		insight   *[]byte
		createdAt time.Time
	)
	if err := s.Scan(&r.ID, &r.ListingURL, &r.Overall, &r.Items, &r.Scores, &insight, &createdAt); err != nil {
		return nil, err
	}
	if insight != nil {
		r.Insight = *insight
	}
	a := &model.Assessment{CreatedAt: createdAt.UTC()}
	if err := decode(r, a); err != nil {
		return nil, err
	}
	return a, nil
}
