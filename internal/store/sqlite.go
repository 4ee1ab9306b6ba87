package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/property-checklist/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id          TEXT PRIMARY KEY,
	listing_url TEXT NOT NULL,
	overall     REAL,
	items       TEXT NOT NULL,
	scores      TEXT NOT NULL,
	insight     TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_listing_url ON assessments(listing_url);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAssessment inserts a, or replaces the stored copy with the same ID.
// An empty ID or zero CreatedAt is filled in.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *model.Assessment) error {
	return saveSQLite(ctx, s.db, a)
}

// SaveAssessments saves as in one transaction; either all land or none do.
func (s *SQLiteStore) SaveAssessments(ctx context.Context, as []model.Assessment) error {
	if len(as) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	for i := range as {
		if err := saveSQLite(ctx, tx, &as[i]); err != nil {
			return err
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit tx")
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveSQLite(ctx context.Context, db execer, a *model.Assessment) error {
	fillDefaults(a)
	r, err := encode(a)
	if err != nil {
		return err
	}

	var insight any
	if r.Insight != nil {
		insight = string(r.Insight)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO assessments (id, listing_url, overall, items, scores, insight, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			listing_url = excluded.listing_url,
			overall = excluded.overall,
			items = excluded.items,
			scores = excluded.scores,
			insight = excluded.insight`,
		r.ID, r.ListingURL, r.Overall, string(r.Items), string(r.Scores), insight, a.CreatedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: save assessment %s", a.ID)
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, listing_url, overall, items, scores, insight, created_at FROM assessments WHERE id = ?`,
		id,
	)
	a, err := scanAssessment(row)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return a, eris.Wrapf(err, "sqlite: get assessment %s", id)
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error) {
	query := `SELECT id, listing_url, overall, items, scores, insight, created_at FROM assessments WHERE 1=1`
	var args []any

	if filter.ListingURL != "" {
		query += ` AND listing_url = ?`
		args = append(args, filter.ListingURL)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(s scannable) (*model.Assessment, error) {
	var (
		r         row
		overall   sql.NullFloat64
		items     string
		scores    string
		insight   sql.NullString
		createdAt time.Time
	)
	err := s.Scan(&r.ID, &r.ListingURL, &overall, &items, &scores, &insight, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan assessment")
	}
	if overall.Valid {
		r.Overall = &overall.Float64
	}
	r.Items, r.Scores = []byte(items), []byte(scores)
	if insight.Valid {
		r.Insight = []byte(insight.String)
	}

	a := &model.Assessment{CreatedAt: createdAt.UTC()}
	if err := decode(r, a); err != nil {
		return nil, err
	}
	return a, nil
}
