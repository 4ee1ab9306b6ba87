package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/model"
)

const bulkTempTable = "_tmp_assessments"

var assessmentColumns = []string{"id", "listing_url", "overall", "items", "scores", "insight", "created_at"}

// SaveAssessments upserts as in one transaction: rows are COPYed into a
// temp table, then merged into assessments by ID. When the batch repeats
// an ID the last copy wins.
func (s *PostgresStore) SaveAssessments(ctx context.Context, as []model.Assessment) error {
	if len(as) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(as))
	pos := make(map[string]int, len(as))
	for i := range as {
		a := &as[i]
		fillDefaults(a)
		r, err := encode(a)
		if err != nil {
			return err
		}
		vals := []any{r.ID, r.ListingURL, r.Overall, r.Items, r.Scores, r.Insight, a.CreatedAt.UTC()}
		if j, ok := pos[r.ID]; ok {
			rows[j] = vals
			continue
		}
		pos[r.ID] = len(rows)
		rows = append(rows, vals)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: bulk save: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	createSQL := fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE assessments INCLUDING DEFAULTS) ON COMMIT DROP",
		pgx.Identifier{bulkTempTable}.Sanitize(),
	)
	if _, err := tx.Exec(ctx, createSQL); err != nil {
		return eris.Wrap(err, "postgres: bulk save: create temp table")
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{bulkTempTable}, assessmentColumns, pgx.CopyFromRows(rows)); err != nil {
		return eris.Wrap(err, "postgres: bulk save: copy")
	}

	tag, err := tx.Exec(ctx, upsertFromTempSQL())
	if err != nil {
		return eris.Wrap(err, "postgres: bulk save: insert on conflict")
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: bulk save: commit tx")
	}

	zap.L().Debug("postgres: assessments saved",
		zap.Int("batch", len(as)),
		zap.Int64("rows_affected", tag.RowsAffected()),
	)
	return nil
}

func upsertFromTempSQL() string {
	colList := quoteAndJoin(assessmentColumns)

	var sets []string
	for _, c := range assessmentColumns {
		// created_at keeps the first save's time, matching SaveAssessment.
		if c == "id" || c == "created_at" {
			continue
		}
		col := pgx.Identifier{c}.Sanitize()
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return fmt.Sprintf(
		"INSERT INTO assessments (%s) SELECT %s FROM %s ON CONFLICT (id) DO UPDATE SET %s",
		colList,
		colList,
		pgx.Identifier{bulkTempTable}.Sanitize(),
		strings.Join(sets, ", "),
	)
}

func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
