package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/property-checklist/internal/config"
	"github.com/sells-group/property-checklist/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	want := sampleAssessment("a-1", "https://example.com/listing/1", created)
	require.NoError(t, st.SaveAssessment(ctx, want))

	got, err := st.GetAssessment(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.ListingURL, got.ListingURL)
	assert.Equal(t, want.Items, got.Items)
	assert.Equal(t, want.Scores, got.Scores)
	assert.Equal(t, want.Insight, got.Insight)
	require.NotNil(t, got.Overall)
	assert.InDelta(t, 65, *got.Overall, 0.001)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestSQLite_FormattedValueSurvives(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveAssessment(ctx, sampleAssessment("a-1", "u", time.Now().UTC())))
	got, err := st.GetAssessment(ctx, "a-1")
	require.NoError(t, err)

	price, ok := got.Items.Get(model.KeyPrice)
	require.True(t, ok)
	f, ok := price.Value.Float()
	require.True(t, ok)
	assert.InDelta(t, 320000, f, 0.001)
	assert.Equal(t, "£320,000", price.Value.String())

	rent, ok := got.Items.Get(model.KeyGroundRent)
	require.True(t, ok)
	s, ok := rent.Value.Sentinel()
	require.True(t, ok)
	assert.Equal(t, model.NotApplicable, s)
}

func TestSQLite_NilOverallAndInsight(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := sampleAssessment("a-1", "u", time.Now().UTC())
	a.Overall = nil
	a.Insight = nil
	require.NoError(t, st.SaveAssessment(ctx, a))

	got, err := st.GetAssessment(ctx, "a-1")
	require.NoError(t, err)
	assert.Nil(t, got.Overall)
	assert.Nil(t, got.Insight)
}

func TestSQLite_SaveFillsIDAndTime(t *testing.T) {
	st := newTestSQLiteStore(t)
	a := sampleAssessment("", "u", time.Time{})

	require.NoError(t, st.SaveAssessment(context.Background(), a))
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestSQLite_SaveReplaces(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := sampleAssessment("a-1", "u", time.Now().UTC())
	require.NoError(t, st.SaveAssessment(ctx, a))
	a.Overall = ptr(80)
	require.NoError(t, st.SaveAssessment(ctx, a))

	got, err := st.GetAssessment(ctx, "a-1")
	require.NoError(t, err)
	assert.InDelta(t, 80, *got.Overall, 0.001)

	all, err := st.ListAssessments(ctx, AssessmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_SaveAssessments(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	batch := []model.Assessment{
		*sampleAssessment("", "https://x/1", base),
		*sampleAssessment("b-2", "https://x/2", base.Add(time.Minute)),
	}
	require.NoError(t, st.SaveAssessments(ctx, batch))
	assert.NotEmpty(t, batch[0].ID)

	all, err := st.ListAssessments(ctx, AssessmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b-2", all[0].ID)
	assert.Equal(t, batch[0].ID, all[1].ID)

	require.NoError(t, st.SaveAssessments(ctx, nil))
}

func TestSQLite_SaveAssessments_Canceled(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := st.SaveAssessments(ctx, []model.Assessment{*sampleAssessment("c-1", "u", time.Now())})
	require.Error(t, err)

	all, err := st.ListAssessments(context.Background(), AssessmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLite_GetNotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetAssessment(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_List(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveAssessment(ctx, sampleAssessment("a-1", "https://x/1", base)))
	require.NoError(t, st.SaveAssessment(ctx, sampleAssessment("a-2", "https://x/2", base.Add(time.Hour))))
	require.NoError(t, st.SaveAssessment(ctx, sampleAssessment("a-3", "https://x/1", base.Add(2*time.Hour))))

	tests := []struct {
		name   string
		filter AssessmentFilter
		want   []string
	}{
		{"all newest first", AssessmentFilter{}, []string{"a-3", "a-2", "a-1"}},
		{"by listing", AssessmentFilter{ListingURL: "https://x/1"}, []string{"a-3", "a-1"}},
		{"limit", AssessmentFilter{Limit: 1}, []string{"a-3"}},
		{"offset", AssessmentFilter{Limit: 2, Offset: 1}, []string{"a-2", "a-1"}},
		{"no match", AssessmentFilter{ListingURL: "https://x/9"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.ListAssessments(ctx, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	assert.NoError(t, st.Migrate(context.Background()))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	st, err := New(ctx, config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "n.db")})
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	assert.IsType(t, &SQLiteStore{}, st)

	_, err = New(ctx, config.StoreConfig{Driver: "mysql", DatabaseURL: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}
