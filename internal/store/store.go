// Package store persists scored assessments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rotisserie/eris"

	"github.com/sells-group/property-checklist/internal/config"
	"github.com/sells-group/property-checklist/internal/model"
)

// ErrNotFound is returned when an assessment does not exist.
var ErrNotFound = errors.New("store: assessment not found")

// DefaultListLimit caps ListAssessments when the filter sets no limit.
const DefaultListLimit = 100

// AssessmentFilter specifies criteria for listing assessments.
type AssessmentFilter struct {
	ListingURL string `json:"listing_url,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

func (f AssessmentFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store defines the persistence interface for assessments.
type Store interface {
	SaveAssessment(ctx context.Context, a *model.Assessment) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error)
	SaveAssessments(ctx context.Context, as []model.Assessment) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New opens the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", cfg.Driver)
	}
}

// row holds the encoded columns of one assessment.
type row struct {
	ID         string
	ListingURL string
	Overall    *float64
	Items      []byte
	Scores     []byte
	Insight    []byte
}

func fillDefaults(a *model.Assessment) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
}
