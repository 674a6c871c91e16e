package repository

import (
	"context"

	"github.com/alexanderramin/tally/internal/domain"
)

type EstimateRepo interface {
	Create(ctx context.Context, e *domain.Estimate) error
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	// GetByPrefix resolves a full id or a unique display-id prefix.
	GetByPrefix(ctx context.Context, prefix string) (*domain.Estimate, error)
	List(ctx context.Context) ([]*domain.Estimate, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SectionRepo persists the section hierarchy of an estimate as a whole.
type SectionRepo interface {
	LoadTree(ctx context.Context, estimateID string) ([]domain.Section, error)
	// SaveTree replaces every stored section and item of the estimate.
	// Run it inside a unit of work so a failed save keeps the old tree.
	SaveTree(ctx context.Context, estimateID string, sections []domain.Section) error
	// MaxID returns the largest section or item id across all estimates.
	MaxID(ctx context.Context) (int64, error)
}
