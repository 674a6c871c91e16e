package service

import (
	"context"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/importer"
	"github.com/alexanderramin/tally/internal/view"
)

type EstimateService interface {
	Create(ctx context.Context, name string) (*domain.Estimate, error)
	// GetByID accepts a full id or a unique prefix of one.
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	List(ctx context.Context) ([]*domain.Estimate, error)
	Delete(ctx context.Context, id string) error
	// Open loads the estimate's hierarchy into a fresh store.
	Open(ctx context.Context, id string) (GridService, error)
	// Import creates a new estimate holding the feed's hierarchy.
	Import(ctx context.Context, name string, feed *importer.Feed) (*ImportResult, error)
}

// GridService is the mutation entry point for one open estimate. Every
// mutation reads the latest store state, computes the next one, persists it
// and only then replaces the store; a rejected or failed mutation leaves both
// untouched.
type GridService interface {
	Estimate() *domain.Estimate
	Sections() []domain.Section
	Projector() *view.Projector
	Version() uint64

	MoveSection(ctx context.Context, from, to int) error
	MoveItems(ctx context.Context, fromID, toID int64, itemIDs []int64, targetIndex int) error
	CopySection(ctx context.Context, sourceID int64) (domain.Section, error)

	AddSection(ctx context.Context, name, description string, isOptional bool) (domain.Section, error)
	UpdateSection(ctx context.Context, sectionID int64, patch domain.SectionPatch) (domain.Section, error)
	DeleteSection(ctx context.Context, sectionID int64) error

	AddItem(ctx context.Context, sectionID int64, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, sectionID, itemID int64) error
	UpdateItem(ctx context.Context, sectionName string, item domain.Item) error
	PatchItem(ctx context.Context, sectionID, itemID int64, patch domain.ItemPatch) (domain.Item, error)

	// Seed replaces the hierarchy with items grouped by their section ids.
	Seed(ctx context.Context, items []domain.Item) error
	// Load replaces the hierarchy with sections as given.
	Load(ctx context.Context, sections []domain.Section) error

	// Close detaches the projector.
	Close()
}

// ImportResult holds the outcome of an estimate import.
type ImportResult struct {
	Estimate     *domain.Estimate
	SectionCount int
	ItemCount    int
	// Renumbered is set when the feed's ids clashed with stored ones and
	// every section and item got a new id.
	Renumbered bool
}
