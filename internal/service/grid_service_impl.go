package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/hierarchy"
	"github.com/alexanderramin/tally/internal/idalloc"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/store"
	"github.com/alexanderramin/tally/internal/view"
)

type gridService struct {
	estimate  *domain.Estimate
	store     *store.Store
	projector *view.Projector
	alloc     idalloc.Allocator
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

// NewMemoryGridService opens a grid over sections without persistence.
func NewMemoryGridService(
	est *domain.Estimate,
	sections []domain.Section,
	alloc idalloc.Allocator,
	viewCfg view.Config,
	observers ...UseCaseObserver,
) GridService {
	st := store.New(sections)
	return &gridService{
		estimate:  est,
		store:     st,
		projector: view.NewProjector(st, viewCfg),
		alloc:     alloc,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *gridService) Estimate() *domain.Estimate {
	e := *s.estimate
	return &e
}

func (s *gridService) Sections() []domain.Section { return s.store.Sections() }
func (s *gridService) Projector() *view.Projector { return s.projector }
func (s *gridService) Version() uint64            { return s.store.Version() }
func (s *gridService) Close()                     { s.projector.Close() }

// apply runs op against the latest hierarchy and persists the result before
// the store takes it. The store lock is held throughout, so concurrent
// mutations serialize and the saved tree always matches the store.
func (s *gridService) apply(ctx context.Context, op store.Mutation) error {
	_, err := s.store.Apply(func(current []domain.Section) ([]domain.Section, error) {
		next, err := op(current)
		if err != nil {
			return nil, err
		}
		if err := s.persist(ctx, next); err != nil {
			return nil, err
		}
		return next, nil
	})
	return err
}

func (s *gridService) persist(ctx context.Context, sections []domain.Section) error {
	if s.uow == nil {
		return nil
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSectionRepo(tx).SaveTree(ctx, s.estimate.ID, sections); err != nil {
			return err
		}
		return repository.NewSQLiteEstimateRepo(tx).Touch(ctx, s.estimate.ID)
	})
	if err != nil {
		return fmt.Errorf("saving estimate %s: %w", s.estimate.DisplayID(), err)
	}
	return nil
}

func (s *gridService) start(name string, fields map[string]any) *useCaseSpan {
	return startUseCase(s.observer, name, s.estimate.ID, fields)
}

func (s *gridService) MoveSection(ctx context.Context, from, to int) (err error) {
	span := s.start("move-section", map[string]any{"from": from, "to": to})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	return s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.MoveSection(sections, from, to)
	})
}

func (s *gridService) MoveItems(ctx context.Context, fromID, toID int64, itemIDs []int64, targetIndex int) (err error) {
	span := s.start("move-items", map[string]any{
		"from_section": fromID,
		"to_section":   toID,
		"item_count":   len(itemIDs),
		"target_index": targetIndex,
	})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	return s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.MoveItems(sections, fromID, toID, itemIDs, targetIndex)
	})
}

func (s *gridService) CopySection(ctx context.Context, sourceID int64) (copied domain.Section, err error) {
	span := s.start("copy-section", map[string]any{"source_section": sourceID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	err = s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		next, dup, err := hierarchy.Duplicate(sections, sourceID, s.alloc)
		if err != nil {
			return nil, err
		}
		copied = dup
		return next, nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	span.fields["new_section"] = copied.ID
	return copied, nil
}

func (s *gridService) AddSection(ctx context.Context, name, description string, isOptional bool) (added domain.Section, err error) {
	span := s.start("add-section", map[string]any{"name": name})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Section{}, fmt.Errorf("section name is required (use --name flag)")
	}
	added = domain.Section{
		ID:          s.alloc.Next(),
		Name:        name,
		Description: strings.TrimSpace(description),
		IsOptional:  isOptional,
	}
	err = s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.AddSection(sections, added)
	})
	if err != nil {
		return domain.Section{}, err
	}
	span.fields["section"] = added.ID
	return added, nil
}

func (s *gridService) UpdateSection(ctx context.Context, sectionID int64, patch domain.SectionPatch) (updated domain.Section, err error) {
	span := s.start("update-section", map[string]any{"section": sectionID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Section{}, fmt.Errorf("section name cannot be empty")
	}
	err = s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		next, err := hierarchy.UpdateSection(sections, sectionID, patch)
		if err != nil {
			return nil, err
		}
		updated = next[hierarchy.IndexOf(next, sectionID)]
		return next, nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	return updated, nil
}

func (s *gridService) DeleteSection(ctx context.Context, sectionID int64) (err error) {
	span := s.start("delete-section", map[string]any{"section": sectionID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	return s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.DeleteSection(sections, sectionID)
	})
}

func (s *gridService) AddItem(ctx context.Context, sectionID int64, item domain.Item) (added domain.Item, err error) {
	span := s.start("add-item", map[string]any{"section": sectionID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	if strings.TrimSpace(item.Subject) == "" {
		return domain.Item{}, fmt.Errorf("item subject is required (use --subject flag)")
	}
	if item.ID == 0 {
		item.ID = s.alloc.Next()
	}
	if item.Total == "" {
		item.Total = domain.ComputeTotal(item.UnitCost, item.Quantity, item.Markup)
	}
	if item.DateAdded.IsZero() {
		item.DateAdded = s.now().Truncate(time.Second)
	}

	err = s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		next, err := hierarchy.AddItem(sections, sectionID, item)
		if err != nil {
			return nil, err
		}
		si := hierarchy.IndexOf(next, sectionID)
		added = next[si].Items[len(next[si].Items)-1]
		return next, nil
	})
	if err != nil {
		return domain.Item{}, err
	}
	span.fields["item"] = added.ID
	return added, nil
}

func (s *gridService) DeleteItem(ctx context.Context, sectionID, itemID int64) (err error) {
	span := s.start("delete-item", map[string]any{"section": sectionID, "item": itemID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	return s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.DeleteItem(sections, sectionID, itemID)
	})
}

func (s *gridService) UpdateItem(ctx context.Context, sectionName string, item domain.Item) (err error) {
	span := s.start("update-item", map[string]any{"section_name": sectionName, "item": item.ID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	return s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.UpdateItem(sections, sectionName, item)
	})
}

func (s *gridService) PatchItem(ctx context.Context, sectionID, itemID int64, patch domain.ItemPatch) (patched domain.Item, err error) {
	span := s.start("patch-item", map[string]any{"section": sectionID, "item": itemID})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	err = s.apply(ctx, func(sections []domain.Section) ([]domain.Section, error) {
		next, err := hierarchy.PatchItem(sections, sectionID, itemID, patch)
		if err != nil {
			return nil, err
		}
		si, ii := hierarchy.FindItem(next, itemID)
		patched = next[si].Items[ii]
		return next, nil
	})
	if err != nil {
		return domain.Item{}, err
	}
	return patched, nil
}

func (s *gridService) Seed(ctx context.Context, items []domain.Item) (err error) {
	span := s.start("seed", map[string]any{"item_count": len(items)})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	grouped := hierarchy.GroupItems(items)
	if err = hierarchy.Validate(grouped); err != nil {
		return err
	}
	return s.apply(ctx, func([]domain.Section) ([]domain.Section, error) {
		return grouped, nil
	})
}

func (s *gridService) Load(ctx context.Context, sections []domain.Section) (err error) {
	span := s.start("load", map[string]any{"section_count": len(sections)})
	defer func() { span.finish(ctx, s.store.Version(), err) }()

	if err = hierarchy.Validate(sections); err != nil {
		return err
	}
	loaded := domain.CloneSections(sections)
	return s.apply(ctx, func([]domain.Section) ([]domain.Section, error) {
		return loaded, nil
	})
}
