package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/hierarchy"
	"github.com/alexanderramin/tally/internal/idalloc"
	"github.com/alexanderramin/tally/internal/importer"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/store"
	"github.com/alexanderramin/tally/internal/view"
)

type estimateService struct {
	estimates repository.EstimateRepo
	sections  repository.SectionRepo
	uow       db.UnitOfWork
	viewCfg   view.Config
	observer  UseCaseObserver
	now       func() time.Time
}

func NewEstimateService(
	estimates repository.EstimateRepo,
	sections repository.SectionRepo,
	uow db.UnitOfWork,
	viewCfg view.Config,
	observers ...UseCaseObserver,
) EstimateService {
	return &estimateService{
		estimates: estimates,
		sections:  sections,
		uow:       uow,
		viewCfg:   viewCfg,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *estimateService) Create(ctx context.Context, name string) (est *domain.Estimate, err error) {
	span := startUseCase(s.observer, "create-estimate", "", map[string]any{"name": name})
	defer func() { span.finish(ctx, 0, err) }()

	now := s.now().Truncate(time.Second)
	est = &domain.Estimate{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = est.Validate(); err != nil {
		return nil, err
	}
	span.estimateID = est.ID
	if err = s.estimates.Create(ctx, est); err != nil {
		return nil, err
	}
	return est, nil
}

func (s *estimateService) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	return s.estimates.GetByPrefix(ctx, strings.TrimSpace(id))
}

func (s *estimateService) List(ctx context.Context) ([]*domain.Estimate, error) {
	return s.estimates.List(ctx)
}

func (s *estimateService) Delete(ctx context.Context, id string) (err error) {
	span := startUseCase(s.observer, "delete-estimate", id, nil)
	defer func() { span.finish(ctx, 0, err) }()

	est, err := s.estimates.GetByPrefix(ctx, id)
	if err != nil {
		return err
	}
	span.estimateID = est.ID
	return s.estimates.Delete(ctx, est.ID)
}

func (s *estimateService) Open(ctx context.Context, id string) (GridService, error) {
	est, err := s.estimates.GetByPrefix(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	sections, err := s.sections.LoadTree(ctx, est.ID)
	if err != nil {
		return nil, fmt.Errorf("loading estimate %s: %w", est.DisplayID(), err)
	}
	maxID, err := s.sections.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	st := store.New(sections)
	return &gridService{
		estimate:  est,
		store:     st,
		projector: view.NewProjector(st, s.viewCfg),
		alloc:     idalloc.NewClock(idalloc.WithFloor(maxID)),
		uow:       s.uow,
		observer:  s.observer,
		now:       s.now,
	}, nil
}

func (s *estimateService) Import(ctx context.Context, name string, feed *importer.Feed) (result *ImportResult, err error) {
	span := startUseCase(s.observer, "import-estimate", "", map[string]any{"name": name})
	defer func() { span.finish(ctx, 0, err) }()

	if errs := importer.Validate(feed); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	sections := importer.Convert(feed)

	now := s.now().Truncate(time.Second)
	est := &domain.Estimate{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = est.Validate(); err != nil {
		return nil, err
	}
	span.estimateID = est.ID

	renumbered := false
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sectionRepo := repository.NewSQLiteSectionRepo(tx)
		// Ids are global across estimates; a feed reaching below the current
		// high-water mark (say, imported twice) gets fresh ids.
		maxID, err := sectionRepo.MaxID(ctx)
		if err != nil {
			return err
		}
		if low := hierarchy.MinID(sections); low != 0 && low <= maxID {
			sections = hierarchy.Renumber(sections, idalloc.NewClock(idalloc.WithFloor(maxID)))
			renumbered = true
		}

		if err := repository.NewSQLiteEstimateRepo(tx).Create(ctx, est); err != nil {
			return fmt.Errorf("creating estimate: %w", err)
		}
		if err := sectionRepo.SaveTree(ctx, est.ID, sections); err != nil {
			return fmt.Errorf("saving imported sections: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		Estimate:     est,
		SectionCount: len(sections),
		ItemCount:    domain.CountItems(sections),
		Renumbered:   renumbered,
	}
	span.fields["section_count"] = result.SectionCount
	span.fields["item_count"] = result.ItemCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
