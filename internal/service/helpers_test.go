package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/alexanderramin/tally/internal/view"
)

// recordingObserver collects events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	db        *sql.DB
	estimates EstimateService
	observer  *recordingObserver
}

func setupEstimateService(t *testing.T) fixture {
	t.Helper()
	return setupEstimateServiceWithUoW(t, nil)
}

// setupEstimateServiceWithUoW wires the service; a nil uow means the real one.
func setupEstimateServiceWithUoW(t *testing.T, uow func(*sql.DB) db.UnitOfWork) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	var u db.UnitOfWork = testutil.NewTestUoW(database)
	if uow != nil {
		u = uow(database)
	}
	obs := &recordingObserver{}
	svc := NewEstimateService(
		repository.NewSQLiteEstimateRepo(database),
		repository.NewSQLiteSectionRepo(database),
		u,
		view.Config{},
		obs,
	)
	return fixture{db: database, estimates: svc, observer: obs}
}

// seedTree stores an estimate holding tree and returns it.
func seedTree(t *testing.T, database *sql.DB, name string, tree []domain.Section) *domain.Estimate {
	t.Helper()
	ctx := context.Background()
	est := testutil.NewTestEstimate(name)
	require.NoError(t, repository.NewSQLiteEstimateRepo(database).Create(ctx, est))
	require.NoError(t, repository.NewSQLiteSectionRepo(database).SaveTree(ctx, est.ID, tree))
	return est
}

func openGrid(t *testing.T, f fixture, id string) GridService {
	t.Helper()
	grid, err := f.estimates.Open(context.Background(), id)
	require.NoError(t, err)
	t.Cleanup(grid.Close)
	return grid
}

func storedTree(t *testing.T, database *sql.DB, estimateID string) []domain.Section {
	t.Helper()
	tree, err := repository.NewSQLiteSectionRepo(database).LoadTree(context.Background(), estimateID)
	require.NoError(t, err)
	return tree
}

func sectionIDs(sections []domain.Section) []int64 {
	ids := make([]int64, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func itemIDs(s domain.Section) []int64 {
	ids := make([]int64, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// threeSections builds Foundation=[i1,i2], Framing=[i3], Roof=[] with fixed ids.
func threeSections() []domain.Section {
	return []domain.Section{
		testutil.NewTestSection("Foundation", testutil.WithSectionID(1),
			testutil.WithItems(
				testutil.NewTestItem("Concrete", testutil.WithItemID(11)),
				testutil.NewTestItem("Rebar", testutil.WithItemID(12), testutil.WithZeroCost()),
			)),
		testutil.NewTestSection("Framing", testutil.WithSectionID(2),
			testutil.WithItems(testutil.NewTestItem("Studs", testutil.WithItemID(21)))),
		testutil.NewTestSection("Roof", testutil.WithSectionID(3)),
	}
}
