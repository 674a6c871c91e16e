package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	est := testutil.NewTestEstimate("Kitchen remodel")
	require.NoError(t, repo.Create(ctx, est))

	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, est.ID, fetched.ID)
	assert.Equal(t, "Kitchen remodel", fetched.Name)
	assert.True(t, est.CreatedAt.Equal(fetched.CreatedAt))
}

func TestEstimateRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstimateRepo_GetByPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	a := testutil.NewTestEstimate("A", testutil.WithEstimateID("abc12345-0000"))
	b := testutil.NewTestEstimate("B", testutil.WithEstimateID("abc99999-0000"))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByPrefix(ctx, "abc1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = repo.GetByPrefix(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = repo.GetByPrefix(ctx, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = repo.GetByPrefix(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByPrefix(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstimateRepo_List_OrderedByCreation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate("Second", testutil.WithCreatedAt(base.Add(time.Hour)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate("First", testutil.WithCreatedAt(base))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Name)
	assert.Equal(t, "Second", list[1].Name)
}

func TestEstimateRepo_Touch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	est := testutil.NewTestEstimate("Deck", testutil.WithCreatedAt(old))
	require.NoError(t, repo.Create(ctx, est))

	require.NoError(t, repo.Touch(ctx, est.ID))
	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.True(t, fetched.UpdatedAt.After(old))
	assert.True(t, fetched.CreatedAt.Equal(old))

	assert.ErrorIs(t, repo.Touch(ctx, "missing"), ErrNotFound)
}

func TestEstimateRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	est := testutil.NewTestEstimate("Garage")
	require.NoError(t, repo.Create(ctx, est))
	require.NoError(t, repo.Delete(ctx, est.ID))

	_, err := repo.GetByID(ctx, est.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, est.ID), ErrNotFound)
}

func TestEstimateRepo_Delete_CascadesToTree(t *testing.T) {
	db := testutil.NewTestDB(t)
	estimates := NewSQLiteEstimateRepo(db)
	sections := NewSQLiteSectionRepo(db)
	ctx := context.Background()

	est := testutil.NewTestEstimate("Garage")
	require.NoError(t, estimates.Create(ctx, est))
	tree := []domain.Section{
		testutil.NewTestSection("Foundation", testutil.WithItems(testutil.NewTestItem("Concrete"))),
	}
	require.NoError(t, sections.SaveTree(ctx, est.ID, tree))

	require.NoError(t, estimates.Delete(ctx, est.ID))

	var n int
	require.NoError(t, db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM sections) + (SELECT COUNT(*) FROM items)`).Scan(&n))
	assert.Zero(t, n)
}
