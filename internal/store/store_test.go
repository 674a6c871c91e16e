package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() []domain.Section {
	return []domain.Section{
		{ID: 1, Name: "A", Items: []domain.Item{{ID: 10, SectionID: 1, SectionName: "A"}}},
		{ID: 2, Name: "B"},
	}
}

func TestStore_Sections_ReturnsDeepCopy(t *testing.T) {
	s := New(seed())

	snap := s.Sections()
	snap[0].Name = "mutated"
	snap[0].Items[0].Subject = "mutated"

	fresh := s.Sections()
	assert.Equal(t, "A", fresh[0].Name)
	assert.Empty(t, fresh[0].Items[0].Subject)
}

func TestStore_New_CopiesInput(t *testing.T) {
	in := seed()
	s := New(in)
	in[0].Items[0].ID = 99

	assert.Equal(t, int64(10), s.Sections()[0].Items[0].ID)
}

func TestStore_Replace_BumpsVersionAndNotifies(t *testing.T) {
	s := New(nil)
	var got [][]domain.Section
	s.Subscribe(func(sections []domain.Section) { got = append(got, sections) })

	s.Replace(seed())

	assert.Equal(t, uint64(1), s.Version())
	assert.Equal(t, 2, s.Len())
	require.Len(t, got, 1)
	assert.Len(t, got[0], 2)
}

func TestStore_Apply_ErrorLeavesStateUntouched(t *testing.T) {
	s := New(seed())
	calls := 0
	s.Subscribe(func([]domain.Section) { calls++ })

	_, err := s.Apply(func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.MoveSection(sections, 0, 5)
	})

	require.ErrorIs(t, err, domain.ErrInvalidIndex)
	assert.Equal(t, uint64(0), s.Version())
	assert.Equal(t, 0, calls)
	assert.Equal(t, int64(1), s.Sections()[0].ID)
}

func TestStore_Apply_ReturnsNewState(t *testing.T) {
	s := New(seed())

	out, err := s.Apply(func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.MoveSection(sections, 0, 1)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, int64(2), s.Sections()[0].ID)
	assert.Equal(t, uint64(1), s.Version())
}

func TestStore_Apply_MutationCannotAliasState(t *testing.T) {
	s := New(seed())
	var kept []domain.Section

	_, err := s.Apply(func(sections []domain.Section) ([]domain.Section, error) {
		kept = sections
		return sections, nil
	})
	require.NoError(t, err)

	kept[0].Name = "leak"
	assert.Equal(t, "A", s.Sections()[0].Name)
}

func TestStore_Subscribe_Unsubscribe(t *testing.T) {
	s := New(nil)
	calls := 0
	unsubscribe := s.Subscribe(func([]domain.Section) { calls++ })

	s.Replace(seed())
	unsubscribe()
	unsubscribe()
	s.Replace(nil)

	assert.Equal(t, 1, calls)
}

// Concurrent Apply calls must never lose an update.
func TestStore_Apply_ConcurrentNoLostUpdates(t *testing.T) {
	s := New([]domain.Section{{ID: 1, Name: "A"}})
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := int64(1000 + w*perWorker + i)
				_, err := s.Apply(func(sections []domain.Section) ([]domain.Section, error) {
					return hierarchy.AddItem(sections, 1, domain.Item{ID: id})
				})
				if err != nil {
					t.Errorf("apply: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	final := s.Sections()
	assert.Len(t, final[0].Items, workers*perWorker)
	assert.Equal(t, uint64(workers*perWorker), s.Version())
	require.NoError(t, hierarchy.Validate(final))
}

func TestStore_Notify_InVersionOrder(t *testing.T) {
	s := New([]domain.Section{{ID: 1, Name: "A"}})
	var (
		mu     sync.Mutex
		counts []int
	)
	s.Subscribe(func(sections []domain.Section) {
		mu.Lock()
		counts = append(counts, len(sections[0].Items))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = s.Apply(func(sections []domain.Section) ([]domain.Section, error) {
				return hierarchy.AddItem(sections, 1, domain.Item{ID: id})
			})
		}(int64(100 + i))
	}
	wg.Wait()

	require.Len(t, counts, 20)
	for i, n := range counts {
		assert.Equal(t, i+1, n)
	}
}

func TestStore_Apply_PropagatesSentinel(t *testing.T) {
	s := New(seed())
	_, err := s.Apply(func(sections []domain.Section) ([]domain.Section, error) {
		return hierarchy.DeleteSection(sections, 42)
	})
	assert.True(t, errors.Is(err, domain.ErrSectionNotFound))
}
