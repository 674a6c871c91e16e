// Package view projects the hierarchy store into what the grid renders: the
// grouped sections, the paged prefix currently displayed, the zero-cost item
// filter and per-section expansion.
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/store"
)

// DefaultPageDelay is the pause before a paging step reveals the next section.
const DefaultPageDelay = 500 * time.Millisecond

// ExpandMode sets the initial expansion of every section.
type ExpandMode string

const (
	ExpandNone ExpandMode = "none"
	ExpandAll  ExpandMode = "all"
)

// ParseExpandMode accepts "all" or "none" (case-insensitive). Empty means none.
func ParseExpandMode(s string) (ExpandMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ExpandNone):
		return ExpandNone, nil
	case string(ExpandAll):
		return ExpandAll, nil
	default:
		return "", fmt.Errorf("invalid expand mode %q (use all or none)", s)
	}
}

// Config controls paging and expansion.
type Config struct {
	PageDelay time.Duration
	Expand    ExpandMode
}

func (c Config) withDefaults() Config {
	if c.PageDelay < 0 {
		c.PageDelay = 0
	}
	if c.Expand == "" {
		c.Expand = ExpandNone
	}
	return c
}

// Projector follows a store and keeps the derived view current.
type Projector struct {
	cfg         Config
	unsubscribe func()
	pages       singleflight.Group

	mu        sync.RWMutex
	grouped   []domain.Section
	displayed int
	toggled   map[int64]bool
}

// NewProjector subscribes to st. Call Close to detach.
func NewProjector(st *store.Store, cfg Config) *Projector {
	p := &Projector{
		cfg:     cfg.withDefaults(),
		toggled: make(map[int64]bool),
	}
	p.unsubscribe = st.Subscribe(p.recompute)
	p.recompute(st.Sections())
	return p
}

// Close detaches the projector from its store.
func (p *Projector) Close() {
	p.unsubscribe()
}

func (p *Projector) recompute(sections []domain.Section) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.grouped = sections
	switch {
	case len(sections) == 0:
		p.displayed = 0
	case p.displayed < 1:
		p.displayed = 1
	case p.displayed > len(sections):
		p.displayed = len(sections)
	}

	live := make(map[int64]bool, len(sections))
	for _, s := range sections {
		live[s.ID] = true
	}
	for id := range p.toggled {
		if !live[id] {
			delete(p.toggled, id)
		}
	}
}

// Grouped returns every section in store order.
func (p *Projector) Grouped() []domain.Section {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return domain.CloneSections(p.grouped)
}

// Displayed returns the prefix of Grouped currently shown.
func (p *Projector) Displayed() []domain.Section {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return domain.CloneSections(p.grouped[:p.displayed])
}

// DisplayedCount is len(Displayed()) without the copy.
func (p *Projector) DisplayedCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.displayed
}

// HasMore reports whether sections remain hidden.
func (p *Projector) HasMore() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.displayed < len(p.grouped)
}

// LoadMore waits the configured page delay then reveals one more section.
// Calls that overlap an in-flight step share its result, so a burst of
// triggers grows the view by exactly one. It reports false when nothing was
// left to show. Cancelling ctx aborts the step.
func (p *Projector) LoadMore(ctx context.Context) (bool, error) {
	if !p.HasMore() {
		return false, nil
	}
	v, err, _ := p.pages.Do("page", func() (any, error) {
		if p.cfg.PageDelay > 0 {
			timer := time.NewTimer(p.cfg.PageDelay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return false, err
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.displayed >= len(p.grouped) {
			return false, nil
		}
		p.displayed++
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// ZeroItems returns the zero-valued items of a section, or
// ErrSectionNotFound.
func (p *Projector) ZeroItems(sectionID int64) ([]domain.Item, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, s := range p.grouped {
		if s.ID == sectionID {
			return FilterZero(s.Items), nil
		}
	}
	return nil, fmt.Errorf("section %d: %w", sectionID, domain.ErrSectionNotFound)
}

// Expanded reports whether a section renders its items.
func (p *Projector) Expanded(sectionID int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.toggled[sectionID]; ok {
		return v
	}
	return p.cfg.Expand == ExpandAll
}

// ToggleExpanded flips a section's expansion and returns the new state.
func (p *Projector) ToggleExpanded(sectionID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, ok := p.toggled[sectionID]
	if !ok {
		cur = p.cfg.Expand == ExpandAll
	}
	p.toggled[sectionID] = !cur
	return !cur
}
