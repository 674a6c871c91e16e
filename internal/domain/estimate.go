package domain

import (
	"fmt"
	"strings"
	"time"
)

// Estimate is a named, persisted hierarchy of sections.
type Estimate struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a caller must supply.
func (e *Estimate) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("estimate name is required (use --name flag)")
	}
	return nil
}

// DisplayID returns the first 8 characters of the estimate ID.
func (e *Estimate) DisplayID() string {
	if len(e.ID) >= 8 {
		return e.ID[:8]
	}
	return e.ID
}
