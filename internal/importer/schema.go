package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Feed is the top-level JSON structure of an estimate data feed.
type Feed struct {
	Data FeedData `json:"data"`
}

// FeedData carries the flat item list and, optionally, section metadata.
type FeedData struct {
	EstimateItem    []ItemRecord    `json:"EstimateItem"`
	EstimateSection []SectionRecord `json:"EstimateSection,omitempty"`
}

// ItemRecord is one line item as it appears in the feed.
type ItemRecord struct {
	ItemID       Number `json:"item_id"`
	SectionID    Number `json:"section_id"`
	SectionName  string `json:"section_name"`
	Subject      string `json:"subject"`
	Quantity     Number `json:"quantity"`
	Unit         string `json:"unit"`
	UnitCost     string `json:"unit_cost"`
	Markup       Number `json:"markup"`
	Total        string `json:"total"`
	ItemTypeName string `json:"item_type_name,omitempty"`
	DateAdded    string `json:"date_added,omitempty"`
}

// SectionRecord carries the section fields items alone cannot express.
type SectionRecord struct {
	SectionID   Number `json:"section_id"`
	SectionName string `json:"section_name"`
	Description string `json:"description,omitempty"`
	IsOptional  Number `json:"is_optional_section,omitzero"`
}

// Number decodes from a JSON number, a numeric string or null. Set reports
// whether a non-empty value was present.
type Number struct {
	Value float64
	Set   bool
}

// Num returns a set Number.
func Num(v float64) Number {
	return Number{Value: v, Set: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = Number{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*n = Num(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// IsZero lets omitzero drop unset numbers.
func (n Number) IsZero() bool {
	return !n.Set
}

// Int64 truncates the value to an id.
func (n Number) Int64() int64 {
	return int64(n.Value)
}

// Parse decodes a feed from r.
func Parse(r io.Reader) (*Feed, error) {
	var feed Feed
	dec := json.NewDecoder(r)
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing estimate feed: %w", err)
	}
	return &feed, nil
}

// LoadFile reads and parses an estimate feed JSON file.
func LoadFile(path string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
