package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `i.id, i.section_id, i.section_name, i.subject, i.quantity, i.unit,
		i.unit_cost, i.total, i.markup, i.item_type_name, i.date_added`

// SQLiteSectionRepo implements SectionRepo using a SQLite database.
type SQLiteSectionRepo struct {
	db db.DBTX
}

// NewSQLiteSectionRepo creates a new SQLiteSectionRepo.
func NewSQLiteSectionRepo(conn db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: conn}
}

func (r *SQLiteSectionRepo) LoadTree(ctx context.Context, estimateID string) ([]domain.Section, error) {
	sections, err := r.listSections(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return sections, nil
	}

	pos := make(map[int64]int, len(sections))
	for i, s := range sections {
		pos[s.ID] = i
	}

	query := `SELECT ` + itemColumns + ` FROM items i
		JOIN sections s ON s.id = i.section_id
		WHERE s.estimate_id = ?
		ORDER BY s.order_index, i.order_index`
	rows, err := r.db.QueryContext(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("listing items for estimate %s: %w", estimateID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.Item
		var dateAdded sql.NullString
		if err := rows.Scan(
			&it.ID, &it.SectionID, &it.SectionName, &it.Subject, &it.Quantity, &it.Unit,
			&it.UnitCost, &it.Total, &it.Markup, &it.ItemTypeName, &dateAdded,
		); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		it.DateAdded = scanTime(dateAdded)
		i := pos[it.SectionID]
		sections[i].Items = append(sections[i].Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return sections, nil
}

func (r *SQLiteSectionRepo) listSections(ctx context.Context, estimateID string) ([]domain.Section, error) {
	query := `SELECT id, name, description, is_optional FROM sections
		WHERE estimate_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("listing sections for estimate %s: %w", estimateID, err)
	}
	defer rows.Close()

	sections := make([]domain.Section, 0)
	for rows.Next() {
		var s domain.Section
		var optional int
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &optional); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		s.IsOptional = optional != 0
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

func (r *SQLiteSectionRepo) SaveTree(ctx context.Context, estimateID string, sections []domain.Section) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE estimate_id = ?`, estimateID); err != nil {
		return fmt.Errorf("clearing sections of estimate %s: %w", estimateID, err)
	}

	sectionQuery := `INSERT INTO sections (id, estimate_id, name, description, is_optional, order_index)
		VALUES (?, ?, ?, ?, ?, ?)`
	itemQuery := `INSERT INTO items (id, section_id, order_index, subject, quantity, unit,
		unit_cost, total, markup, item_type_name, section_name, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for si, s := range sections {
		if _, err := r.db.ExecContext(ctx, sectionQuery,
			s.ID, estimateID, s.Name, s.Description, sqlBool(s.IsOptional), si,
		); err != nil {
			return fmt.Errorf("inserting section %d: %w", s.ID, err)
		}
		for ii, it := range s.Items {
			if _, err := r.db.ExecContext(ctx, itemQuery,
				it.ID, s.ID, ii, it.Subject, it.Quantity, it.Unit,
				it.UnitCost, it.Total, it.Markup, it.ItemTypeName, it.SectionName,
				timeOrNull(it.DateAdded),
			); err != nil {
				return fmt.Errorf("inserting item %d: %w", it.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteSectionRepo) MaxID(ctx context.Context) (int64, error) {
	query := `SELECT MAX(
		(SELECT COALESCE(MAX(id), 0) FROM sections),
		(SELECT COALESCE(MAX(id), 0) FROM items))`
	var maxID int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("reading max hierarchy id: %w", err)
	}
	return maxID, nil
}
