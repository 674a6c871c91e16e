package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

const estimateColumns = `id, name, created_at, updated_at`

// SQLiteEstimateRepo implements EstimateRepo using a SQLite database.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(conn db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: conn}
}

func (r *SQLiteEstimateRepo) Create(ctx context.Context, e *domain.Estimate) error {
	query := `INSERT INTO estimates (` + estimateColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = ?`
	return r.scanEstimate(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEstimateRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Estimate, error) {
	if prefix == "" {
		return nil, fmt.Errorf("estimate: %w", ErrNotFound)
	}
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = ? OR id LIKE ? || '%' ORDER BY id LIMIT 2`
	rows, err := r.db.QueryContext(ctx, query, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("resolving estimate %q: %w", prefix, err)
	}
	defer rows.Close()

	estimates, err := r.scanEstimates(rows)
	if err != nil {
		return nil, err
	}
	if len(estimates) == 0 {
		return nil, fmt.Errorf("estimate %q: %w", prefix, ErrNotFound)
	}
	// An exact id sorts ahead of every longer id sharing it as a prefix.
	if estimates[0].ID == prefix || len(estimates) == 1 {
		return estimates[0], nil
	}
	return nil, fmt.Errorf("estimate id prefix %q is ambiguous", prefix)
}

func (r *SQLiteEstimateRepo) List(ctx context.Context) ([]*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()
	return r.scanEstimates(rows)
}

// Touch bumps updated_at.
func (r *SQLiteEstimateRepo) Touch(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE estimates SET updated_at = ? WHERE id = ?`, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("touching estimate: %w", err)
	}
	return requireAffected(res, "estimate")
}

func (r *SQLiteEstimateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting estimate: %w", err)
	}
	return requireAffected(res, "estimate")
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEstimateRepo) scanEstimate(row rowScanner) (*domain.Estimate, error) {
	var e domain.Estimate
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&e.ID, &e.Name, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("estimate: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(timeLayout, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(timeLayout, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &e, nil
}

func (r *SQLiteEstimateRepo) scanEstimates(rows *sql.Rows) ([]*domain.Estimate, error) {
	var estimates []*domain.Estimate
	for rows.Next() {
		e, err := r.scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimates: %w", err)
	}
	return estimates, nil
}
