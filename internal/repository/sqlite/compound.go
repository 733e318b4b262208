package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/pkg/repository"
)

func (r *SQLiteRepo) CreateCompound(ctx context.Context, c *models.Compound) (string, error) {
	if c == nil {
		return "", fmt.Errorf("compound is nil")
	}

	c.ID = uuid.NewString()
	ts := now()
	_, err := r.conn.Exec(ctx, `INSERT INTO compounds (id, user_id, name, category, notes, is_archived, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Category, nullString(c.Notes), c.IsArchived, ts, ts)
	if err != nil {
		return "", err
	}

	c.Created = ts
	c.Updated = ts
	return c.ID, nil
}

func (r *SQLiteRepo) GetCompound(ctx context.Context, userID, id string) (*models.Compound, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, name, category, notes, is_archived, created, updated FROM compounds WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanCompound(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepo) ListCompounds(ctx context.Context, userID string, f models.CompoundFilter) ([]models.Compound, error) {
	q := `SELECT id, user_id, name, category, notes, is_archived, created, updated FROM compounds WHERE user_id = ?`
	if !f.IncludeArchived {
		q += ` AND is_archived = 0`
	}
	q += ` ORDER BY name ASC`

	rows, err := r.conn.QueryRows(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Compound
	for rows.Next() {
		c, err := scanCompound(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *c)
	}

	return out, rows.Err()
}

// UpdateCompound writes all mutable fields; callers merge partial updates
// into a row read with GetCompound first. The user_id predicate keeps the
// write owner-scoped even if the ownership check raced a delete.
func (r *SQLiteRepo) UpdateCompound(ctx context.Context, c *models.Compound) error {
	if c == nil {
		return fmt.Errorf("compound is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE compounds SET name = ?, category = ?, notes = ?, is_archived = ?, updated = ? WHERE id = ? AND user_id = ?`,
		c.Name, c.Category, nullString(c.Notes), c.IsArchived, ts, c.ID, c.UserID)
	if err == nil {
		c.Updated = ts
	}
	return err
}

// DeleteCompound removes the row. The dose_logs foreign key blocks the
// delete while logs still reference the compound; that failure surfaces
// as ErrCompoundInUse.
func (r *SQLiteRepo) DeleteCompound(ctx context.Context, userID, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM compounds WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return repository.ErrCompoundInUse
	}
	return err
}

func (r *SQLiteRepo) CountCompounds(ctx context.Context, userID string, f models.CompoundFilter) (int64, error) {
	q := `SELECT COUNT(*) FROM compounds WHERE user_id = ?`
	if !f.IncludeArchived {
		q += ` AND is_archived = 0`
	}

	var cnt int64
	if err := r.conn.QueryRow(ctx, q, userID).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompound(row rowScanner) (*models.Compound, error) {
	var c models.Compound
	var notes sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Category, &notes, &c.IsArchived, &c.Created, &c.Updated); err != nil {
		return nil, err
	}

	if notes.Valid {
		c.Notes = notes.String
	}

	return &c, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
