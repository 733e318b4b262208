package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ironledger/ironledger/internal/models"
)

const doseColumns = `d.id, d.user_id, d.compound_id, d.date_time, d.dose_mg, d.route, d.site, d.mood, d.energy, d.libido, d.notes, d.created, d.updated,
	c.id, c.user_id, c.name, c.category, c.notes, c.is_archived, c.created, c.updated`

func (r *SQLiteRepo) CreateDose(ctx context.Context, d *models.DoseLog) (string, error) {
	if d == nil {
		return "", fmt.Errorf("dose is nil")
	}

	d.ID = uuid.NewString()
	ts := now()
	_, err := r.conn.Exec(ctx, `INSERT INTO dose_logs (id, user_id, compound_id, date_time, dose_mg, route, site, mood, energy, libido, notes, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.CompoundID, d.DateTime.UTC().UnixMilli(), d.DoseMg, d.Route,
		nullString(d.Site), nullInt(d.Mood), nullInt(d.Energy), nullInt(d.Libido), nullString(d.Notes), ts, ts)
	if err != nil {
		return "", err
	}

	d.Created = ts
	d.Updated = ts
	return d.ID, nil
}

// GetDose returns the dose with its compound joined in, or (nil, nil) when
// no row owned by userID matches.
func (r *SQLiteRepo) GetDose(ctx context.Context, userID, id string) (*models.DoseLog, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+doseColumns+` FROM dose_logs d JOIN compounds c ON c.id = d.compound_id WHERE d.id = ? AND d.user_id = ?`, id, userID)
	d, err := scanDose(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return d, nil
}

func (r *SQLiteRepo) ListDoses(ctx context.Context, userID string, f models.DoseFilter) ([]models.DoseLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + doseColumns + ` FROM dose_logs d JOIN compounds c ON c.id = d.compound_id WHERE d.user_id = ?`
	args := []any{userID}
	if f.CompoundID != "" {
		q += ` AND d.compound_id = ?`
		args = append(args, f.CompoundID)
	}
	q += ` ORDER BY d.date_time DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DoseLog
	for rows.Next() {
		d, err := scanDose(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, rows.Err()
}

// CountDoses returns the total matching the filter, ignoring pagination.
func (r *SQLiteRepo) CountDoses(ctx context.Context, userID string, f models.DoseFilter) (int64, error) {
	q := `SELECT COUNT(*) FROM dose_logs WHERE user_id = ?`
	args := []any{userID}
	if f.CompoundID != "" {
		q += ` AND compound_id = ?`
		args = append(args, f.CompoundID)
	}

	var cnt int64
	if err := r.conn.QueryRow(ctx, q, args...).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) UpdateDose(ctx context.Context, d *models.DoseLog) error {
	if d == nil {
		return fmt.Errorf("dose is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE dose_logs SET compound_id = ?, date_time = ?, dose_mg = ?, route = ?, site = ?, mood = ?, energy = ?, libido = ?, notes = ?, updated = ? WHERE id = ? AND user_id = ?`,
		d.CompoundID, d.DateTime.UTC().UnixMilli(), d.DoseMg, d.Route,
		nullString(d.Site), nullInt(d.Mood), nullInt(d.Energy), nullInt(d.Libido), nullString(d.Notes), ts, d.ID, d.UserID)
	if err == nil {
		d.Updated = ts
	}
	return err
}

func (r *SQLiteRepo) DeleteDose(ctx context.Context, userID, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM dose_logs WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func (r *SQLiteRepo) CountDosesSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var cnt int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM dose_logs WHERE user_id = ? AND date_time >= ?`, userID, since.UTC().UnixMilli()).Scan(&cnt)
	if err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) CountDistinctCompoundsDosed(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(DISTINCT compound_id) FROM dose_logs WHERE user_id = ?`, userID).Scan(&cnt)
	if err != nil {
		return 0, err
	}
	return cnt, nil
}

func scanDose(row rowScanner) (*models.DoseLog, error) {
	var d models.DoseLog
	var c models.Compound
	var ms int64
	var site, dnotes, cnotes sql.NullString
	var mood, energy, libido sql.NullInt64
	if err := row.Scan(&d.ID, &d.UserID, &d.CompoundID, &ms, &d.DoseMg, &d.Route, &site, &mood, &energy, &libido, &dnotes, &d.Created, &d.Updated,
		&c.ID, &c.UserID, &c.Name, &c.Category, &cnotes, &c.IsArchived, &c.Created, &c.Updated); err != nil {
		return nil, err
	}

	d.DateTime = time.UnixMilli(ms).UTC()
	if site.Valid {
		d.Site = site.String
	}
	if dnotes.Valid {
		d.Notes = dnotes.String
	}
	if cnotes.Valid {
		c.Notes = cnotes.String
	}
	d.Mood = intPtr(mood)
	d.Energy = intPtr(energy)
	d.Libido = intPtr(libido)
	d.Compound = &c

	return &d, nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
