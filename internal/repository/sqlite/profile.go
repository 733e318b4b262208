package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ironledger/ironledger/internal/models"
)

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("profile is nil")
	}

	p.ID = uuid.NewString()
	ts := now()
	_, err := r.conn.Exec(ctx, `INSERT INTO profiles (id, user_id, created, updated) VALUES (?, ?, ?, ?)`, p.ID, p.UserID, ts, ts)
	if err != nil {
		return "", err
	}

	p.Created = ts
	p.Updated = ts
	return p.ID, nil
}

func (r *SQLiteRepo) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, created, updated FROM profiles WHERE user_id = ?`, userID)
	var p models.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Created, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}
