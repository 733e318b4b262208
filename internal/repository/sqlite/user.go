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

// CreateUser inserts a new user, assigning its id and role. The user count
// and the insert run in one transaction so concurrent first signups cannot
// both be promoted to ADMIN.
func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("user is nil")
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return "", err
	}

	u.ID = uuid.NewString()
	u.Role = models.RoleAthlete
	if count == 0 {
		u.Role = models.RoleAdmin
	}

	ts := now()
	_, err = tx.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, role, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, ts, ts)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return "", repository.ErrDuplicateEmail
		}
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	u.Created = ts
	u.Updated = ts
	return u.ID, nil
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, role, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, role, created, updated FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *SQLiteRepo) CountUsers(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}
