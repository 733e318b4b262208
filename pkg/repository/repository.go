package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ironledger/ironledger/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when no row matches. Every compound and dose
// operation is scoped by the owning user id: a row owned by someone else
// is indistinguishable from an absent row.

// ErrDuplicateEmail is returned by CreateUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrCompoundInUse is returned by DeleteCompound when dose logs still
// reference the compound.
var ErrCompoundInUse = errors.New("compound has dose logs")

type UserRepo interface {
	// CreateUser assigns the id and role (ADMIN for the first user,
	// counted and inserted in one transaction) before persisting.
	CreateUser(ctx context.Context, u *models.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (string, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

type CompoundRepo interface {
	CreateCompound(ctx context.Context, c *models.Compound) (string, error)
	GetCompound(ctx context.Context, userID, id string) (*models.Compound, error)
	ListCompounds(ctx context.Context, userID string, f models.CompoundFilter) ([]models.Compound, error)
	UpdateCompound(ctx context.Context, c *models.Compound) error
	DeleteCompound(ctx context.Context, userID, id string) error
	CountCompounds(ctx context.Context, userID string, f models.CompoundFilter) (int64, error)
}

type DoseRepo interface {
	CreateDose(ctx context.Context, d *models.DoseLog) (string, error)
	GetDose(ctx context.Context, userID, id string) (*models.DoseLog, error)
	ListDoses(ctx context.Context, userID string, f models.DoseFilter) ([]models.DoseLog, error)
	CountDoses(ctx context.Context, userID string, f models.DoseFilter) (int64, error)
	UpdateDose(ctx context.Context, d *models.DoseLog) error
	DeleteDose(ctx context.Context, userID, id string) error
	CountDosesSince(ctx context.Context, userID string, since time.Time) (int64, error)
	CountDistinctCompoundsDosed(ctx context.Context, userID string) (int64, error)
}
