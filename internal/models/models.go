package models

import "time"

// Domain models matching the database schema in db/migrations/0001_init.sql

// User roles. The first registered user becomes ADMIN, everyone after
// that is ATHLETE.
const (
	RoleAdmin   = "ADMIN"
	RoleAthlete = "ATHLETE"
)

// Compound categories.
const (
	CategoryTRT       = "TRT"
	CategoryAnabolic  = "ANABOLIC"
	CategoryAncillary = "ANCILLARY"
	CategoryOther     = "OTHER"
)

// Administration routes.
const (
	RouteIM          = "IM"
	RouteSubq        = "SUBQ"
	RouteOral        = "ORAL"
	RouteTransdermal = "TRANSDERMAL"
	RouteOther       = "OTHER"
)

type User struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Profile struct {
	ID      string `json:"id" db:"id"`
	UserID  string `json:"userId" db:"user_id"`
	Created int64  `json:"created" db:"created"`
	Updated int64  `json:"updated" db:"updated"`
}

type Compound struct {
	ID         string `json:"id" db:"id"`
	UserID     string `json:"userId" db:"user_id"`
	Name       string `json:"name" db:"name"`
	Category   string `json:"category" db:"category"`
	Notes      string `json:"notes,omitempty" db:"notes"`
	IsArchived bool   `json:"isArchived" db:"is_archived"`
	Created    int64  `json:"created" db:"created"`
	Updated    int64  `json:"updated" db:"updated"`
}

// DoseLog records a single administration event. Reads denormalize the
// referenced compound because the UI always renders its name and category
// next to the dose.
type DoseLog struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	CompoundID string    `json:"compoundId" db:"compound_id"`
	DateTime   time.Time `json:"dateTime" db:"date_time"`
	DoseMg     float64   `json:"doseMg" db:"dose_mg"`
	Route      string    `json:"route" db:"route"`
	Site       string    `json:"site,omitempty" db:"site"`
	Mood       *int      `json:"mood,omitempty" db:"mood"`
	Energy     *int      `json:"energy,omitempty" db:"energy"`
	Libido     *int      `json:"libido,omitempty" db:"libido"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	Compound   *Compound `json:"compound,omitempty"`
	Created    int64     `json:"created" db:"created"`
	Updated    int64     `json:"updated" db:"updated"`
}

// CompoundFilter narrows compound listings. Archived rows are hidden
// unless explicitly requested.
type CompoundFilter struct {
	IncludeArchived bool
}

// DoseFilter narrows dose listings; CompoundID empty means all compounds.
// Limit/Offset paginate, the total count ignores them.
type DoseFilter struct {
	CompoundID string
	Limit      int
	Offset     int
}
