package mock

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo     *UserRepo
	ProfileRepo  *ProfileRepo
	CompoundRepo *CompoundRepo
	DoseRepo     *DoseRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:     &UserRepo{},
		ProfileRepo:  &ProfileRepo{},
		CompoundRepo: &CompoundRepo{},
		DoseRepo:     &DoseRepo{},
	}
}

type UserRepo struct {
	Stored    []*models.User
	CreateErr error
	GetErr    error
	nextID    int
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	for _, s := range m.Stored {
		if s.Email == u.Email {
			return "", repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	u.ID = "user-" + strconv.Itoa(m.nextID)
	u.Role = models.RoleAthlete
	if len(m.Stored) == 0 {
		u.Role = models.RoleAdmin
	}
	cp := *u
	m.Stored = append(m.Stored, &cp)
	return u.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.Stored {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.Stored {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(m.Stored)), nil
}

type ProfileRepo struct {
	Stored    []*models.Profile
	CreateErr error
	nextID    int
}

var _ repository.ProfileRepo = (*ProfileRepo)(nil)

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.nextID++
	p.ID = "profile-" + strconv.Itoa(m.nextID)
	cp := *p
	m.Stored = append(m.Stored, &cp)
	return p.ID, nil
}

func (m *ProfileRepo) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	for _, s := range m.Stored {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

type CompoundRepo struct {
	Stored    []*models.Compound
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
	nextID    int
}

var _ repository.CompoundRepo = (*CompoundRepo)(nil)

func (m *CompoundRepo) CreateCompound(ctx context.Context, c *models.Compound) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.nextID++
	c.ID = "compound-" + strconv.Itoa(m.nextID)
	c.Created = time.Now().UnixMilli()
	c.Updated = c.Created
	cp := *c
	m.Stored = append(m.Stored, &cp)
	return c.ID, nil
}

func (m *CompoundRepo) GetCompound(ctx context.Context, userID, id string) (*models.Compound, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.Stored {
		if s.ID == id && s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *CompoundRepo) ListCompounds(ctx context.Context, userID string, f models.CompoundFilter) ([]models.Compound, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Compound
	for _, s := range m.Stored {
		if s.UserID != userID {
			continue
		}
		if s.IsArchived && !f.IncludeArchived {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *CompoundRepo) UpdateCompound(ctx context.Context, c *models.Compound) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, s := range m.Stored {
		if s.ID == c.ID && s.UserID == c.UserID {
			cp := *c
			m.Stored[i] = &cp
			return nil
		}
	}
	return nil
}

func (m *CompoundRepo) DeleteCompound(ctx context.Context, userID, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, s := range m.Stored {
		if s.ID == id && s.UserID == userID {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *CompoundRepo) CountCompounds(ctx context.Context, userID string, f models.CompoundFilter) (int64, error) {
	list, err := m.ListCompounds(ctx, userID, f)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

type DoseRepo struct {
	Stored    []*models.DoseLog
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
	nextID    int
}

var _ repository.DoseRepo = (*DoseRepo)(nil)

func (m *DoseRepo) CreateDose(ctx context.Context, d *models.DoseLog) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.nextID++
	d.ID = "dose-" + strconv.Itoa(m.nextID)
	d.Created = time.Now().UnixMilli()
	d.Updated = d.Created
	cp := *d
	m.Stored = append(m.Stored, &cp)
	return d.ID, nil
}

func (m *DoseRepo) GetDose(ctx context.Context, userID, id string) (*models.DoseLog, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, s := range m.Stored {
		if s.ID == id && s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *DoseRepo) matches(userID string, f models.DoseFilter) []*models.DoseLog {
	var out []*models.DoseLog
	for _, s := range m.Stored {
		if s.UserID != userID {
			continue
		}
		if f.CompoundID != "" && s.CompoundID != f.CompoundID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return out
}

func (m *DoseRepo) ListDoses(ctx context.Context, userID string, f models.DoseFilter) ([]models.DoseLog, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	rows := m.matches(userID, f)
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]models.DoseLog, 0, len(rows))
	for _, d := range rows {
		out = append(out, *d)
	}
	return out, nil
}

func (m *DoseRepo) CountDoses(ctx context.Context, userID string, f models.DoseFilter) (int64, error) {
	return int64(len(m.matches(userID, f))), nil
}

func (m *DoseRepo) UpdateDose(ctx context.Context, d *models.DoseLog) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, s := range m.Stored {
		if s.ID == d.ID && s.UserID == d.UserID {
			cp := *d
			m.Stored[i] = &cp
			return nil
		}
	}
	return nil
}

func (m *DoseRepo) DeleteDose(ctx context.Context, userID, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, s := range m.Stored {
		if s.ID == id && s.UserID == userID {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *DoseRepo) CountDosesSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var cnt int64
	for _, s := range m.Stored {
		if s.UserID == userID && !s.DateTime.Before(since) {
			cnt++
		}
	}
	return cnt, nil
}

func (m *DoseRepo) CountDistinctCompoundsDosed(ctx context.Context, userID string) (int64, error) {
	seen := map[string]bool{}
	for _, s := range m.Stored {
		if s.UserID == userID {
			seen[s.CompoundID] = true
		}
	}
	return int64(len(seen)), nil
}
