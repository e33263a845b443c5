// Package repotest provides an in-memory credential store with the same
// invariants as the gorm implementation, for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ repositories.UserRepository = (*UserStore)(nil)

type UserStore struct {
	mu     sync.Mutex
	hasher repositories.PasswordHasher
	users  map[string]*models.User
}

func NewUserStore(hasher repositories.PasswordHasher) *UserStore {
	return &UserStore{hasher: hasher, users: map[string]*models.User{}}
}

// Get returns a copy of the stored row, secrets included, active or not.
func (s *UserStore) Get(id string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	c := *u
	return &c, true
}

// All returns copies of every stored row.
func (s *UserStore) All() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

func (s *UserStore) Create(ctx context.Context, _ *gorm.DB, user *models.User, password string) error {
	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := models.NormalizeEmail(user.Email)
	for _, u := range s.users {
		if u.Email == email {
			return repositories.ErrUserAlreadyExists
		}
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.Email = email
	user.PasswordHash = digest
	user.PasswordChangedAt = nil
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	user.Active = true
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}
	if user.Photo == "" {
		user.Photo = "default.jpg"
	}

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *UserStore) FindActiveByID(_ context.Context, _ *gorm.DB, id string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.ID == id }, false)
}

func (s *UserStore) FindActiveByEmail(_ context.Context, _ *gorm.DB, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	return s.find(func(u *models.User) bool { return u.Email == email }, false)
}

func (s *UserStore) FindActiveByIDWithSecrets(_ context.Context, _ *gorm.DB, id string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.ID == id }, true)
}

func (s *UserStore) FindActiveByEmailWithSecrets(_ context.Context, _ *gorm.DB, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	return s.find(func(u *models.User) bool { return u.Email == email }, true)
}

func (s *UserStore) ListActive(_ context.Context, _ *gorm.DB, page, limit int) ([]models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.User
	for _, u := range s.users {
		if u.Active {
			all = append(all, public(u))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.User{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *UserStore) SetPassword(ctx context.Context, _ *gorm.DB, userID, password string, now time.Time) error {
	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || !u.Active {
		return repositories.ErrUserNotFound
	}
	applyPassword(u, digest, now)
	return nil
}

func (s *UserStore) SetResetToken(_ context.Context, _ *gorm.DB, userID, tokenHash string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || !u.Active {
		return repositories.ErrUserNotFound
	}
	u.PasswordResetToken = &tokenHash
	u.PasswordResetExpires = &expires
	return nil
}

func (s *UserStore) ClearResetToken(_ context.Context, _ *gorm.DB, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.PasswordResetToken = nil
		u.PasswordResetExpires = nil
	}
	return nil
}

func (s *UserStore) ConsumeResetToken(ctx context.Context, _ *gorm.DB, tokenHash, password string, now time.Time) (*models.User, error) {
	holder, err := s.find(func(u *models.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == tokenHash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now)
	}, false)
	if err != nil {
		return nil, repositories.ErrResetTokenInvalid
	}

	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[holder.ID]
	if !ok || !u.Active || u.PasswordResetToken == nil || *u.PasswordResetToken != tokenHash {
		return nil, repositories.ErrResetTokenInvalid
	}
	applyPassword(u, digest, now)
	out := public(u)
	return &out, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, _ *gorm.DB, userID string, update repositories.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok || !u.Active {
		return nil, repositories.ErrUserNotFound
	}
	if update.Name == nil && update.Email == nil && update.Photo == nil {
		return nil, repositories.ErrNoProfileChanges
	}
	if update.Email != nil {
		email := models.NormalizeEmail(*update.Email)
		for id, other := range s.users {
			if id != userID && other.Email == email {
				return nil, repositories.ErrUserAlreadyExists
			}
		}
		u.Email = email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Photo != nil {
		u.Photo = *update.Photo
	}
	u.UpdatedAt = time.Now()
	out := public(u)
	return &out, nil
}

func (s *UserStore) Deactivate(_ context.Context, _ *gorm.DB, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || !u.Active {
		return repositories.ErrUserNotFound
	}
	u.Active = false
	return nil
}

func (s *UserStore) find(match func(*models.User) bool, withSecrets bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if !u.Active || !match(u) {
			continue
		}
		if withSecrets {
			c := *u
			return &c, nil
		}
		c := public(u)
		return &c, nil
	}
	return nil, repositories.ErrUserNotFound
}

func applyPassword(u *models.User, digest string, now time.Time) {
	u.PasswordHash = digest
	u.PasswordChangedAt = &now
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	u.UpdatedAt = now
}

// public mirrors the gorm Omit of secret columns.
func public(u *models.User) models.User {
	c := *u
	c.PasswordHash = ""
	c.PasswordResetToken = nil
	c.PasswordResetExpires = nil
	return c
}
