package repositories

import (
	"context"
	"errors"
	"time"

	"tourhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")
	ErrNoProfileChanges  = errors.New("no profile fields to update")
)

// secretColumns are left out of every read unless a WithSecrets variant is used.
var secretColumns = []string{"password_hash", "password_reset_token", "password_reset_expires"}

// PasswordHasher is the only way a plaintext password reaches the store.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
}

// UserRepository is the credential store. Password writes go through Create,
// SetPassword or ConsumeResetToken, each of which hashes first; authentication
// reads go through the FindActive* methods, which only see active identities.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *models.User, password string) error

	FindActiveByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error)
	FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error)
	FindActiveByIDWithSecrets(ctx context.Context, db *gorm.DB, id string) (*models.User, error)
	FindActiveByEmailWithSecrets(ctx context.Context, db *gorm.DB, email string) (*models.User, error)
	ListActive(ctx context.Context, db *gorm.DB, page, limit int) ([]models.User, int64, error)

	SetPassword(ctx context.Context, db *gorm.DB, userID, password string, now time.Time) error
	SetResetToken(ctx context.Context, db *gorm.DB, userID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, db *gorm.DB, userID string) error
	ConsumeResetToken(ctx context.Context, db *gorm.DB, tokenHash, password string, now time.Time) (*models.User, error)

	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, update ProfileUpdate) (*models.User, error)
	Deactivate(ctx context.Context, db *gorm.DB, userID string) error
}

// ProfileUpdate carries the non-credential fields a user may change.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Photo *string
}

type UserRepositoryImpl struct {
	hasher PasswordHasher
}

func NewUserRepository(hasher PasswordHasher) UserRepository {
	return &UserRepositoryImpl{hasher: hasher}
}

// active is the single read path used for authentication lookups.
func active(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Model(&models.User{}).Where("active = ?", true)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, db *gorm.DB, user *models.User, password string) error {
	digest, err := r.hasher.Hash(ctx, password)
	if err != nil {
		return err
	}

	user.Email = models.NormalizeEmail(user.Email)
	user.PasswordHash = digest
	user.PasswordChangedAt = nil
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	user.Active = true
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}
	if user.Photo == "" {
		user.Photo = "default.jpg"
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindActiveByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	return first(active(ctx, db).Omit(secretColumns...).Where("id = ?", id))
}

func (r *UserRepositoryImpl) FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	return first(active(ctx, db).Omit(secretColumns...).Where("email = ?", models.NormalizeEmail(email)))
}

func (r *UserRepositoryImpl) FindActiveByIDWithSecrets(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	return first(active(ctx, db).Where("id = ?", id))
}

func (r *UserRepositoryImpl) FindActiveByEmailWithSecrets(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	return first(active(ctx, db).Where("email = ?", models.NormalizeEmail(email)))
}

func (r *UserRepositoryImpl) ListActive(ctx context.Context, db *gorm.DB, page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := active(ctx, db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := active(ctx, db).Omit(secretColumns...).
		Order("created_at").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	return users, total, err
}

// SetPassword hashes password and stamps password_changed_at in one write.
// Any pending reset token is dropped with it.
func (r *UserRepositoryImpl) SetPassword(ctx context.Context, db *gorm.DB, userID, password string, now time.Time) error {
	digest, err := r.hasher.Hash(ctx, password)
	if err != nil {
		return err
	}

	result := active(ctx, db).Where("id = ?", userID).Updates(passwordColumns(digest, now))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, db *gorm.DB, userID, tokenHash string, expires time.Time) error {
	result := active(ctx, db).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_reset_token":   tokenHash,
		"password_reset_expires": expires,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ClearResetToken(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_reset_token":   nil,
		"password_reset_expires": nil,
	}).Error
}

// ConsumeResetToken finds the active identity holding tokenHash with an
// unexpired window and replaces its password. The update is conditioned on the
// token still being present, so a token can succeed at most once.
func (r *UserRepositoryImpl) ConsumeResetToken(ctx context.Context, db *gorm.DB, tokenHash, password string, now time.Time) (*models.User, error) {
	user, err := first(active(ctx, db).Omit(secretColumns...).
		Where("password_reset_token = ? AND password_reset_expires > ?", tokenHash, now))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrResetTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	digest, err := r.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	result := active(ctx, db).
		Where("id = ? AND password_reset_token = ?", user.ID, tokenHash).
		Updates(passwordColumns(digest, now))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrResetTokenInvalid
	}

	user.PasswordChangedAt = &now
	return user, nil
}

func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, update ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Email != nil {
		email := models.NormalizeEmail(*update.Email)
		var count int64
		err := db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", email, userID).Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUserAlreadyExists
		}
		fields["email"] = email
	}
	if update.Photo != nil {
		fields["photo"] = *update.Photo
	}
	if len(fields) == 0 {
		return nil, ErrNoProfileChanges
	}

	result := active(ctx, db).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindActiveByID(ctx, db, userID)
}

// Deactivate hides the identity from every active read. The row is kept.
func (r *UserRepositoryImpl) Deactivate(ctx context.Context, db *gorm.DB, userID string) error {
	result := active(ctx, db).Where("id = ?", userID).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func passwordColumns(digest string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"password_hash":          digest,
		"password_changed_at":    now,
		"password_reset_token":   nil,
		"password_reset_expires": nil,
	}
}

func first(q *gorm.DB) (*models.User, error) {
	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
