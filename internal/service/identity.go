package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/srepett/UploadFileee/model"
	"github.com/srepett/UploadFileee/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Identity owns user records, credential checks and ban state. Role checks
// for the admin-only operations are the caller's job, the HTTP layer gates
// them behind the admin middleware
type Identity struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Files *Registry

	// Overridable for tests that need to move the clock
	Now func() time.Time
}

func NewIdentity(db *gorm.DB, argon *security.ArgonHash, files *Registry) *Identity {
	return &Identity{
		DB:    db,
		Argon: argon,
		Files: files,
		Now:   time.Now,
	}
}

// Register creates a new account with role "user". Email uniqueness is
// checked here, on conflict the existing account is left untouched
func (s *Identity) Register(email, password string) (*model.User, error) {
	var taken bool

	err := s.DB.
		Model(&model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&taken).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if email is registered, %w", err)
	}

	if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.Argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	id, err := gonanoid.Generate(userIDAlphabet, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    s.Now(),
	}

	if err := s.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return user, nil
}

// Login checks credentials and ban state. Unknown emails and wrong
// passwords both come back as ErrInvalidCredentials, an active ban as
// *BannedError
func (s *Identity) Login(email, password string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	if user.BannedAt(s.Now()) {
		return nil, &BannedError{Until: *user.BannedUntil}
	}

	ok, err := s.Argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CurrentUser resolves a session's user ID back to the account. Returns
// ErrNotFound when the account was deleted while the session was live
func (s *Identity) CurrentUser(userID string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	return &user, nil
}

// SetBan bans the user until the given time, or clears any ban when until
// is nil. Re-banning a banned user or unbanning a clean one is fine
func (s *Identity) SetBan(userID string, until *time.Time) error {
	var exists bool

	err := s.DB.
		Model(&model.User{}).
		Select("count(*) > 0").
		Where("id = ?", userID).
		Find(&exists).
		Error
	if err != nil {
		return fmt.Errorf("failed to check if user exists, %w", err)
	}

	if !exists {
		return ErrNotFound
	}

	err = s.DB.
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("banned_until", until).
		Error
	if err != nil {
		return fmt.Errorf("failed to update ban state, %w", err)
	}

	return nil
}

// DeleteUser removes the account and every file it owns
func (s *Identity) DeleteUser(userID string) error {
	var exists bool

	err := s.DB.
		Model(&model.User{}).
		Select("count(*) > 0").
		Where("id = ?", userID).
		Find(&exists).
		Error
	if err != nil {
		return fmt.Errorf("failed to check if user exists, %w", err)
	}

	if !exists {
		return ErrNotFound
	}

	if err := s.Files.CascadeDeleteForUser(userID); err != nil {
		return err
	}

	err = s.DB.
		Where("id = ?", userID).
		Delete(&model.User{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete user, %w", err)
	}

	zap.L().Info("Deleted user", zap.String("userID", userID))
	return nil
}

// CountUsers feeds the totalUsers field of the admin stats
func (s *Identity) CountUsers() (int64, error) {
	var n int64

	err := s.DB.Model(&model.User{}).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users, %w", err)
	}

	return n, nil
}
