// Package db contains things related to SQLite
package db

import (
	"fmt"
	"time"

	"github.com/srepett/UploadFileee/model"
	"github.com/srepett/UploadFileee/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New(argon *security.ArgonHash) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(viper.GetString("db.path")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.File{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	if err := seedAdmin(db, argon); err != nil {
		return nil, err
	}

	return db, nil
}

// seedAdmin creates the initial admin account on an empty database so the
// admin pages are reachable on first run. There's no promotion path, admin
// is assigned at creation only
func seedAdmin(db *gorm.DB, argon *security.ArgonHash) error {
	var users int64

	if err := db.Model(&model.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("failed to count users, %w", err)
	}

	if users > 0 {
		return nil
	}

	password := viper.GetString("admin.password")
	if password == "" {
		return nil
	}

	hash, err := argon.GenerateFromPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password, %w", err)
	}

	id, err := gonanoid.New(16)
	if err != nil {
		return fmt.Errorf("failed to generate admin ID, %w", err)
	}

	admin := &model.User{
		ID:           id,
		Email:        viper.GetString("admin.email"),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin account, %w", err)
	}

	zap.L().Info("Seeded initial admin account", zap.String("email", admin.Email))
	return nil
}
