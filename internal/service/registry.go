package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/srepett/UploadFileee/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugLength   = 6

	// With 36^6 possible slugs a collision on insert is already unlikely,
	// retrying a handful of times makes running out practically impossible
	maxSlugAttempts = 5
)

// Registry owns file metadata, share-path assignment and resolution.
// Actual file bytes never touch this service, only what was selected
// about them
type Registry struct {
	DB  *gorm.DB
	Now func() time.Time

	// Overridable for tests that need predictable slugs
	newSlug func() (string, error)
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		DB:  db,
		Now: time.Now,
		newSlug: func() (string, error) {
			return gonanoid.Generate(slugAlphabet, slugLength)
		},
	}
}

// PathFor builds the share path for a file type and slug. Images live
// under /foto/, videos under /video/
func PathFor(fileType, slug string) string {
	if fileType == model.TypeImage {
		return "/foto/" + slug
	}
	return "/video/" + slug
}

// Create records a new upload under a freshly assigned share path.
// Listing order is most recent first, which the autoincrement ID gives us
// for free without leaning on timestamp ties
func (s *Registry) Create(owner *model.User, name, fileType string, size int64) (*model.File, error) {
	path, err := s.assignPath(fileType)
	if err != nil {
		return nil, err
	}

	file := &model.File{
		UserID:    owner.ID,
		UserEmail: owner.Email,
		Name:      name,
		Type:      fileType,
		Size:      size,
		URL:       path,
		CreatedAt: s.Now().UnixMilli(),
	}

	if err := s.DB.Create(file).Error; err != nil {
		return nil, fmt.Errorf("failed to create file entry, %w", err)
	}

	return file, nil
}

// assignPath picks a random slug and re-rolls on the off chance it's
// already taken, either as an assigned or a custom path
func (s *Registry) assignPath(fileType string) (string, error) {
	for i := 0; i < maxSlugAttempts; i++ {
		slug, err := s.newSlug()
		if err != nil {
			return "", fmt.Errorf("failed to generate slug, %w", err)
		}

		path := PathFor(fileType, slug)

		taken, err := s.pathTaken(path, 0)
		if err != nil {
			return "", err
		}

		if !taken {
			return path, nil
		}

		zap.L().Warn("Share path collision, regenerating", zap.String("path", path))
	}

	return "", errors.New("failed to find a free share path")
}

func (s *Registry) pathTaken(path string, excludeID uint) (bool, error) {
	var taken bool

	err := s.DB.
		Model(&model.File{}).
		Select("count(*) > 0").
		Where("(url = ? OR custom_url = ?) AND id <> ?", path, path, excludeID).
		Find(&taken).
		Error
	if err != nil {
		return false, fmt.Errorf("failed to check share path, %w", err)
	}

	return taken, nil
}

func (s *Registry) ListForUser(userID string) ([]model.File, error) {
	var files []model.File

	err := s.DB.
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&files).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user files, %w", err)
	}

	return files, nil
}

func (s *Registry) ListAll() ([]model.File, error) {
	var files []model.File

	err := s.DB.
		Order("id desc").
		Find(&files).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list files, %w", err)
	}

	return files, nil
}

// Resolve finds the file reachable under path. A custom URL overrides the
// assigned one, so once it's set the old path stops resolving even though
// it stays reserved. A miss is not an error, callers render a not-found
// page for it
func (s *Registry) Resolve(path string) (*model.File, bool, error) {
	var file model.File

	err := s.DB.
		Where("(custom_url IS NULL AND url = ?) OR custom_url = ?", path, path).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to resolve share path, %w", err)
	}

	return &file, true, nil
}

// SetCustomURL replaces the file's custom slug. The type prefix stays
// fixed, only the slug is caller-chosen. The conflict check skips the file
// itself so re-saving the current slug isn't an error
func (s *Registry) SetCustomURL(fileID uint, newSlug, requestingUserID string) (*model.File, error) {
	var file model.File

	err := s.DB.
		Where("id = ? AND user_id = ?", fileID, requestingUserID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}

		return nil, fmt.Errorf("failed to fetch file, %w", err)
	}

	path := PathFor(file.Type, newSlug)

	taken, err := s.pathTaken(path, file.ID)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, ErrConflict
	}

	file.CustomURL = &path

	err = s.DB.
		Model(&model.File{}).
		Where("id = ?", file.ID).
		Update("custom_url", path).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to update custom url, %w", err)
	}

	return &file, nil
}

// Delete removes a file the requesting user owns. Missing and foreign
// files are indistinguishable to the caller
func (s *Registry) Delete(fileID uint, requestingUserID string) error {
	res := s.DB.
		Where("id = ? AND user_id = ?", fileID, requestingUserID).
		Delete(&model.File{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete file, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}

	return nil
}

// AdminDelete removes a file regardless of owner. Deleting an already
// gone file is a no-op
func (s *Registry) AdminDelete(fileID uint) error {
	err := s.DB.
		Where("id = ?", fileID).
		Delete(&model.File{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete file, %w", err)
	}

	return nil
}

// CascadeDeleteForUser wipes everything a user owns, used when the
// account itself goes away
func (s *Registry) CascadeDeleteForUser(userID string) error {
	err := s.DB.
		Where("user_id = ?", userID).
		Delete(&model.File{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete user files, %w", err)
	}

	return nil
}

// ComputeStats aggregates global storage numbers for the admin dashboard.
// totalUsers comes from the identity service, capacity from config
func (s *Registry) ComputeStats(totalUsers, totalCapacity int64) (*model.AdminStats, error) {
	var totalFiles int64

	if err := s.DB.Model(&model.File{}).Count(&totalFiles).Error; err != nil {
		return nil, fmt.Errorf("failed to count files, %w", err)
	}

	images, err := s.sumSize(model.TypeImage)
	if err != nil {
		return nil, err
	}

	videos, err := s.sumSize(model.TypeVideo)
	if err != nil {
		return nil, err
	}

	total := images + videos

	return &model.AdminStats{
		TotalUsers:   totalUsers,
		TotalFiles:   totalFiles,
		TotalStorage: total,
		StorageByType: model.StorageByType{
			Images: images,
			Videos: videos,
		},
		TotalCapacity:    totalCapacity,
		RemainingStorage: totalCapacity - total,
	}, nil
}

func (s *Registry) sumSize(fileType string) (int64, error) {
	var sum int64

	err := s.DB.
		Model(&model.File{}).
		Where("type = ?", fileType).
		Select("COALESCE(SUM(size), 0)").
		Find(&sum).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s sizes, %w", fileType, err)
	}

	return sum, nil
}
