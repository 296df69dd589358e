package service

import (
	"fmt"
	"testing"

	"github.com/srepett/UploadFileee/model"
	"github.com/srepett/UploadFileee/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database. The shared-cache DSN
// keeps every pooled connection on the same database
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "opening the test database should not fail")

	require.NoError(t, db.AutoMigrate(model.User{}, model.File{}))

	return db
}

func newTestServices(t *testing.T) (*Identity, *Registry) {
	t.Helper()

	db := newTestDB(t)
	files := NewRegistry(db)
	identity := NewIdentity(db, security.New(), files)

	return identity, files
}

func mustRegister(t *testing.T, identity *Identity, email string) *model.User {
	t.Helper()

	user, err := identity.Register(email, "correct horse battery")
	require.NoError(t, err)

	return user
}

func mustCreateFile(t *testing.T, files *Registry, owner *model.User, name, fileType string, size int64) *model.File {
	t.Helper()

	f, err := files.Create(owner, name, fileType, size)
	require.NoError(t, err)

	return f
}

// fixedSlugs makes the registry hand out slugs from a list instead of
// random ones
func fixedSlugs(r *Registry, slugs ...string) {
	i := 0
	r.newSlug = func() (string, error) {
		s := slugs[i%len(slugs)]
		i++
		return s, nil
	}
}
