package service

import (
	"strings"
	"testing"

	"github.com/srepett/UploadFileee/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsTypedPaths(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	img := mustCreateFile(t, files, owner, "cat.png", model.TypeImage, 100)
	vid := mustCreateFile(t, files, owner, "cat.mp4", model.TypeVideo, 200)

	assert.True(t, strings.HasPrefix(img.URL, "/foto/"), "image paths live under /foto/, got %q", img.URL)
	assert.True(t, strings.HasPrefix(vid.URL, "/video/"), "video paths live under /video/, got %q", vid.URL)
	assert.Equal(t, owner.Email, img.UserEmail)
}

func TestCreateRegeneratesOnSlugCollision(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	fixedSlugs(files, "abcdef")
	first := mustCreateFile(t, files, owner, "a.png", model.TypeImage, 1)
	assert.Equal(t, "/foto/abcdef", first.URL)

	// Same slug again, then a free one. The taken slug must be skipped
	fixedSlugs(files, "abcdef", "ghijkl")
	second := mustCreateFile(t, files, owner, "b.png", model.TypeImage, 1)
	assert.Equal(t, "/foto/ghijkl", second.URL)
}

func TestListOrdering(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")
	other := mustRegister(t, identity, "other@example.com")

	oldest := mustCreateFile(t, files, owner, "first.png", model.TypeImage, 1)
	mustCreateFile(t, files, other, "theirs.png", model.TypeImage, 1)
	newest := mustCreateFile(t, files, owner, "second.png", model.TypeImage, 1)

	mine, err := files.ListForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newest.ID, mine[0].ID, "most recent upload comes first")
	assert.Equal(t, oldest.ID, mine[1].ID)

	all, err := files.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)

	empty, err := files.ListForUser("nobody")
	require.NoError(t, err)
	assert.Empty(t, empty, "no files is an empty list, not an error")
}

func TestSetCustomURL(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	fixedSlugs(files, "abc", "def")
	fileA := mustCreateFile(t, files, owner, "a.png", model.TypeImage, 1)
	fileB := mustCreateFile(t, files, owner, "b.png", model.TypeImage, 1)
	require.Equal(t, "/foto/abc", fileA.URL)
	require.Equal(t, "/foto/def", fileB.URL)

	t.Run("conflict with another file's path", func(t *testing.T) {
		_, err := files.SetCustomURL(fileA.ID, "def", owner.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("own current path is not a conflict", func(t *testing.T) {
		_, err := files.SetCustomURL(fileA.ID, "abc", owner.ID)
		assert.NoError(t, err)
	})

	t.Run("free slug moves resolution", func(t *testing.T) {
		updated, err := files.SetCustomURL(fileA.ID, "xyz", owner.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.CustomURL)
		assert.Equal(t, "/foto/xyz", *updated.CustomURL)

		got, found, err := files.Resolve("/foto/xyz")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, fileA.ID, got.ID)
	})

	t.Run("wrong owner collapses to not found", func(t *testing.T) {
		other := mustRegister(t, identity, "other@example.com")

		_, err := files.SetCustomURL(fileA.ID, "mine", other.ID)
		assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := files.SetCustomURL(9999, "slug", owner.ID)
		assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	})
}

func TestResolve(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	fixedSlugs(files, "abc")
	file := mustCreateFile(t, files, owner, "a.png", model.TypeImage, 1)

	got, found, err := files.Resolve("/foto/abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, file.ID, got.ID)

	_, found, err = files.Resolve("/foto/nothing")
	require.NoError(t, err)
	assert.False(t, found, "a miss is not an error")

	// A custom URL takes over resolution. The assigned path stays
	// reserved but stops resolving
	_, err = files.SetCustomURL(file.ID, "pretty", owner.ID)
	require.NoError(t, err)

	got, found, err = files.Resolve("/foto/pretty")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "/foto/pretty", got.SharePath())

	_, found, err = files.Resolve("/foto/abc")
	require.NoError(t, err)
	assert.False(t, found, "the overridden path must not resolve anymore")

	// But it's still reserved, nobody else can claim it
	fixedSlugs(files, "qwerty")
	other := mustCreateFile(t, files, owner, "b.png", model.TypeImage, 1)
	_, err = files.SetCustomURL(other.ID, "abc", owner.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDelete(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")
	other := mustRegister(t, identity, "other@example.com")

	file := mustCreateFile(t, files, owner, "a.png", model.TypeImage, 1)

	t.Run("foreign file collapses to not found", func(t *testing.T) {
		assert.ErrorIs(t, files.Delete(file.ID, other.ID), ErrNotFoundOrForbidden)
	})

	t.Run("owner delete", func(t *testing.T) {
		require.NoError(t, files.Delete(file.ID, owner.ID))

		_, found, err := files.Resolve(file.URL)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("already gone", func(t *testing.T) {
		assert.ErrorIs(t, files.Delete(file.ID, owner.ID), ErrNotFoundOrForbidden)
	})
}

func TestAdminDelete(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	file := mustCreateFile(t, files, owner, "a.png", model.TypeImage, 1)

	require.NoError(t, files.AdminDelete(file.ID))

	_, found, err := files.Resolve(file.URL)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing file is a no-op
	assert.NoError(t, files.AdminDelete(file.ID))
}

func TestComputeStats(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	mustCreateFile(t, files, owner, "a.png", model.TypeImage, 100)
	mustCreateFile(t, files, owner, "b.png", model.TypeImage, 200)
	mustCreateFile(t, files, owner, "c.mp4", model.TypeVideo, 300)

	const capacity = int64(1 << 30)

	stats, err := files.ComputeStats(1, capacity)
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.TotalFiles)
	assert.EqualValues(t, 300, stats.StorageByType.Images)
	assert.EqualValues(t, 300, stats.StorageByType.Videos)
	assert.EqualValues(t, 600, stats.TotalStorage)
	assert.Equal(t, capacity, stats.TotalCapacity)
	assert.Equal(t, capacity-600, stats.RemainingStorage)
}

func TestComputeStatsOverCapacity(t *testing.T) {
	identity, files := newTestServices(t)
	owner := mustRegister(t, identity, "owner@example.com")

	mustCreateFile(t, files, owner, "big.mp4", model.TypeVideo, 500)

	stats, err := files.ComputeStats(1, 100)
	require.NoError(t, err)

	assert.EqualValues(t, -400, stats.RemainingStorage, "over-quota state stays visible")
}
