package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	identity, _ := newTestServices(t)

	first := mustRegister(t, identity, "someone@example.com")

	_, err := identity.Register("someone@example.com", "another password")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The first account must be untouched by the failed attempt
	got, err := identity.CurrentUser(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, got.Email)
}

func TestLogin(t *testing.T) {
	identity, _ := newTestServices(t)
	mustRegister(t, identity, "someone@example.com")

	t.Run("correct credentials", func(t *testing.T) {
		user, err := identity.Login("someone@example.com", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, "someone@example.com", user.Email)

		// The returned ID must round-trip through the session lookup
		got, err := identity.CurrentUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := identity.Login("someone@example.com", "not the password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email collapses to the same error", func(t *testing.T) {
		_, err := identity.Login("nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginBanned(t *testing.T) {
	identity, _ := newTestServices(t)
	user := mustRegister(t, identity, "banned@example.com")

	now := time.Now()
	identity.Now = func() time.Time { return now }

	until := now.Add(time.Hour)
	require.NoError(t, identity.SetBan(user.ID, &until))

	_, err := identity.Login("banned@example.com", "correct horse battery")

	var banned *BannedError
	require.ErrorAs(t, err, &banned)
	assert.WithinDuration(t, until, banned.Until, time.Second, "the error should carry the ban expiry")

	// Once the clock passes the expiry the ban lifts on its own
	identity.Now = func() time.Time { return now.Add(2 * time.Hour) }

	_, err = identity.Login("banned@example.com", "correct horse battery")
	assert.NoError(t, err)
}

func TestSetBan(t *testing.T) {
	identity, _ := newTestServices(t)
	user := mustRegister(t, identity, "someone@example.com")

	t.Run("unban without a ban is a no-op", func(t *testing.T) {
		require.NoError(t, identity.SetBan(user.ID, nil))

		got, err := identity.CurrentUser(user.ID)
		require.NoError(t, err)
		assert.Nil(t, got.BannedUntil)
	})

	t.Run("ban then unban", func(t *testing.T) {
		until := time.Now().Add(time.Hour)
		require.NoError(t, identity.SetBan(user.ID, &until))

		got, err := identity.CurrentUser(user.ID)
		require.NoError(t, err)
		require.NotNil(t, got.BannedUntil)

		require.NoError(t, identity.SetBan(user.ID, nil))

		got, err = identity.CurrentUser(user.ID)
		require.NoError(t, err)
		assert.Nil(t, got.BannedUntil)
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, identity.SetBan("nope", nil), ErrNotFound)
	})
}

func TestDeleteUserCascades(t *testing.T) {
	identity, files := newTestServices(t)

	victim := mustRegister(t, identity, "victim@example.com")
	bystander := mustRegister(t, identity, "bystander@example.com")

	mustCreateFile(t, files, victim, "a.png", "image", 100)
	mustCreateFile(t, files, victim, "b.mp4", "video", 200)
	kept := mustCreateFile(t, files, bystander, "c.png", "image", 300)

	require.NoError(t, identity.DeleteUser(victim.ID))

	_, err := identity.CurrentUser(victim.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	gone, err := files.ListForUser(victim.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	all, err := files.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)
}

func TestDeleteUserUnknown(t *testing.T) {
	identity, _ := newTestServices(t)

	assert.ErrorIs(t, identity.DeleteUser("nope"), ErrNotFound)
}

func TestCountUsers(t *testing.T) {
	identity, _ := newTestServices(t)

	mustRegister(t, identity, "one@example.com")
	mustRegister(t, identity, "two@example.com")

	n, err := identity.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
