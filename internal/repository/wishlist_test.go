package repository

import (
	"context"
	"testing"

	"cityshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistRepository_Add_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewWishlistRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice)

	first := &models.WishlistEntry{UserID: bob.ID, ItemID: item.ID, AlertsEnabled: true}
	require.NoError(t, repo.Add(ctx, first))
	require.NotZero(t, first.ID)

	second := &models.WishlistEntry{UserID: bob.ID, ItemID: item.ID, AlertsEnabled: true}
	require.NoError(t, repo.Add(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.WishlistEntry{}).Where("user_id = ?", bob.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestWishlistRepository_CheckAndRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewWishlistRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice)

	wished, err := repo.Check(ctx, bob.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, wished)

	require.NoError(t, repo.Add(ctx, &models.WishlistEntry{UserID: bob.ID, ItemID: item.ID}))

	wished, err = repo.Check(ctx, bob.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, wished)

	require.NoError(t, repo.Remove(ctx, bob.ID, item.ID))

	wished, err = repo.Check(ctx, bob.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, wished)

	// Removing again is a not-found.
	assert.Error(t, repo.Remove(ctx, bob.ID, item.ID))
}

func TestWishlistRepository_UpdateAlerts(t *testing.T) {
	db := newTestDB(t)
	repo := NewWishlistRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice)
	require.NoError(t, repo.Add(ctx, &models.WishlistEntry{
		UserID: bob.ID, ItemID: item.ID, AlertsEnabled: true,
	}))

	entry, err := repo.UpdateAlerts(ctx, bob.ID, item.ID, false)
	require.NoError(t, err)
	assert.False(t, entry.AlertsEnabled)

	_, err = repo.UpdateAlerts(ctx, bob.ID, 999, false)
	assert.Error(t, err)
}

func TestWishlistRepository_ListByUser_PreloadsItemAndOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewWishlistRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice, func(i *models.Item) { i.Title = "Tent" })
	require.NoError(t, repo.Add(ctx, &models.WishlistEntry{UserID: bob.ID, ItemID: item.ID}))

	entries, err := repo.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Item)
	assert.Equal(t, "Tent", entries[0].Item.Title)
	require.NotNil(t, entries[0].Item.Owner)
	assert.Equal(t, "alice", entries[0].Item.Owner.Username)
}
