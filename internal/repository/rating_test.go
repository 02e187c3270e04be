package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"cityshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func completedBooking(t *testing.T, db *gorm.DB, owner, borrower *models.User, item *models.Item) *models.Booking {
	t.Helper()
	itemID := item.ID
	booking := &models.Booking{
		ItemID:     &itemID,
		BorrowerID: borrower.ID,
		OwnerID:    owner.ID,
		Status:     models.BookingStatusCompleted,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestRatingRepository_Create_UpdatesAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	carol := makeUser(t, db, "carol")
	item := makeItem(t, db, alice)
	bookingFromBob := completedBooking(t, db, alice, bob, item)
	bookingFromCarol := completedBooking(t, db, alice, carol, item)

	require.NoError(t, repo.Create(ctx, &models.Rating{
		RaterID: bob.ID, RatedUserID: alice.ID, BookingID: bookingFromBob.ID, Score: 5,
	}))
	require.NoError(t, repo.Create(ctx, &models.Rating{
		RaterID: carol.ID, RatedUserID: alice.ID, BookingID: bookingFromCarol.ID, Score: 4,
	}))

	var rated models.User
	require.NoError(t, db.First(&rated, alice.ID).Error)
	assert.InDelta(t, 4.5, rated.Rating, 0.0001)
	assert.Equal(t, 2, rated.TotalRatings)
}

func TestRatingRepository_Create_ConcurrentSubmissionsConverge(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single pooled connection keeps every goroutine on the same
	// in-memory database.
	sqlDB.SetMaxOpenConns(1)

	repo := NewRatingRepository(db)
	rated := makeUser(t, db, "lender")

	scores := []int{5, 4, 3, 5, 2, 5}
	raters := make([]*models.User, len(scores))
	bookings := make([]*models.Booking, len(scores))
	for i := range scores {
		raters[i] = makeUser(t, db, fmt.Sprintf("borrower%d", i))
		item := makeItem(t, db, rated)
		bookings[i] = completedBooking(t, db, rated, raters[i], item)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(scores))
	for i := range scores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &models.Rating{
				RaterID:     raters[i].ID,
				RatedUserID: rated.ID,
				BookingID:   bookings[i].ID,
				Score:       scores[i],
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	var after models.User
	require.NoError(t, db.First(&after, rated.ID).Error)
	assert.Equal(t, len(scores), after.TotalRatings)
	assert.InDelta(t, float64(sum)/float64(len(scores)), after.Rating, 0.0001)
}

func TestRatingRepository_Create_RepeatIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice)
	booking := completedBooking(t, db, alice, bob, item)

	require.NoError(t, repo.Create(ctx, &models.Rating{
		RaterID: bob.ID, RatedUserID: alice.ID, BookingID: booking.ID, Score: 5,
	}))

	err := repo.Create(ctx, &models.Rating{
		RaterID: bob.ID, RatedUserID: alice.ID, BookingID: booking.ID, Score: 1,
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)

	// Aggregate untouched by the failed insert.
	var rated models.User
	require.NoError(t, db.First(&rated, alice.ID).Error)
	assert.InDelta(t, 5.0, rated.Rating, 0.0001)
	assert.Equal(t, 1, rated.TotalRatings)
}

func TestRatingRepository_Create_BothDirectionsAllowed(t *testing.T) {
	db := newTestDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice)
	booking := completedBooking(t, db, alice, bob, item)

	require.NoError(t, repo.Create(ctx, &models.Rating{
		RaterID: bob.ID, RatedUserID: alice.ID, BookingID: booking.ID, Score: 5,
	}))
	require.NoError(t, repo.Create(ctx, &models.Rating{
		RaterID: alice.ID, RatedUserID: bob.ID, BookingID: booking.ID, Score: 3,
	}))

	var borrower models.User
	require.NoError(t, db.First(&borrower, bob.ID).Error)
	assert.InDelta(t, 3.0, borrower.Rating, 0.0001)
	assert.Equal(t, 1, borrower.TotalRatings)
}

func TestRatingRepository_ListForUser_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	item := makeItem(t, db, alice)
	booking := completedBooking(t, db, alice, bob, item)

	require.NoError(t, repo.Create(ctx, &models.Rating{
		RaterID: bob.ID, RatedUserID: alice.ID, BookingID: booking.ID,
		Score: 5, Review: "great lender",
	}))

	ratings, err := repo.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "great lender", ratings[0].Review)
	require.NotNil(t, ratings[0].Rater)
	assert.Equal(t, "bob", ratings[0].Rater.Username)
}
