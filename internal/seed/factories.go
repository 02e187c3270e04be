// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"cityshare/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// itemCategories mirrors the categories the frontend offers.
var itemCategories = []string{
	"tools", "kitchen", "outdoors", "electronics", "books", "sports", "garden",
}

// Options tunes the factory's behavior.
type Options struct {
	// SkipBcrypt stores a plain placeholder password instead of hashing.
	// Only useful to speed up large dev seeds; never valid for login tests.
	SkipBcrypt bool
	// MaxDays bounds the random created_at spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	r    *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		r:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadCreatedAt returns a realistic timestamp within the configured window.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(10),
		Location:    gofakeit.City(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsVerified:  gofakeit.Bool(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateItem constructs and persists a sample item owned by the given user.
// The owner's items_listed counter is kept in step.
func (f *Factory) CreateItem(owner *models.User, overrides ...func(*models.Item)) (*models.Item, error) {
	distance := gofakeit.Float64Range(0.2, 15)
	item := &models.Item{
		OwnerID:     owner.ID,
		Title:       gofakeit.ProductName(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Category:    itemCategories[f.r.Intn(len(itemCategories))],
		Location:    gofakeit.City(),
		Distance:    &distance,
		Status:      models.ItemStatusAvailable,
		Images: []string{
			fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		},
		CreatedAt: f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(item)
	}
	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	if err := f.db.Model(&models.User{}).
		Where("id = ?", owner.ID).
		UpdateColumn("items_listed", gorm.Expr("items_listed + 1")).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateBooking constructs and persists a booking of item by borrower.
func (f *Factory) CreateBooking(item *models.Item, borrower *models.User, overrides ...func(*models.Booking)) (*models.Booking, error) {
	pickup := time.Now().Add(time.Duration(f.r.Intn(14)+1) * 24 * time.Hour)
	itemID := item.ID
	booking := &models.Booking{
		ItemID:     &itemID,
		BorrowerID: borrower.ID,
		OwnerID:    item.OwnerID,
		PickupDate: pickup,
		ReturnDate: pickup.Add(time.Duration(f.r.Intn(7)+1) * 24 * time.Hour),
		Status:     models.BookingStatusPending,
	}

	for _, override := range overrides {
		override(booking)
	}
	if err := f.db.Create(booking).Error; err != nil {
		return nil, err
	}
	if err := f.db.Model(&models.User{}).
		Where("id = ?", borrower.ID).
		UpdateColumn("items_borrowed", gorm.Expr("items_borrowed + 1")).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// CreateMessage constructs and persists a direct message between two users.
func (f *Factory) CreateMessage(sender, receiver *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		ConversationID: models.ConversationID(sender.ID, receiver.ID),
		SenderID:       sender.ID,
		ReceiverID:     receiver.ID,
		Content:        gofakeit.Sentence(8),
		CreatedAt:      f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(message)
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
