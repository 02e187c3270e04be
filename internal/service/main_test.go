package service

import (
	"context"

	"cityshare/internal/models"
)

// Repository stubs with overridable function fields, so each test swaps in
// only the calls it cares about.

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	updateProfileFn func(context.Context, uint, map[string]interface{}) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	return s.updateProfileFn(ctx, id, updates)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		updateProfileFn: func(_ context.Context, id uint, _ map[string]interface{}) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
}

type itemRepoStub struct {
	getByIDFn      func(context.Context, uint) (*models.Item, error)
	listFn         func(context.Context, models.ItemFilters) ([]models.Item, error)
	listRecentFn   func(context.Context, int) ([]models.Item, error)
	listByOwnerFn  func(context.Context, uint) ([]models.Item, error)
	createFn       func(context.Context, *models.Item) error
	updateFn       func(context.Context, *models.Item) error
	updateStatusFn func(context.Context, uint, models.ItemStatus) error
	deleteFn       func(context.Context, uint) error
}

func (s *itemRepoStub) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	return s.getByIDFn(ctx, id)
}
func (s *itemRepoStub) List(ctx context.Context, filters models.ItemFilters) ([]models.Item, error) {
	return s.listFn(ctx, filters)
}
func (s *itemRepoStub) ListRecent(ctx context.Context, limit int) ([]models.Item, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *itemRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *itemRepoStub) Create(ctx context.Context, item *models.Item) error {
	return s.createFn(ctx, item)
}
func (s *itemRepoStub) Update(ctx context.Context, item *models.Item) error {
	return s.updateFn(ctx, item)
}
func (s *itemRepoStub) UpdateStatus(ctx context.Context, id uint, status models.ItemStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *itemRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopItemRepo() *itemRepoStub {
	return &itemRepoStub{
		getByIDFn:      func(_ context.Context, id uint) (*models.Item, error) { return &models.Item{ID: id}, nil },
		listFn:         func(context.Context, models.ItemFilters) ([]models.Item, error) { return nil, nil },
		listRecentFn:   func(context.Context, int) ([]models.Item, error) { return nil, nil },
		listByOwnerFn:  func(context.Context, uint) ([]models.Item, error) { return nil, nil },
		createFn:       func(context.Context, *models.Item) error { return nil },
		updateFn:       func(context.Context, *models.Item) error { return nil },
		updateStatusFn: func(context.Context, uint, models.ItemStatus) error { return nil },
		deleteFn:       func(context.Context, uint) error { return nil },
	}
}

type bookingRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Booking, error)
	listByUserFn func(context.Context, uint) ([]models.Booking, error)
	createFn     func(context.Context, *models.Booking) error
	transitionFn func(context.Context, *models.Booking, models.BookingStatus) error
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bookingRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *bookingRepoStub) Create(ctx context.Context, booking *models.Booking) error {
	return s.createFn(ctx, booking)
}
func (s *bookingRepoStub) Transition(ctx context.Context, booking *models.Booking, next models.BookingStatus) error {
	return s.transitionFn(ctx, booking, next)
}

func noopBookingRepo() *bookingRepoStub {
	return &bookingRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.Booking, error) { return &models.Booking{ID: id}, nil },
		listByUserFn: func(context.Context, uint) ([]models.Booking, error) { return nil, nil },
		createFn:     func(context.Context, *models.Booking) error { return nil },
		transitionFn: func(context.Context, *models.Booking, models.BookingStatus) error { return nil },
	}
}

type messageRepoStub struct {
	createFn               func(context.Context, *models.Message) error
	listByConversationFn   func(context.Context, string) ([]models.Message, error)
	listConversationsFn    func(context.Context, uint) ([]models.ConversationSummary, error)
	markConversationReadFn func(context.Context, string, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	return s.listByConversationFn(ctx, conversationID)
}
func (s *messageRepoStub) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	return s.listConversationsFn(ctx, userID)
}
func (s *messageRepoStub) MarkConversationRead(ctx context.Context, conversationID string, readerID uint) error {
	return s.markConversationReadFn(ctx, conversationID, readerID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:               func(context.Context, *models.Message) error { return nil },
		listByConversationFn:   func(context.Context, string) ([]models.Message, error) { return nil, nil },
		listConversationsFn:    func(context.Context, uint) ([]models.ConversationSummary, error) { return nil, nil },
		markConversationReadFn: func(context.Context, string, uint) error { return nil },
	}
}

type ratingRepoStub struct {
	createFn      func(context.Context, *models.Rating) error
	listForUserFn func(context.Context, uint) ([]models.Rating, error)
}

func (s *ratingRepoStub) Create(ctx context.Context, rating *models.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *ratingRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	return s.listForUserFn(ctx, userID)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		createFn:      func(context.Context, *models.Rating) error { return nil },
		listForUserFn: func(context.Context, uint) ([]models.Rating, error) { return nil, nil },
	}
}

func appErrCode(err error) string {
	if appErr, ok := err.(*models.AppError); ok {
		return appErr.Code
	}
	return ""
}
