// Package service holds the application's business rules, between the
// handlers and the repositories.
package service

import (
	"context"
	"strings"

	"cityshare/internal/models"
	"cityshare/internal/repository"
)

type ItemService struct {
	itemRepo repository.ItemRepository
}

type CreateItemInput struct {
	OwnerID     uint
	Title       string
	Description string
	Category    string
	Location    string
	Images      []string
	Distance    *float64
}

type UpdateItemInput struct {
	UserID      uint
	ItemID      uint
	Title       string
	Description string
	Category    string
	Location    string
	Images      []string
	Distance    *float64
}

func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

func (s *ItemService) ListItems(ctx context.Context, filters models.ItemFilters) ([]models.Item, error) {
	return s.itemRepo.List(ctx, filters)
}

func (s *ItemService) RecentItems(ctx context.Context) ([]models.Item, error) {
	return s.itemRepo.ListRecent(ctx, 6)
}

func (s *ItemService) MyItems(ctx context.Context, userID uint) ([]models.Item, error) {
	return s.itemRepo.ListByOwner(ctx, userID)
}

func (s *ItemService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, models.NewValidationError("Category is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, models.NewValidationError("Location is required")
	}

	item := &models.Item{
		OwnerID:     in.OwnerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Location:    in.Location,
		Images:      in.Images,
		Distance:    in.Distance,
		Status:      models.ItemStatusAvailable,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, in UpdateItemInput) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("Only the owner can update this item")
	}

	if in.Title != "" {
		item.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		item.Description = strings.TrimSpace(in.Description)
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.Location != "" {
		item.Location = in.Location
	}
	if in.Images != nil {
		item.Images = in.Images
	}
	if in.Distance != nil {
		item.Distance = in.Distance
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != userID {
		return models.NewForbiddenError("Only the owner can delete this item")
	}
	return s.itemRepo.Delete(ctx, itemID)
}
