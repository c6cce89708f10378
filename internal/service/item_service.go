package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menu_api/internal/model"
	"menu_api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrItemNotFound = errors.New("item not found")

// ItemService defines operations for items
type ItemService interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.Item, error)
	GetItems(ctx context.Context) ([]model.Item, error)
	GetItemByID(ctx context.Context, id primitive.ObjectID) (*model.Item, error)
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
}

type itemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

// CreateItem applies defaults, stamps createdAt and inserts the item
func (s *itemService) CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.Item, error) {
	category := req.Category
	if category == "" {
		category = model.DefaultItemCategory
	}
	tags := []string(req.Tags)
	if tags == nil {
		tags = []string{}
	}

	item := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    category,
		Image:       req.Image,
		Badge:       req.Badge,
		BadgeColor:  req.BadgeColor,
		IsLarge:     req.IsLarge,
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item in repository: %w", err)
	}
	return item, nil
}

// GetItems returns items newest first, capped by the repository
func (s *itemService) GetItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get items from repository: %w", err)
	}
	return items, nil
}

// GetItemByID returns a single item or ErrItemNotFound
func (s *itemService) GetItemByID(ctx context.Context, id primitive.ObjectID) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// DeleteItem removes an item, reporting ErrItemNotFound when no record exists
func (s *itemService) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find item for deletion: %w", err)
	}
	if existing == nil {
		return ErrItemNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item in repository: %w", err)
	}
	return nil
}
