package repository

import (
	"context"
	"errors"
	"fmt"

	"menu_api/internal/config"
	"menu_api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemListLimit caps the number of items a single listing returns
const ItemListLimit = 100

// ItemRepository defines operations for item data
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindAll(ctx context.Context) ([]model.Item, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Item, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type itemRepository struct {
	db *config.Database
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *config.Database) ItemRepository {
	return &itemRepository{db: db}
}

// Create inserts a new item and fills in the store-assigned id
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	coll, err := r.db.ItemsCollection(ctx)
	if err != nil {
		return err
	}
	res, err := coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

// FindAll retrieves items newest first, capped at ItemListLimit
func (r *itemRepository) FindAll(ctx context.Context) ([]model.Item, error) {
	coll, err := r.db.ItemsCollection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(ItemListLimit)
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []model.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// FindByID retrieves an item by its id
func (r *itemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Item, error) {
	coll, err := r.db.ItemsCollection(ctx)
	if err != nil {
		return nil, err
	}

	item := &model.Item{}
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Item not found, service layer handles it
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return item, nil
}

// Delete removes an item by its id
func (r *itemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.db.ItemsCollection(ctx)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
