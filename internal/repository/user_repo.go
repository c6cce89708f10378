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

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	db *config.Database
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *config.Database) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in the store-assigned id. A duplicate
// email surfaces as the driver's duplicate-key error, preserved in the chain
// for the service layer to classify.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	coll, err := r.db.UsersCollection(ctx)
	if err != nil {
		return err
	}
	res, err := coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindAll retrieves all users, newest first
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	coll, err := r.db.UsersCollection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindByID retrieves a user by their id
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	coll, err := r.db.UsersCollection(ctx)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// Delete removes a user by their id
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.db.UsersCollection(ctx)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
