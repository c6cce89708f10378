package config

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Database is the storage gateway: a single shared Mongo client behind a
// one-shot connect guard, handed to the repositories at startup.
type Database struct {
	cfg *StoreConfig

	connectOnce sync.Once
	client      *mongo.Client
	connectErr  error
}

// NewDatabase creates a gateway for the configured store. No connection is
// made until Connect or a collection accessor is called.
func NewDatabase(cfg *StoreConfig) *Database {
	return &Database{cfg: cfg}
}

// Connect dials and pings the store at most once per process lifetime.
// Subsequent calls return the cached result, including a cached failure.
func (d *Database) Connect(ctx context.Context) error {
	d.connectOnce.Do(func() {
		dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(d.cfg.URI))
		if err != nil {
			d.connectErr = fmt.Errorf("unable to connect to store: %w", err)
			return
		}
		if err := client.Ping(dialCtx, nil); err != nil {
			d.connectErr = fmt.Errorf("unable to ping store: %w", err)
			return
		}

		d.client = client
		log.Println("Successfully connected to MongoDB!")
	})
	return d.connectErr
}

// UsersCollection returns the users collection, connecting first if needed.
func (d *Database) UsersCollection(ctx context.Context) (*mongo.Collection, error) {
	return d.collection(ctx, "users")
}

// ItemsCollection returns the items collection, connecting first if needed.
func (d *Database) ItemsCollection(ctx context.Context) (*mongo.Collection, error) {
	return d.collection(ctx, "items")
}

func (d *Database) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	if err := d.Connect(ctx); err != nil {
		return nil, err
	}
	return d.client.Database(d.cfg.DBName).Collection(name), nil
}

// Disconnect closes the shared client if a connection was ever established
func (d *Database) Disconnect(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the handlers rely on: the unique email
// index that turns a duplicate insert into a conflict, and createdAt
// indexes backing the newest-first listings.
func EnsureIndexes(ctx context.Context, db *Database) error {
	users, err := db.UsersCollection(ctx)
	if err != nil {
		return err
	}
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("unable to create users email index: %w", err)
	}
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("unable to create users createdAt index: %w", err)
	}

	items, err := db.ItemsCollection(ctx)
	if err != nil {
		return err
	}
	_, err = items.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("unable to create items createdAt index: %w", err)
	}

	log.Println("EnsureIndexes applied successfully")
	return nil
}
