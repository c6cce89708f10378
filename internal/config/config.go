package config

import (
	"fmt"
	"os"
)

// StoreConfig holds MongoDB connection parameters
type StoreConfig struct {
	URI    string
	DBName string
}

// LoadStoreConfig loads store configuration from environment variables.
// MONGODB_URI takes precedence; otherwise the URI is assembled from the
// DB_HOST, DB_PORT, DB_USER and DB_PASSWORD constituents.
func LoadStoreConfig() (*StoreConfig, error) {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "menudb"
	}

	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return &StoreConfig{URI: uri, DBName: dbName}, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	if dbHost == "" || dbPort == "" {
		return nil, fmt.Errorf("store environment variables not set (MONGODB_URI, or DB_HOST and DB_PORT)")
	}

	uri := fmt.Sprintf("mongodb://%s:%s", dbHost, dbPort)
	if dbUser != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s", dbUser, dbPassword, dbHost, dbPort)
	}

	return &StoreConfig{URI: uri, DBName: dbName}, nil
}
