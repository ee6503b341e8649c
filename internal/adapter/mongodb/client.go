// Package mongodb connects to the MongoDB department store and maps driver
// errors to domain errors.
package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/coursereview-backend/internal/config"
	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

// defaultDatabase is the database used when neither MONGO_DB_NAME nor the URI path names one.
const defaultDatabase = "test"

// Connect creates a MongoDB client from StoreConfig, pings the primary for
// fail-fast validation, and returns the client with the resolved database.
// Failures wrap domain.ErrConnection.
func Connect(ctx context.Context, cfg config.StoreConfig) (*mongo.Client, *mongo.Database, error) {
	dbName, err := DatabaseName(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create mongo client: %w", domain.ErrConnection, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%w: ping mongo: %w", domain.ErrConnection, err)
	}

	return client, client.Database(dbName), nil
}

// DatabaseName resolves the target database: explicit config first, then the
// URI path, then "test". The URI is only split, never resolved, so
// mongodb+srv hosts are not looked up here; DNS failures surface from Connect
// as connection errors.
func DatabaseName(cfg config.StoreConfig) (string, error) {
	if name := strings.TrimSpace(cfg.Database); name != "" {
		return name, nil
	}

	uri := strings.TrimSpace(cfg.URI)
	var rest string
	switch lower := strings.ToLower(uri); {
	case strings.HasPrefix(lower, "mongodb+srv://"):
		rest = uri[len("mongodb+srv://"):]
	case strings.HasPrefix(lower, "mongodb://"):
		rest = uri[len("mongodb://"):]
	default:
		return "", domain.NewConfigError("MONGO_URI", "scheme must be mongodb:// or mongodb+srv://")
	}

	// Hosts may be a comma-separated list, so the authority is cut at the
	// first slash instead of being parsed as a URL.
	_, path, found := strings.Cut(rest, "/")
	if !found {
		return defaultDatabase, nil
	}
	path, _, _ = strings.Cut(path, "?")

	name, err := url.PathUnescape(path)
	if err != nil {
		return "", domain.NewConfigError("MONGO_URI", fmt.Sprintf("invalid database name: %v", err))
	}
	if name == "" {
		return defaultDatabase, nil
	}
	return name, nil
}
