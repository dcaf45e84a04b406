package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	appName      = "dealership"
	dialTimeout  = 10 * time.Second
	closeTimeout = 5 * time.Second
)

// Config holds the audit trail connection settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store is an open audit database together with the client that owns it.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Open dials MongoDB, waits for a primary and prepares the activity
// indexes so the first write does not pay for them.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(dialCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Store{Client: client, DB: db}, nil
}

// Ping reports whether the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, bounded by a short timeout.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
