package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	URI      string
	Database string
	// Timeout bounds connecting and index creation. Defaults to 10s.
	Timeout time.Duration
}

// AuditStore owns the client behind the audit trail.
type AuditStore struct {
	*AuditRepository
	client *mongo.Client
}

// Open connects to cfg.URI, waits for the primary to answer and makes sure
// the audit indexes exist.
func Open(ctx context.Context, cfg Config) (*AuditStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	store := &AuditStore{
		AuditRepository: NewAuditRepository(client.Database(cfg.Database)),
		client:          client,
	}

	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

func (s *AuditStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *AuditStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
