package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

const auditCollection = "catalog_events"

// AuditRepository appends catalog mutations to the catalog_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup index on (entity, entity_id, at).
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "at", Value: -1},
		},
		Options: options.Index().SetName("entity_history"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

// Record persists one audit entry.
func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	if _, err := r.coll.InsertOne(ctx, auditDocument(entry)); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func auditDocument(entry domain.AuditEntry) bson.M {
	doc := bson.M{
		"entity":    entry.Entity,
		"entity_id": int64(entry.EntityID),
		"action":    string(entry.Action),
		"at":        entry.At.UTC(),
	}
	if entry.Label != "" {
		doc["label"] = entry.Label
	}
	return doc
}
