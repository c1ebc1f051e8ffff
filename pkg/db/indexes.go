package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luckbank/luckbank-backend/pkg/logger"
)

// collectionIndexes declares each collection's natural-key index. The table
// is applied once at startup; CreateMany is idempotent on the server side.
var collectionIndexes = map[string][]mongo.IndexModel{
	CollectionUsers: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	},
	CollectionAddresses: {
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "street", Value: 1},
				{Key: "number", Value: 1},
				{Key: "zip_code", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	},
	CollectionDocuments: {
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "document_type", Value: 1},
				{Key: "document_number", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	},
	CollectionBankAccounts: {
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	},
}

// EnsureIndexes applies the declared index table to every collection.
func (c *Client) EnsureIndexes(ctx context.Context, logg *logger.Logger) error {
	for name, indexes := range collectionIndexes {
		if _, err := c.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensuring indexes for %s: %w", name, err)
		}
		if logg != nil {
			logg.Info(logg.WithCollection(ctx, name), "indexes ensured")
		}
	}
	return nil
}
