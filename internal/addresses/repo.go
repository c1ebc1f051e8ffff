package addresses

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
)

// Repository exposes address persistence operations over the user_addresses
// collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs an address repo bound to the persistence gateway.
func NewRepository(client *db.Client) *Repository {
	return &Repository{col: client.Collection(db.CollectionAddresses)}
}

// Insert persists a new address document.
func (r *Repository) Insert(ctx context.Context, address *models.Address) error {
	_, err := r.col.InsertOne(ctx, address)
	return err
}

// FindActiveByNaturalKey returns the non-deleted address matching the natural
// key, or mongo.ErrNoDocuments.
func (r *Repository) FindActiveByNaturalKey(ctx context.Context, userID, street, number, zipCode string) (*models.Address, error) {
	filter := bson.M{
		"user_id":    userID,
		"street":     street,
		"number":     number,
		"zip_code":   zipCode,
		"deleted_at": nil,
	}
	var address models.Address
	if err := r.col.FindOne(ctx, filter).Decode(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// FindDeletedByNaturalKey returns a soft-deleted address matching the natural
// key, or mongo.ErrNoDocuments.
func (r *Repository) FindDeletedByNaturalKey(ctx context.Context, userID, street, number, zipCode string) (*models.Address, error) {
	filter := bson.M{
		"user_id":    userID,
		"street":     street,
		"number":     number,
		"zip_code":   zipCode,
		"deleted_at": bson.M{"$ne": nil},
	}
	var address models.Address
	if err := r.col.FindOne(ctx, filter).Decode(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// ListActiveByUser returns all non-deleted addresses owned by the user.
func (r *Repository) ListActiveByUser(ctx context.Context, userID string) ([]models.Address, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID, "deleted_at": nil})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindByIDForUser returns the address matching both id and owner, including
// soft-deleted records, or mongo.ErrNoDocuments.
func (r *Repository) FindByIDForUser(ctx context.Context, userID, id string) (*models.Address, error) {
	var address models.Address
	if err := r.col.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// Replace overwrites the stored document matching the address id.
func (r *Repository) Replace(ctx context.Context, address *models.Address) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"id": address.ID}, address)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
