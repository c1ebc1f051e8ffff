package documents

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
)

// Repository exposes document persistence operations over the user_documents
// collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a document repo bound to the persistence gateway.
func NewRepository(client *db.Client) *Repository {
	return &Repository{col: client.Collection(db.CollectionDocuments)}
}

// Insert persists a new identity document.
func (r *Repository) Insert(ctx context.Context, document *models.Document) error {
	_, err := r.col.InsertOne(ctx, document)
	return err
}

// FindActiveByNaturalKey returns the non-deleted document matching the
// natural key, or mongo.ErrNoDocuments.
func (r *Repository) FindActiveByNaturalKey(ctx context.Context, userID string, docType enums.DocumentType, number string) (*models.Document, error) {
	filter := bson.M{
		"user_id":         userID,
		"document_type":   docType,
		"document_number": number,
		"deleted_at":      nil,
	}
	var document models.Document
	if err := r.col.FindOne(ctx, filter).Decode(&document); err != nil {
		return nil, err
	}
	return &document, nil
}

// FindDeletedByNaturalKey returns a soft-deleted document matching the
// natural key, or mongo.ErrNoDocuments.
func (r *Repository) FindDeletedByNaturalKey(ctx context.Context, userID string, docType enums.DocumentType, number string) (*models.Document, error) {
	filter := bson.M{
		"user_id":         userID,
		"document_type":   docType,
		"document_number": number,
		"deleted_at":      bson.M{"$ne": nil},
	}
	var document models.Document
	if err := r.col.FindOne(ctx, filter).Decode(&document); err != nil {
		return nil, err
	}
	return &document, nil
}

// CountActiveByType counts non-deleted documents of the given type across the
// whole collection.
func (r *Repository) CountActiveByType(ctx context.Context, docType enums.DocumentType) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"document_type": docType, "deleted_at": nil})
}

// ListActiveByUser returns all non-deleted documents owned by the user.
func (r *Repository) ListActiveByUser(ctx context.Context, userID string) ([]models.Document, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID, "deleted_at": nil})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	documents := []models.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// FindByIDForUser returns the document matching both id and owner, including
// soft-deleted records, or mongo.ErrNoDocuments.
func (r *Repository) FindByIDForUser(ctx context.Context, userID, id string) (*models.Document, error) {
	var document models.Document
	if err := r.col.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&document); err != nil {
		return nil, err
	}
	return &document, nil
}

// Replace overwrites the stored document matching the id.
func (r *Repository) Replace(ctx context.Context, document *models.Document) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"id": document.ID}, document)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
