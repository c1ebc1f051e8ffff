package accounts

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
)

// Repository exposes bank-account persistence operations over the
// user_bank_accounts collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs an account repo bound to the persistence gateway.
func NewRepository(client *db.Client) *Repository {
	return &Repository{col: client.Collection(db.CollectionBankAccounts)}
}

// Insert persists a new bank-account document.
func (r *Repository) Insert(ctx context.Context, account *models.BankAccount) error {
	_, err := r.col.InsertOne(ctx, account)
	return err
}

// ListActiveByUser returns all non-deleted accounts owned by the user.
func (r *Repository) ListActiveByUser(ctx context.Context, userID string) ([]models.BankAccount, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID, "deleted_at": nil})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := []models.BankAccount{}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindByIDForUser returns the account matching both id and owner, including
// soft-deleted records, or mongo.ErrNoDocuments.
func (r *Repository) FindByIDForUser(ctx context.Context, userID, id string) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := r.col.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Replace overwrites the stored document matching the account id.
func (r *Repository) Replace(ctx context.Context, account *models.BankAccount) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"id": account.ID}, account)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
