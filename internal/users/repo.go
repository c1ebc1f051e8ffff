package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
)

// Repository exposes user persistence operations over the users collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository constructs a users repo bound to the persistence gateway.
func NewRepository(client *db.Client) *Repository {
	return &Repository{col: client.Collection(db.CollectionUsers)}
}

// Insert persists a new user document.
func (r *Repository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

// FindByEmail retrieves the user matching the email, soft-deleted included.
// Email uniqueness survives deletion, so callers must not filter deleted_at.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by id, soft-deleted included.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByID loads a non-deleted user by id.
func (r *Repository) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"id": id, "deleted_at": nil}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin refreshes the user's last_login timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

// Replace overwrites the stored document matching the user id.
func (r *Repository) Replace(ctx context.Context, user *models.User) error {
	result, err := r.col.ReplaceOne(ctx, bson.M{"id": user.ID}, user)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
