package models

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the timestamped-identity fields shared by every collection
// document. DeletedAt is nil while the record is active; soft delete is the
// only deletion mechanism.
type Base struct {
	ID        string     `bson:"id" json:"id"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// NewBase seeds identity and timestamps for a freshly created record.
func NewBase(now time.Time) Base {
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDeleted reports whether the record has been soft-deleted.
func (b Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Touch bumps the updated_at timestamp.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}
