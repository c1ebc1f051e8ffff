package models

import "github.com/luckbank/luckbank-backend/pkg/enums"

// Document is an identity document owned by a user.
type Document struct {
	Base           `bson:",inline"`
	UserID         string             `bson:"user_id" json:"user_id"`
	DocumentType   enums.DocumentType `bson:"document_type" json:"document_type"`
	DocumentNumber string             `bson:"document_number" json:"document_number"`
}
