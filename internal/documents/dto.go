package documents

import (
	"time"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
)

// CreateDocumentRequest is the payload for registering an identity document.
type CreateDocumentRequest struct {
	DocumentType   enums.DocumentType `json:"document_type" validate:"required,oneof=CPF CNPJ RG CNH PASSPORT"`
	DocumentNumber string             `json:"document_number" validate:"required"`
}

// UpdateDocumentRequest carries a partial merge; nil fields are left untouched.
type UpdateDocumentRequest struct {
	DocumentType   *enums.DocumentType `json:"document_type,omitempty" validate:"omitempty,oneof=CPF CNPJ RG CNH PASSPORT"`
	DocumentNumber *string             `json:"document_number,omitempty"`
}

func (c CreateDocumentRequest) toModel(userID string, now time.Time) *models.Document {
	return &models.Document{
		Base:           models.NewBase(now),
		UserID:         userID,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
	}
}

func (u UpdateDocumentRequest) applyTo(document *models.Document) {
	if u.DocumentType != nil {
		document.DocumentType = *u.DocumentType
	}
	if u.DocumentNumber != nil {
		document.DocumentNumber = *u.DocumentNumber
	}
}
