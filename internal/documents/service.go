package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
)

// Service defines the behavior needed by the document controller.
type Service interface {
	Create(ctx context.Context, userID string, req CreateDocumentRequest) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
	GetByID(ctx context.Context, userID, documentID string) (*models.Document, error)
	Update(ctx context.Context, userID, documentID string, req UpdateDocumentRequest) (*models.Document, error)
	SoftDelete(ctx context.Context, userID, documentID string) error
}

type repository interface {
	Insert(ctx context.Context, document *models.Document) error
	FindActiveByNaturalKey(ctx context.Context, userID string, docType enums.DocumentType, number string) (*models.Document, error)
	FindDeletedByNaturalKey(ctx context.Context, userID string, docType enums.DocumentType, number string) (*models.Document, error)
	CountActiveByType(ctx context.Context, docType enums.DocumentType) (int64, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.Document, error)
	FindByIDForUser(ctx context.Context, userID, id string) (*models.Document, error)
	Replace(ctx context.Context, document *models.Document) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build a document service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a document service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("document repository is required")
	}
	return &service{repo: params.Repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Create registers an identity document. Besides the per-user natural-key
// handling (AlreadyExists on an active match, reactivation on a soft-deleted
// one), document types outside PASSPORT/CNPJ are limited to a single active
// record in the entire collection.
func (s *service) Create(ctx context.Context, userID string, req CreateDocumentRequest) (*models.Document, error) {
	existing, err := s.repo.FindActiveByNaturalKey(ctx, userID, req.DocumentType, req.DocumentNumber)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup document")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyExists, "document already registered").WithDetails(existing)
	}

	if !req.DocumentType.Multiple() {
		count, err := s.repo.CountActiveByType(ctx, req.DocumentType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count documents by type")
		}
		if count > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeSingleton, fmt.Sprintf("a %s document is already registered", req.DocumentType))
		}
	}

	deleted, err := s.repo.FindDeletedByNaturalKey(ctx, userID, req.DocumentType, req.DocumentNumber)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup deleted document")
	}
	if deleted != nil {
		deleted.DeletedAt = nil
		deleted.Touch(s.now())
		if err := s.repo.Replace(ctx, deleted); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reactivate document")
		}
		return deleted, nil
	}

	document := req.toModel(userID, s.now())
	if err := s.repo.Insert(ctx, document); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, pkgerrors.New(pkgerrors.CodeAlreadyExists, "document already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert document")
	}
	return document, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	list, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}
	return list, nil
}

func (s *service) GetByID(ctx context.Context, userID, documentID string) (*models.Document, error) {
	document, err := s.repo.FindByIDForUser(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find document")
	}
	return document, nil
}

func (s *service) Update(ctx context.Context, userID, documentID string, req UpdateDocumentRequest) (*models.Document, error) {
	document, err := s.GetByID(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	req.applyTo(document)
	document.Touch(s.now())

	if err := s.repo.Replace(ctx, document); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update document")
	}
	return document, nil
}

func (s *service) SoftDelete(ctx context.Context, userID, documentID string) error {
	document, err := s.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}

	now := s.now()
	document.DeletedAt = &now
	document.Touch(now)

	if err := s.repo.Replace(ctx, document); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete document")
	}
	return nil
}
