package addresses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
)

// Service defines the behavior needed by the address controller.
type Service interface {
	Create(ctx context.Context, userID string, req CreateAddressRequest) (*models.Address, error)
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	GetByID(ctx context.Context, userID, addressID string) (*models.Address, error)
	Update(ctx context.Context, userID, addressID string, req UpdateAddressRequest) (*models.Address, error)
	SoftDelete(ctx context.Context, userID, addressID string) error
}

type repository interface {
	Insert(ctx context.Context, address *models.Address) error
	FindActiveByNaturalKey(ctx context.Context, userID, street, number, zipCode string) (*models.Address, error)
	FindDeletedByNaturalKey(ctx context.Context, userID, street, number, zipCode string) (*models.Address, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.Address, error)
	FindByIDForUser(ctx context.Context, userID, id string) (*models.Address, error)
	Replace(ctx context.Context, address *models.Address) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build an address service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs an address service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("address repository is required")
	}
	return &service{repo: params.Repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Create registers an address. An active record with the same natural key
// fails with AlreadyExists carrying the conflicting record; a soft-deleted
// match is reactivated instead of inserting a duplicate.
func (s *service) Create(ctx context.Context, userID string, req CreateAddressRequest) (*models.Address, error) {
	existing, err := s.repo.FindActiveByNaturalKey(ctx, userID, req.Street, req.Number, req.ZipCode)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup address")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyExists, "address already registered").WithDetails(existing)
	}

	deleted, err := s.repo.FindDeletedByNaturalKey(ctx, userID, req.Street, req.Number, req.ZipCode)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup deleted address")
	}
	if deleted != nil {
		deleted.DeletedAt = nil
		deleted.Touch(s.now())
		if err := s.repo.Replace(ctx, deleted); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reactivate address")
		}
		return deleted, nil
	}

	address := req.toModel(userID, s.now())
	if err := s.repo.Insert(ctx, address); err != nil {
		// A concurrent create can slip past the lookup; the unique
		// natural-key index reports it as a duplicate key.
		if mongo.IsDuplicateKeyError(err) {
			return nil, pkgerrors.New(pkgerrors.CodeAlreadyExists, "address already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert address")
	}
	return address, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	list, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return list, nil
}

func (s *service) GetByID(ctx context.Context, userID, addressID string) (*models.Address, error) {
	address, err := s.repo.FindByIDForUser(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find address")
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, userID, addressID string, req UpdateAddressRequest) (*models.Address, error) {
	address, err := s.GetByID(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	req.applyTo(address)
	address.Touch(s.now())

	if err := s.repo.Replace(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
	}
	return address, nil
}

func (s *service) SoftDelete(ctx context.Context, userID, addressID string) error {
	address, err := s.GetByID(ctx, userID, addressID)
	if err != nil {
		return err
	}

	now := s.now()
	address.DeletedAt = &now
	address.Touch(now)

	if err := s.repo.Replace(ctx, address); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete address")
	}
	return nil
}
