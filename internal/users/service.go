package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/internal/accounts"
	"github.com/luckbank/luckbank-backend/internal/addresses"
	"github.com/luckbank/luckbank-backend/internal/documents"
	"github.com/luckbank/luckbank-backend/pkg/config"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
	"github.com/luckbank/luckbank-backend/pkg/security"
)

// Service defines the behavior needed by the user controller and the auth
// middleware gate.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*CreateUserRequest, error)
	GetByID(ctx context.Context, userID string) (*UserDetails, error)
	Detail(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, req UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	VerifyActive(ctx context.Context, userID string) error
}

type repository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindActiveByID(ctx context.Context, id string) (*models.User, error)
	Replace(ctx context.Context, user *models.User) error
}

type addressCreator interface {
	Create(ctx context.Context, userID string, req addresses.CreateAddressRequest) (*models.Address, error)
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
}

type documentCreator interface {
	Create(ctx context.Context, userID string, req documents.CreateDocumentRequest) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
}

type accountCreator interface {
	Create(ctx context.Context, userID string, req accounts.CreateAccountRequest) (*models.BankAccount, error)
	ListByUser(ctx context.Context, userID string) ([]models.BankAccount, error)
}

type service struct {
	repo        repository
	addresses   addressCreator
	documents   documentCreator
	accounts    accountCreator
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build a user service.
type ServiceParams struct {
	Repo           repository
	Addresses      addressCreator
	Documents      documentCreator
	Accounts       accountCreator
	PasswordConfig config.PasswordConfig
}

// NewService constructs a user service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address service is required")
	}
	if params.Documents == nil {
		return nil, fmt.Errorf("document service is required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("account service is required")
	}
	return &service{
		repo:        params.Repo,
		addresses:   params.Addresses,
		documents:   params.Documents,
		accounts:    params.Accounts,
		passwordCfg: params.PasswordConfig,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create runs the onboarding workflow: credential validation, email
// uniqueness (soft-deleted users included), password hashing, nested
// address/document/account creation and finally the user insert. The nested
// writes are best effort; a failure partway through is propagated without
// compensating earlier inserts.
func (s *service) Create(ctx context.Context, req CreateUserRequest) (*CreateUserRequest, error) {
	minLength := s.passwordCfg.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if utf8.RuneCountInString(req.Password) < minLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minLength))
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password and confirm_password do not match")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user by email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyExists, "email already registered")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := req.toModel(hash, s.now())

	for _, addressReq := range req.Address {
		if _, err := s.addresses.Create(ctx, user.ID, addressReq); err != nil {
			return nil, err
		}
	}
	for _, documentReq := range req.Documents {
		if _, err := s.documents.Create(ctx, user.ID, documentReq); err != nil {
			return nil, err
		}
	}
	for _, accountReq := range req.Accounts {
		if _, err := s.accounts.Create(ctx, user.ID, accountReq); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		// The unique email index closes the race left by the lookup above.
		if mongo.IsDuplicateKeyError(err) {
			return nil, pkgerrors.New(pkgerrors.CodeAlreadyExists, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert user")
	}

	return req.echo(), nil
}

// GetByID assembles the composite view: the user record plus its active
// addresses, documents and accounts.
func (s *service) GetByID(ctx context.Context, userID string) (*UserDetails, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	addressList, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	documentList, err := s.documents.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	accountList, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserDetails{
		User:      user,
		Address:   addressList,
		Documents: documentList,
		Accounts:  accountList,
	}, nil
}

// Detail is the self view resolved from the token subject, without fan-out.
func (s *service) Detail(ctx context.Context, userID string) (*models.User, error) {
	return s.findUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.applyTo(user)
	user.Touch(s.now())

	if err := s.repo.Replace(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return user, nil
}

// Delete soft-deletes the user. Unlike the child collections, only an active
// user can be deleted; a second delete reports NotFound.
func (s *service) Delete(ctx context.Context, userID string) error {
	user, err := s.repo.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	now := s.now()
	user.DeletedAt = &now
	user.IsActive = false
	user.Touch(now)

	if err := s.repo.Replace(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete user")
	}
	return nil
}

// VerifyActive gates authenticated requests: the token subject must resolve
// to a user that is neither soft-deleted nor deactivated.
func (s *service) VerifyActive(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "user no longer exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user")
	}
	if user.IsDeleted() || !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is not active")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return user, nil
}
