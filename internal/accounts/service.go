package accounts

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
)

// Service defines the behavior needed by the bank-account controller.
type Service interface {
	Create(ctx context.Context, userID string, req CreateAccountRequest) (*models.BankAccount, error)
	ListByUser(ctx context.Context, userID string) ([]models.BankAccount, error)
	GetByID(ctx context.Context, userID, accountID string) (*models.BankAccount, error)
	Update(ctx context.Context, userID, accountID string, req UpdateAccountRequest) (*models.BankAccount, error)
	SoftDelete(ctx context.Context, userID, accountID string) error
}

type repository interface {
	Insert(ctx context.Context, account *models.BankAccount) error
	ListActiveByUser(ctx context.Context, userID string) ([]models.BankAccount, error)
	FindByIDForUser(ctx context.Context, userID, id string) (*models.BankAccount, error)
	Replace(ctx context.Context, account *models.BankAccount) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build an account service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a bank-account service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{repo: params.Repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Create opens an account record with generated account/agency numbers and
// PENDING status. Generated values are never regenerated on read or update.
func (s *service) Create(ctx context.Context, userID string, req CreateAccountRequest) (*models.BankAccount, error) {
	account := req.toModel(userID, s.now(), generateAccountNumber(), generateAccountDigit())
	if err := s.repo.Insert(ctx, account); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert account")
	}
	return account, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]models.BankAccount, error) {
	list, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list accounts")
	}
	return list, nil
}

func (s *service) GetByID(ctx context.Context, userID, accountID string) (*models.BankAccount, error) {
	account, err := s.repo.FindByIDForUser(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find account")
	}
	return account, nil
}

// Update changes the account type. Only accounts currently typed SALARY may
// be retyped; anything else fails with InvalidOperation.
func (s *service) Update(ctx context.Context, userID, accountID string, req UpdateAccountRequest) (*models.BankAccount, error) {
	account, err := s.GetByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if account.AccountType != enums.AccountTypeSalary {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidOperation, "only salary accounts can change type").
			WithDetails(map[string]any{"account_type": account.AccountType})
	}

	account.AccountType = req.AccountType
	account.Touch(s.now())

	if err := s.repo.Replace(ctx, account); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update account")
	}
	return account, nil
}

func (s *service) SoftDelete(ctx context.Context, userID, accountID string) error {
	account, err := s.GetByID(ctx, userID, accountID)
	if err != nil {
		return err
	}

	now := s.now()
	account.DeletedAt = &now
	account.Touch(now)

	if err := s.repo.Replace(ctx, account); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete account")
	}
	return nil
}

func generateAccountNumber() int {
	return rand.Intn(900000) + 100000
}

func generateAccountDigit() int {
	return rand.Intn(10)
}
