package users

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/internal/accounts"
	"github.com/luckbank/luckbank-backend/internal/addresses"
	"github.com/luckbank/luckbank-backend/internal/documents"
	"github.com/luckbank/luckbank-backend/pkg/config"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
	"github.com/luckbank/luckbank-backend/pkg/security"
)

func validOnboardingRequest() CreateUserRequest {
	return CreateUserRequest{
		FirstName:       "Maria",
		LastName:        "Silva",
		Email:           "Maria.Silva@Example.com",
		Password:        "long-enough-password",
		ConfirmPassword: "long-enough-password",
		Phone:           "+55 11 99999-0000",
		Address: []addresses.CreateAddressRequest{{
			Street:       "Rua das Flores",
			Number:       "100",
			Neighborhood: "Centro",
			City:         "Sao Paulo",
			State:        "SP",
			Country:      "BR",
			ZipCode:      "01000-000",
		}},
		Documents: []documents.CreateDocumentRequest{{
			DocumentType:   enums.DocumentTypeCPF,
			DocumentNumber: "111.222.333-44",
		}},
		Accounts: []accounts.CreateAccountRequest{{
			AccountType: enums.AccountTypeChecking,
		}},
	}
}

func TestServiceCreateOnboardsUserWithNestedRecords(t *testing.T) {
	repo := newStubUserRepo()
	children := newStubChildren()
	svc := mustBuildService(t, repo, children)

	echoed, err := svc.Create(context.Background(), validOnboardingRequest())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if echoed.Password != "" || echoed.ConfirmPassword != "" {
		t.Fatal("expected credentials stripped from echoed request")
	}
	if echoed.Email != "Maria.Silva@Example.com" {
		t.Fatalf("expected request echoed back, got email %s", echoed.Email)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
	stored := repo.users[0]
	if stored.Email != "maria.silva@example.com" {
		t.Fatalf("expected lowercased email, got %s", stored.Email)
	}
	if stored.Status != enums.StatusPending || stored.IsActive {
		t.Fatalf("expected pending inactive user, got %s active=%v", stored.Status, stored.IsActive)
	}
	if ok, _ := security.VerifyPassword("long-enough-password", stored.PasswordHash); !ok {
		t.Fatal("expected stored hash to verify against the plaintext")
	}

	if len(children.addresses) != 1 || children.addresses[0].UserID != stored.ID {
		t.Fatalf("expected nested address owned by %s", stored.ID)
	}
	if len(children.documents) != 1 || children.documents[0].UserID != stored.ID {
		t.Fatalf("expected nested document owned by %s", stored.ID)
	}
	if len(children.accounts) != 1 || children.accounts[0].UserID != stored.ID {
		t.Fatalf("expected nested account owned by %s", stored.ID)
	}
}

func TestServiceCreatePasswordChecksRunBeforePersistence(t *testing.T) {
	repo := newStubUserRepo()
	children := newStubChildren()
	svc := mustBuildService(t, repo, children)

	short := validOnboardingRequest()
	short.Password = "short"
	short.ConfirmPassword = "short"
	_, err := svc.Create(context.Background(), short)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	mismatch := validOnboardingRequest()
	mismatch.ConfirmPassword = "different-password!"
	_, err = svc.Create(context.Background(), mismatch)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for mismatch, got %v", err)
	}

	if len(repo.users) != 0 || len(children.addresses) != 0 {
		t.Fatal("expected no writes when credential validation fails")
	}
}

func TestServiceCreatePasswordMinLengthCountsCharacters(t *testing.T) {
	repo := newStubUserRepo()
	children := newStubChildren()
	svc := mustBuildService(t, repo, children)

	// 5 characters but 10 bytes; the minimum counts characters.
	multibyte := validOnboardingRequest()
	multibyte.Password = "ééééé"
	multibyte.ConfirmPassword = "ééééé"
	_, err := svc.Create(context.Background(), multibyte)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for 5-character password, got %v", err)
	}
	if len(repo.users) != 0 || len(children.addresses) != 0 {
		t.Fatal("expected no writes for a too-short password")
	}

	longEnough := validOnboardingRequest()
	longEnough.Password = "éééééééé"
	longEnough.ConfirmPassword = "éééééééé"
	if _, err := svc.Create(context.Background(), longEnough); err != nil {
		t.Fatalf("expected 8-character password accepted, got %v", err)
	}
}

func TestServiceCreateDuplicateInsertMapsToAlreadyExists(t *testing.T) {
	repo := newStubUserRepo()
	repo.insertErr = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	svc := mustBuildService(t, repo, newStubChildren())

	_, err := svc.Create(context.Background(), validOnboardingRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAlreadyExists {
		t.Fatalf("expected already exists for duplicate-key insert, got %v", err)
	}
}

func TestServiceCreateEmailUniquenessSurvivesDeletion(t *testing.T) {
	repo := newStubUserRepo()
	svc := mustBuildService(t, repo, newStubChildren())

	deletedAt := time.Now().UTC()
	repo.users = append(repo.users, &models.User{
		Base:  models.Base{ID: "user-1", DeletedAt: &deletedAt},
		Email: "maria.silva@example.com",
	})

	_, err := svc.Create(context.Background(), validOnboardingRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAlreadyExists {
		t.Fatalf("expected already exists for soft-deleted email, got %v", err)
	}
}

func TestServiceGetByIDAssemblesComposite(t *testing.T) {
	repo := newStubUserRepo()
	children := newStubChildren()
	svc := mustBuildService(t, repo, children)

	if _, err := svc.Create(context.Background(), validOnboardingRequest()); err != nil {
		t.Fatalf("create user: %v", err)
	}
	userID := repo.users[0].ID

	details, err := svc.GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if details.User.ID != userID {
		t.Fatalf("expected user %s, got %s", userID, details.User.ID)
	}
	if len(details.Address) != 1 || len(details.Documents) != 1 || len(details.Accounts) != 1 {
		t.Fatalf("expected nested lists to match submission, got %d/%d/%d",
			len(details.Address), len(details.Documents), len(details.Accounts))
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc := mustBuildService(t, newStubUserRepo(), newStubChildren())

	_, err := svc.GetByID(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdateMergesNonNilFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := mustBuildService(t, repo, newStubChildren())

	repo.users = append(repo.users, &models.User{
		Base:      models.NewBase(time.Now().UTC()),
		FirstName: "Maria",
		LastName:  "Silva",
		Email:     "maria@example.com",
		Status:    enums.StatusPending,
	})

	newName := "Mariana"
	active := true
	updated, err := svc.Update(context.Background(), repo.users[0].ID, UpdateUserRequest{
		FirstName: &newName,
		IsActive:  &active,
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.FirstName != "Mariana" || !updated.IsActive {
		t.Fatalf("expected merged fields, got %s active=%v", updated.FirstName, updated.IsActive)
	}
	if updated.LastName != "Silva" {
		t.Fatalf("expected untouched last name, got %s", updated.LastName)
	}
}

func TestServiceDeleteVerifiesExistence(t *testing.T) {
	repo := newStubUserRepo()
	svc := mustBuildService(t, repo, newStubChildren())

	repo.users = append(repo.users, &models.User{
		Base:     models.NewBase(time.Now().UTC()),
		Email:    "maria@example.com",
		IsActive: true,
	})
	userID := repo.users[0].ID

	if err := svc.Delete(context.Background(), userID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if repo.users[0].DeletedAt == nil || repo.users[0].IsActive {
		t.Fatal("expected soft-deleted deactivated user")
	}

	// A second delete finds no active record.
	err := svc.Delete(context.Background(), userID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestServiceVerifyActive(t *testing.T) {
	repo := newStubUserRepo()
	svc := mustBuildService(t, repo, newStubChildren())

	repo.users = append(repo.users, &models.User{
		Base:     models.NewBase(time.Now().UTC()),
		Email:    "maria@example.com",
		IsActive: true,
	})
	userID := repo.users[0].ID

	if err := svc.VerifyActive(context.Background(), userID); err != nil {
		t.Fatalf("verify active: %v", err)
	}

	repo.users[0].IsActive = false
	err := svc.VerifyActive(context.Background(), userID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}

	err = svc.VerifyActive(context.Background(), "missing")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for missing user, got %v", err)
	}
}

func mustBuildService(t *testing.T, repo repository, children *stubChildren) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:           repo,
		Addresses:      &stubAddressCreator{children},
		Documents:      &stubDocumentCreator{children},
		Accounts:       &stubAccountCreator{children},
		PasswordConfig: config.PasswordConfig{MinLength: 8},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubUserRepo struct {
	users     []*models.User
	insertErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func (s *stubUserRepo) Insert(_ context.Context, user *models.User) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.users = append(s.users, user)
	return nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) FindActiveByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) Replace(_ context.Context, user *models.User) error {
	for i, stored := range s.users {
		if stored.ID == user.ID {
			s.users[i] = user
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// stubChildren records nested creates made during onboarding; thin typed
// wrappers below adapt it to the three creator interfaces.
type stubChildren struct {
	addresses []models.Address
	documents []models.Document
	accounts  []models.BankAccount
}

func newStubChildren() *stubChildren {
	return &stubChildren{}
}

type stubAddressCreator struct {
	children *stubChildren
}

func (s *stubAddressCreator) Create(_ context.Context, userID string, req addresses.CreateAddressRequest) (*models.Address, error) {
	address := models.Address{
		Base:         models.NewBase(time.Now().UTC()),
		UserID:       userID,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		ZipCode:      req.ZipCode,
	}
	s.children.addresses = append(s.children.addresses, address)
	return &address, nil
}

func (s *stubAddressCreator) ListByUser(_ context.Context, userID string) ([]models.Address, error) {
	list := []models.Address{}
	for _, record := range s.children.addresses {
		if record.UserID == userID {
			list = append(list, record)
		}
	}
	return list, nil
}

type stubDocumentCreator struct {
	children *stubChildren
}

func (s *stubDocumentCreator) Create(_ context.Context, userID string, req documents.CreateDocumentRequest) (*models.Document, error) {
	document := models.Document{
		Base:           models.NewBase(time.Now().UTC()),
		UserID:         userID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
	}
	s.children.documents = append(s.children.documents, document)
	return &document, nil
}

func (s *stubDocumentCreator) ListByUser(_ context.Context, userID string) ([]models.Document, error) {
	list := []models.Document{}
	for _, record := range s.children.documents {
		if record.UserID == userID {
			list = append(list, record)
		}
	}
	return list, nil
}

type stubAccountCreator struct {
	children *stubChildren
}

func (s *stubAccountCreator) Create(_ context.Context, userID string, req accounts.CreateAccountRequest) (*models.BankAccount, error) {
	account := models.BankAccount{
		Base:          models.NewBase(time.Now().UTC()),
		UserID:        userID,
		AccountType:   req.AccountType,
		AccountNumber: 123456,
		AccountDigit:  7,
		Agency:        "0001",
		Status:        enums.StatusPending,
	}
	s.children.accounts = append(s.children.accounts, account)
	return &account, nil
}

func (s *stubAccountCreator) ListByUser(_ context.Context, userID string) ([]models.BankAccount, error) {
	list := []models.BankAccount{}
	for _, record := range s.children.accounts {
		if record.UserID == userID {
			list = append(list, record)
		}
	}
	return list, nil
}
