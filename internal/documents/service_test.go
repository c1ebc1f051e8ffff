package documents

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luckbank/luckbank-backend/pkg/db/models"
	"github.com/luckbank/luckbank-backend/pkg/enums"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
)

func TestServiceCreateInsertsDocument(t *testing.T) {
	repo := newStubDocumentRepo()
	svc := mustBuildService(t, repo)

	created, err := svc.Create(context.Background(), "user-1", CreateDocumentRequest{
		DocumentType:   enums.DocumentTypeCPF,
		DocumentNumber: "111.222.333-44",
	})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.records))
	}
}

func TestServiceCreateActiveDuplicateFails(t *testing.T) {
	repo := newStubDocumentRepo()
	svc := mustBuildService(t, repo)

	existing := seedDocument(repo, "user-1", enums.DocumentTypeCPF, "111.222.333-44", false)

	_, err := svc.Create(context.Background(), "user-1", CreateDocumentRequest{
		DocumentType:   enums.DocumentTypeCPF,
		DocumentNumber: "111.222.333-44",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAlreadyExists {
		t.Fatalf("expected already exists error, got %v", err)
	}
	conflicting, ok := typed.Details().(*models.Document)
	if !ok || conflicting.ID != existing.ID {
		t.Fatalf("expected conflicting record in details, got %#v", typed.Details())
	}
}

func TestServiceCreateDuplicateInsertMapsToAlreadyExists(t *testing.T) {
	repo := newStubDocumentRepo()
	repo.insertErr = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	svc := mustBuildService(t, repo)

	_, err := svc.Create(context.Background(), "user-1", CreateDocumentRequest{
		DocumentType:   enums.DocumentTypeCPF,
		DocumentNumber: "111.222.333-44",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAlreadyExists {
		t.Fatalf("expected already exists for duplicate-key insert, got %v", err)
	}
}

func TestServiceCreateSingletonTypeRule(t *testing.T) {
	repo := newStubDocumentRepo()
	svc := mustBuildService(t, repo)

	// Another user already holds an active RG; the rule is collection-wide.
	seedDocument(repo, "user-2", enums.DocumentTypeRG, "12.345.678-9", false)

	_, err := svc.Create(context.Background(), "user-1", CreateDocumentRequest{
		DocumentType:   enums.DocumentTypeRG,
		DocumentNumber: "98.765.432-1",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSingleton {
		t.Fatalf("expected singleton violation, got %v", err)
	}
}

func TestServiceCreatePassportExemptFromSingletonRule(t *testing.T) {
	repo := newStubDocumentRepo()
	svc := mustBuildService(t, repo)

	seedDocument(repo, "user-2", enums.DocumentTypePassport, "AA000001", false)

	created, err := svc.Create(context.Background(), "user-1", CreateDocumentRequest{
		DocumentType:   enums.DocumentTypePassport,
		DocumentNumber: "BB000002",
	})
	if err != nil {
		t.Fatalf("create passport: %v", err)
	}
	if created.DocumentNumber != "BB000002" {
		t.Fatalf("unexpected document %s", created.DocumentNumber)
	}
}

func TestServiceCreateReactivatesSoftDeleted(t *testing.T) {
	repo := newStubDocumentRepo()
	svc := mustBuildService(t, repo)

	deleted := seedDocument(repo, "user-1", enums.DocumentTypeCNH, "00123456789", true)

	created, err := svc.Create(context.Background(), "user-1", CreateDocumentRequest{
		DocumentType:   enums.DocumentTypeCNH,
		DocumentNumber: "00123456789",
	})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if created.ID != deleted.ID {
		t.Fatalf("expected reactivation to keep id %s, got %s", deleted.ID, created.ID)
	}
	if created.DeletedAt != nil {
		t.Fatal("expected deleted_at cleared on reactivation")
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected no duplicate insert, got %d records", len(repo.records))
	}
}

func TestServiceListExcludesSoftDeleted(t *testing.T) {
	repo := newStubDocumentRepo()
	svc := mustBuildService(t, repo)

	seedDocument(repo, "user-1", enums.DocumentTypeCPF, "111.222.333-44", false)
	seedDocument(repo, "user-1", enums.DocumentTypePassport, "AA000001", true)

	list, err := svc.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 active document, got %d", len(list))
	}
}

func TestServiceSoftDeleteUnknownIDFails(t *testing.T) {
	svc := mustBuildService(t, newStubDocumentRepo())

	err := svc.SoftDelete(context.Background(), "user-1", "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func mustBuildService(t *testing.T, repo repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedDocument(repo *stubDocumentRepo, userID string, docType enums.DocumentType, number string, deleted bool) *models.Document {
	document := &models.Document{
		Base:           models.NewBase(time.Now().UTC()),
		UserID:         userID,
		DocumentType:   docType,
		DocumentNumber: number,
	}
	if deleted {
		at := time.Now().UTC()
		document.DeletedAt = &at
	}
	repo.records = append(repo.records, document)
	return document
}

type stubDocumentRepo struct {
	records   []*models.Document
	insertErr error
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{}
}

func (s *stubDocumentRepo) Insert(_ context.Context, document *models.Document) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.records = append(s.records, document)
	return nil
}

func (s *stubDocumentRepo) FindActiveByNaturalKey(_ context.Context, userID string, docType enums.DocumentType, number string) (*models.Document, error) {
	for _, record := range s.records {
		if record.UserID == userID && record.DocumentType == docType && record.DocumentNumber == number && record.DeletedAt == nil {
			return record, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubDocumentRepo) FindDeletedByNaturalKey(_ context.Context, userID string, docType enums.DocumentType, number string) (*models.Document, error) {
	for _, record := range s.records {
		if record.UserID == userID && record.DocumentType == docType && record.DocumentNumber == number && record.DeletedAt != nil {
			return record, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubDocumentRepo) CountActiveByType(_ context.Context, docType enums.DocumentType) (int64, error) {
	var count int64
	for _, record := range s.records {
		if record.DocumentType == docType && record.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *stubDocumentRepo) ListActiveByUser(_ context.Context, userID string) ([]models.Document, error) {
	list := []models.Document{}
	for _, record := range s.records {
		if record.UserID == userID && record.DeletedAt == nil {
			list = append(list, *record)
		}
	}
	return list, nil
}

func (s *stubDocumentRepo) FindByIDForUser(_ context.Context, userID, id string) (*models.Document, error) {
	for _, record := range s.records {
		if record.UserID == userID && record.ID == id {
			return record, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubDocumentRepo) Replace(_ context.Context, document *models.Document) error {
	for i, record := range s.records {
		if record.ID == document.ID {
			s.records[i] = document
			return nil
		}
	}
	return mongo.ErrNoDocuments
}
