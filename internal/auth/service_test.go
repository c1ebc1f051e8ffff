package auth

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	pkgAuth "github.com/luckbank/luckbank-backend/pkg/auth"
	"github.com/luckbank/luckbank-backend/pkg/auth/revocation"
	"github.com/luckbank/luckbank-backend/pkg/config"
	"github.com/luckbank/luckbank-backend/pkg/db/models"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
	"github.com/luckbank/luckbank-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:              "secret",
		Issuer:              "luckbank",
		AccessTokenMinutes:  15,
		RefreshTokenMinutes: 43200,
	}
}

func TestServiceLoginIssuesTokenPair(t *testing.T) {
	password := "customer-secret"
	user := testUser(t, "maria@example.com", password)
	svc, repo := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Maria@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %s", resp.TokenType)
	}

	accessClaims, err := pkgAuth.ParseToken(testJWTConfig(), resp.AccessToken, pkgAuth.TokenKindAccess)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	refreshClaims, err := pkgAuth.ParseToken(testJWTConfig(), resp.RefreshToken, pkgAuth.TokenKindRefresh)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if accessClaims.UserID() != user.ID || refreshClaims.UserID() != user.ID {
		t.Fatal("expected both tokens to carry the user id as subject")
	}
	if accessClaims.ID != refreshClaims.ID {
		t.Fatal("expected access and refresh tokens to share one jti")
	}
	if repo.lastLogin == nil {
		t.Fatal("expected last_login bump on login")
	}
}

func TestServiceLoginBadCredentials(t *testing.T) {
	user := testUser(t, "maria@example.com", "correct-password")
	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "whatever-password",
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestServiceRefreshMintsNewAccessToken(t *testing.T) {
	password := "customer-secret"
	user := testUser(t, "maria@example.com", password)
	svc, _ := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := pkgAuth.ParseToken(testJWTConfig(), refreshed.AccessToken, pkgAuth.TokenKindAccess)
	if err != nil {
		t.Fatalf("parse refreshed access token: %v", err)
	}
	if claims.UserID() != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.UserID())
	}
}

func TestServiceRefreshRejectsAccessToken(t *testing.T) {
	password := "customer-secret"
	user := testUser(t, "maria@example.com", password)
	svc, _ := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for access token on refresh, got %v", err)
	}
}

func TestServiceLogoutRevokesSessionJTI(t *testing.T) {
	password := "customer-secret"
	user := testUser(t, "maria@example.com", password)
	svc, _ := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}

	if err := svc.Logout(context.Background(), login.RefreshToken); err == nil {
		t.Fatal("expected second logout with revoked token to fail")
	}
}

func TestServiceRefreshDeletedUserFails(t *testing.T) {
	password := "customer-secret"
	user := testUser(t, "maria@example.com", password)
	svc, repo := buildTestService(t, user)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	deletedAt := time.Now().UTC()
	repo.user.DeletedAt = &deletedAt

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for deleted user, got %v", err)
	}
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubUserRepo) {
	t.Helper()
	repo := &stubUserRepo{user: user}
	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		Denylist:  revocation.NewMemory(),
		JWTConfig: testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func testUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		Base:         models.NewBase(time.Now().UTC()),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
}

type stubUserRepo struct {
	user      *models.User
	lastLogin *time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.lastLogin = &at
	}
	return nil
}
