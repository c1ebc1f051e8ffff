package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/luckbank/luckbank-backend/api/responses"
	pkgAuth "github.com/luckbank/luckbank-backend/pkg/auth"
	"github.com/luckbank/luckbank-backend/pkg/auth/revocation"
	"github.com/luckbank/luckbank-backend/pkg/config"
	pkgerrors "github.com/luckbank/luckbank-backend/pkg/errors"
	"github.com/luckbank/luckbank-backend/pkg/logger"
)

// UserVerifier confirms the token subject still maps to a usable account.
type UserVerifier interface {
	// VerifyActive returns a coded error when the user is missing, soft
	// deleted or deactivated.
	VerifyActive(ctx context.Context, userID string) error
}

// Auth validates a bearer access token, rejects revoked token ids and seeds
// the request context with the authenticated user.
func Auth(cfg config.JWTConfig, denylist revocation.Store, users UserVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseToken(cfg, token, pkgAuth.TokenKindAccess)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing token id"))
				return
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check token revocation"))
					return
				}
				if revoked {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token revoked"))
					return
				}
			}

			if users != nil {
				if err := users.VerifyActive(r.Context(), claims.UserID()); err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID())
			ctx = WithTokenID(ctx, claims.ID)

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
