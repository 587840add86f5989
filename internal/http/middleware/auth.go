package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/peterayad-eng/nexus-job-board-api/internal/authz"
	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
	"github.com/peterayad-eng/nexus-job-board-api/internal/domain/user"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/response"
	"github.com/peterayad-eng/nexus-job-board-api/internal/security"
)

type contextKey string

const ContextPrincipalKey contextKey = "principal"

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := m.principalFromHeader(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !p.Authenticated() {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// Optional attaches a principal when a valid token is present and lets the
// request through anonymously otherwise. Malformed tokens are still
// rejected so a client never silently loses its session.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := m.principalFromHeader(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

func (m *AuthMiddleware) principalFromHeader(r *http.Request) (authz.Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return authz.Principal{}, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return authz.Principal{}, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil)
	}
	claims, err := m.jwt.ParseAccess(parts[1])
	if err != nil {
		return authz.Principal{}, common.NewError(common.CodeUnauthorized, "invalid token", err)
	}
	userID, err := common.ParseUUID(claims.UserID)
	if err != nil {
		return authz.Principal{}, common.NewError(common.CodeUnauthorized, "invalid user id", err)
	}
	return authz.Principal{
		ID:      userID,
		Role:    user.Role(strings.ToLower(claims.Role)),
		IsStaff: claims.IsStaff,
	}, nil
}

func withPrincipal(ctx context.Context, p authz.Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

// PrincipalFromContext returns the acting principal; the zero value stands
// for an anonymous request.
func PrincipalFromContext(ctx context.Context) authz.Principal {
	p, _ := ctx.Value(ContextPrincipalKey).(authz.Principal)
	return p
}
