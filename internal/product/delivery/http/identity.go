package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/pkg/auth"
	"github.com/tair/catalog-service/pkg/logger"
)

// Requester is the caller identity resolved for one request. A zero ID
// means anonymous. Authenticated is set only when the identity came from a
// validated bearer token.
type Requester struct {
	ID            uint
	Role          domain.Role
	Authenticated bool
}

type requesterKey struct{}

func withRequester(ctx context.Context, r Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, r)
}

// RequesterFromContext returns the resolved identity, or an anonymous BUYER.
func RequesterFromContext(ctx context.Context) Requester {
	if r, ok := ctx.Value(requesterKey{}).(Requester); ok {
		return r
	}
	return Requester{Role: domain.RoleBuyer}
}

// IdentityMiddleware resolves the requester. A valid bearer token wins;
// without one the userId (or adminId) and role query parameters are taken
// as already resolved upstream. A bearer token that fails validation is
// rejected rather than ignored.
func IdentityMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester, ok := requesterFromBearer(w, r, tokens)
			if !ok {
				return
			}
			if requester == nil {
				requester = requesterFromQuery(r)
			}

			logger.Debug(r.Context()).
				Uint("user_id", requester.ID).
				Str("role", requester.Role.String()).
				Msg("Requester resolved")

			next.ServeHTTP(w, r.WithContext(withRequester(r.Context(), *requester)))
		})
	}
}

// requesterFromBearer returns (nil, true) when no usable token is present
// and (nil, false) after answering 401 for an invalid one.
func requesterFromBearer(w http.ResponseWriter, r *http.Request, tokens *auth.TokenManager) (*Requester, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || tokens == nil {
		return nil, true
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
		return nil, false
	}
	claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Invalid token")
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}
	return &Requester{ID: claims.UserID, Role: domain.ParseRole(claims.Role), Authenticated: true}, true
}

func requesterFromQuery(r *http.Request) *Requester {
	q := r.URL.Query()
	raw := q.Get("userId")
	if raw == "" {
		raw = q.Get("adminId")
	}
	id, err := parseID(raw)
	if err != nil {
		id = 0
	}
	return &Requester{ID: id, Role: domain.ParseRole(q.Get("role"))}
}

// AdminOnly rejects requesters whose role is not ADMIN.
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester := RequesterFromContext(r.Context())
		if requester.Role != domain.RoleAdmin {
			logger.Warn(r.Context()).
				Str("role", requester.Role.String()).
				Msg("Admin access denied")
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}
}
