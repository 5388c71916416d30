package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ===== User identity =====

type userIDKey struct{}

// anonymousUser is the identity assigned to requests carrying no token.
// Generation endpoints stay open; per-user storage endpoints require a token.
const anonymousUser = "anonymous"

type identityClaims struct {
	jwt.RegisteredClaims
}

// AuthManager verifies HS256 bearer tokens and resolves the user id for a
// request. The token subject is the user id.
type AuthManager struct {
	secret []byte
}

func NewAuthManager(secret string) *AuthManager {
	return &AuthManager{secret: []byte(secret)}
}

// ParseFromRequest extracts and verifies the bearer token, returning the
// subject. Absence of a token is reported distinctly from an invalid one.
func (a *AuthManager) ParseFromRequest(r *http.Request) (string, error) {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return "", errMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		return "", errors.New("malformed authorization header")
	}
	return a.parse(strings.TrimSpace(hdr[7:]))
}

func (a *AuthManager) parse(tok string) (string, error) {
	claims := &identityClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token missing subject")
	}
	return claims.Subject, nil
}

var errMissingToken = errors.New("missing token")

// identityMiddleware resolves the caller's user id and stores it on the
// request context. Requests without a token proceed as anonymous; requests
// with a bad token are rejected.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := anonymousUser
		if s.auth != nil {
			sub, err := s.auth.ParseFromRequest(r)
			switch {
			case err == nil:
				userID = sub
			case errors.Is(err, errMissingToken):
				// anonymous is fine
			default:
				writeError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
				return
			}
		}
		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser rejects anonymous callers. Used on the per-user storage routes
// where data must be keyed to a real identity.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userIDFrom(r.Context()) == anonymousUser {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "bearer token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id
	}
	return anonymousUser
}
