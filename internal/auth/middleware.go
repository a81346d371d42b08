package auth

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"roombooking/internal/repository"
)

// Claims is the authenticated identity attached to a request.
type Claims struct {
	UserID        int
	Email         string
	Authorisation bool
}

type contextKey struct{}

// FromContext returns the claims attached by AuthMiddleware, or nil.
func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(contextKey{}).(*Claims)
	return c
}

// AuthMiddleware verifies the bearer token and attaches its claims to the
// request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := parseToken(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
	})
}

// AdminMiddleware additionally requires the caller's authorisation flag. The
// flag is re-read from the store on every request so a revoked admin loses
// access immediately, not when their token expires.
func AdminMiddleware(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := FromContext(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			user, err := users.GetByID(claims.UserID)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil || !user.Authorisation {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseToken(r *http.Request) (*Claims, bool) {
	var tokenStr string
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	} else {
		// EventSource cannot set request headers, so the SSE endpoint
		// receives its token as a query parameter.
		tokenStr = r.URL.Query().Get("token")
	}
	if tokenStr == "" {
		return nil, false
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, false
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	claims := &Claims{}
	if uid, ok := mapClaims["uid"].(float64); ok {
		claims.UserID = int(uid)
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if authorised, ok := mapClaims["authorisation"].(bool); ok {
		claims.Authorisation = authorised
	}
	if claims.UserID == 0 {
		return nil, false
	}
	return claims, true
}
