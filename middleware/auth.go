package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "authenticated_user"

var errInvalidToken = errors.New("invalid or expired token")

// Authenticate guards mutating endpoints with a bearer token issued by
// the login endpoint.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := subjectFromRequest(r, secret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "invalid or missing authentication token"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated subject, empty when the
// request did not pass through Authenticate.
func UserFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(userContextKey).(string)
	return subject
}

func subjectFromRequest(r *http.Request, secret []byte) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errInvalidToken
	}
	rawToken, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", errInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}
