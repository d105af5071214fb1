package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/atinyakov/go-webpages/internal/app/service"
)

// ContextKey types values this package stores in a request context.
type ContextKey string

// UserIDKey holds the caller's user id.
const UserIDKey ContextKey = "userID"

// CookieName is the cookie carrying the JWT.
const CookieName = "token"

// InjectUserID returns req with userID stored in its context.
func InjectUserID(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

// UserID returns the user id stored by WithJWT.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// WithJWT identifies the caller by a bearer token or the token cookie. A
// bearer token must be valid. A missing or invalid cookie is replaced by a
// freshly issued one.
func WithJWT(auth service.AuthIface) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				claims, err := auth.ParseRawJWT(strings.TrimPrefix(header, "Bearer "))
				if err != nil {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, InjectUserID(r, claims.UserID))
				return
			}

			if cookie, err := r.Cookie(CookieName); err == nil {
				if claims, err := auth.ParseClaims(cookie); err == nil {
					next.ServeHTTP(w, InjectUserID(r, claims.UserID))
					return
				}
			}

			tokenString, userID, err := auth.BuildJWTString()
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    tokenString,
				Expires:  time.Now().Add(service.TokenExp),
				HttpOnly: true,
				Path:     "/",
			})
			next.ServeHTTP(w, InjectUserID(r, userID))
		})
	}
}
