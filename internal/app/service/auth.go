package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AuthIface is used by the HTTP middleware and the gRPC interceptor.
type AuthIface interface {
	BuildJWTString() (string, string, error)
	ParseClaims(c *http.Cookie) (*Claims, error)
	ParseRawJWT(tokenString string) (*Claims, error)
}

// Claims are the JWT claims issued to a visitor.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenExp is how long an issued token stays valid.
const TokenExp = time.Hour * 24 * 365

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid token or claims")

// Auth issues and verifies HS256 tokens signed with a shared secret.
type Auth struct {
	secret []byte
	now    func() time.Time
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret), now: time.Now}
}

// BuildJWTString issues a token for a fresh anonymous user id and returns the
// signed token and that id.
func (a *Auth) BuildJWTString() (string, string, error) {
	userID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(a.now().Add(TokenExp)),
			IssuedAt:  jwt.NewNumericDate(a.now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", "", err
	}
	return tokenString, userID, nil
}

// ParseClaims verifies the token carried by the cookie.
func (a *Auth) ParseClaims(c *http.Cookie) (*Claims, error) {
	if c == nil {
		return nil, ErrInvalidToken
	}
	return a.ParseRawJWT(c.Value)
}

func (a *Auth) ParseRawJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
