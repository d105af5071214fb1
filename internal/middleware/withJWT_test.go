package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/mocks"
)

func TestInjectUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	newReq := InjectUserID(req, "abc123")

	require.Equal(t, "abc123", UserID(newReq.Context()))
	require.Empty(t, UserID(req.Context()))
}

func captureUser(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestWithJWT(t *testing.T) {
	t.Run("no token cookie generates a new token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		mockAuth.EXPECT().BuildJWTString().Return("mock-token", "generated-user-id", nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		var got string
		WithJWT(mockAuth)(captureUser(&got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "generated-user-id", got)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, "mock-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("valid token cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		mockAuth.EXPECT().ParseClaims(gomock.Any()).Return(&service.Claims{UserID: "existing-user-id"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "valid-token"})
		rec := httptest.NewRecorder()

		var got string
		WithJWT(mockAuth)(captureUser(&got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "existing-user-id", got)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("invalid cookie is replaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		gomock.InOrder(
			mockAuth.EXPECT().ParseClaims(gomock.Any()).Return(nil, errors.New("invalid token")),
			mockAuth.EXPECT().BuildJWTString().Return("fresh-token", "fresh-user", nil),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "bad-token"})
		rec := httptest.NewRecorder()

		var got string
		WithJWT(mockAuth)(captureUser(&got)).ServeHTTP(rec, req)

		assert.Equal(t, "fresh-user", got)
		require.Len(t, rec.Result().Cookies(), 1)
		assert.Equal(t, "fresh-token", rec.Result().Cookies()[0].Value)
	})

	t.Run("bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		mockAuth.EXPECT().ParseRawJWT("abc").Return(&service.Claims{UserID: "bearer-user"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()

		var got string
		WithJWT(mockAuth)(captureUser(&got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bearer-user", got)
	})

	t.Run("invalid bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		mockAuth.EXPECT().ParseRawJWT("bad").Return(nil, errors.New("invalid"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called on error")
		})
		WithJWT(mockAuth)(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token generation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockAuth := mocks.NewMockAuthIface(ctrl)
		mockAuth.EXPECT().BuildJWTString().Return("", "", errors.New("fail"))

		rec := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called on error")
		})
		WithJWT(mockAuth)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
