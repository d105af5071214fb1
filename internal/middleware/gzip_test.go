package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithGzipResponse(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		expectGzip     bool
	}{
		{"gzip accepted", "gzip", true},
		{"gzip among others", "deflate, gzip;q=0.8", true},
		{"no gzip accepted", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"title":"hello"}`))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/webpages", nil)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)

			rec := httptest.NewRecorder()
			WithGzipResponse(handler).ServeHTTP(rec, req)
			resp := rec.Result()
			defer resp.Body.Close()

			if !tt.expectGzip {
				assert.Empty(t, resp.Header.Get("Content-Encoding"))
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, `{"title":"hello"}`, string(body))
				return
			}

			assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
			gr, err := gzip.NewReader(resp.Body)
			require.NoError(t, err)
			defer gr.Close()
			unzipped, err := io.ReadAll(gr)
			require.NoError(t, err)
			assert.Equal(t, `{"title":"hello"}`, string(unzipped))
		})
	}
}

func TestWithGzipRequest(t *testing.T) {
	t.Run("valid gzip request", func(t *testing.T) {
		var bodyBuf bytes.Buffer
		gzw := gzip.NewWriter(&bodyBuf)
		_, _ = gzw.Write([]byte(`{"url":"https://go.dev"}`))
		require.NoError(t, gzw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/webpages", &bodyBuf)
		req.Header.Set("Content-Encoding", "gzip")

		var got string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			got = string(b)
			w.WriteHeader(http.StatusCreated)
		})

		rec := httptest.NewRecorder()
		WithGzipRequest(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, `{"url":"https://go.dev"}`, got)
	})

	t.Run("invalid gzip request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip data"))
		req.Header.Set("Content-Encoding", "gzip")

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called on invalid gzip")
		})

		rec := httptest.NewRecorder()
		WithGzipRequest(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to decompress")
	})

	t.Run("plain body untouched", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			assert.Equal(t, "plain", string(b))
		})
		WithGzip(handler).ServeHTTP(httptest.NewRecorder(), req)
	})
}
