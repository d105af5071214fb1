package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atinyakov/go-webpages/internal/app/service"
)

const page = `<!doctype html>
<html><head>
<title> Example &amp; Co </title>
<meta property="og:description" content="From open graph">
<meta name="Description" content="A <b>sample</b> page">
<script>document.title = "nope"</script>
</head><body><title>second</title></body></html>`

func TestInspector(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	})
	mux.HandleFunc("/og", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><meta property="og:description" content="only og"></head></html>`))
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"no"}`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	in := service.NewInspector(srv.Client(), zaptest.NewLogger(t))
	ctx := context.Background()

	t.Run("title and description", func(t *testing.T) {
		info, err := in.Inspect(ctx, srv.URL+"/page")
		require.NoError(t, err)
		assert.True(t, info.Reachable)
		assert.Equal(t, http.StatusOK, info.StatusCode)
		assert.Equal(t, "Example & Co", info.Title)
		assert.Equal(t, "A <b>sample</b> page", info.Description)
	})

	t.Run("og fallback", func(t *testing.T) {
		info, err := in.Inspect(ctx, srv.URL+"/og")
		require.NoError(t, err)
		assert.Empty(t, info.Title)
		assert.Equal(t, "only og", info.Description)
	})

	t.Run("not html", func(t *testing.T) {
		info, err := in.Inspect(ctx, srv.URL+"/json")
		require.NoError(t, err)
		assert.True(t, info.Reachable)
		assert.Empty(t, info.Title)
	})

	t.Run("not found", func(t *testing.T) {
		info, err := in.Inspect(ctx, srv.URL+"/missing")
		require.NoError(t, err)
		assert.False(t, info.Reachable)
		assert.Equal(t, http.StatusNotFound, info.StatusCode)
	})

	t.Run("unreachable", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		url := closed.URL
		closed.Close()

		_, err := in.Inspect(ctx, url)
		require.ErrorIs(t, err, service.ErrUnreachable)
	})
}

func TestServiceInspectSanitizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s, _ := newService(t, service.WithInspector(service.NewInspector(srv.Client(), nil)))

	info, err := s.Inspect(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example & Co", info.Title)
	assert.Equal(t, "A sample page", info.Description)

	_, err = s.Inspect(context.Background(), "javascript:alert(1)")
	require.ErrorIs(t, err, service.ErrValidation)
}
