package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-webpages/internal/config"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestParseArgs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := config.ParseArgs(nil, env(nil))
		require.NoError(t, err)
		require.Equal(t, "localhost:8080", opts.Port)
		require.Equal(t, "http://localhost:8080", opts.BaseURL)
		require.Equal(t, "", opts.FilePath)
		require.False(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
		require.Equal(t, "config.json", opts.Config)
		require.Equal(t, config.BackendSimulated, opts.Backend)
		require.Equal(t, 10, opts.PageSize)
		require.Equal(t, 1500*time.Millisecond, opts.RefreshDelay)
		require.Equal(t, 300*time.Millisecond, opts.DeleteDelay)
		require.Equal(t, 300*time.Millisecond, opts.SearchDebounce)
	})

	t.Run("flags", func(t *testing.T) {
		opts, err := config.ParseArgs([]string{"-a", ":9000", "-backend", "grpc", "-delete-delay", "1s"}, env(nil))
		require.NoError(t, err)
		require.Equal(t, ":9000", opts.Port)
		require.Equal(t, config.BackendGRPC, opts.Backend)
		require.Equal(t, time.Second, opts.DeleteDelay)
	})

	t.Run("env overrides flags", func(t *testing.T) {
		opts, err := config.ParseArgs([]string{"-a", ":9000"}, env(map[string]string{
			"SERVER_ADDRESS":    "127.0.0.1:9999",
			"BASE_URL":          "http://example.com",
			"FILE_STORAGE_PATH": "/tmp/data",
			"ENABLE_HTTPS":      "true",
			"TRUSTED_SUBNET":    "192.168.0.0/24",
			"PAGE_SIZE":         "25",
			"SEARCH_DEBOUNCE":   "50ms",
		}))
		require.NoError(t, err)
		require.Equal(t, "127.0.0.1:9999", opts.Port)
		require.Equal(t, "http://example.com", opts.BaseURL)
		require.Equal(t, "/tmp/data", opts.FilePath)
		require.True(t, opts.EnableHTTPS)
		require.Equal(t, "192.168.0.0/24", opts.TrustedSubnet)
		require.Equal(t, 25, opts.PageSize)
		require.Equal(t, 50*time.Millisecond, opts.SearchDebounce)
	})

	t.Run("bad env", func(t *testing.T) {
		_, err := config.ParseArgs(nil, env(map[string]string{"ENABLE_HTTPS": "maybe"}))
		require.Error(t, err)

		_, err = config.ParseArgs(nil, env(map[string]string{"REFRESH_DELAY": "soon"}))
		require.Error(t, err)
	})

	t.Run("json file overrides", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "cfg.json")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`{
			"server_address": "10.0.0.1:8081",
			"base_url": "http://testhost",
			"file_storage_path": "/config/path",
			"database_dsn": "postgres://test",
			"enable_pprof": true,
			"enable_https": true,
			"trusted_subnet": "10.10.0.0/16",
			"refresh_delay": "2s"
		}`), 0o644))

		opts, err := config.ParseArgs(nil, env(map[string]string{"CONFIG": cfgPath, "SERVER_ADDRESS": ":1"}))
		require.NoError(t, err)
		require.Equal(t, "10.0.0.1:8081", opts.Port)
		require.Equal(t, "http://testhost", opts.BaseURL)
		require.Equal(t, "/config/path", opts.FilePath)
		require.Equal(t, "postgres://test", opts.DatabaseDSN)
		require.True(t, opts.EnablePprof)
		require.True(t, opts.EnableHTTPS)
		require.Equal(t, "10.10.0.0/16", opts.TrustedSubnet)
		require.Equal(t, 2*time.Second, opts.RefreshDelay)
		require.Equal(t, "info", opts.LogLevel)
	})

	t.Run("yaml file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("effects_backend: http\nredis_addr: localhost:6379\npage_size: 5\n"), 0o644))

		opts, err := config.ParseArgs([]string{"-c", cfgPath}, env(nil))
		require.NoError(t, err)
		require.Equal(t, config.BackendHTTP, opts.Backend)
		require.Equal(t, "localhost:6379", opts.RedisAddr)
		require.Equal(t, 5, opts.PageSize)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.ParseArgs([]string{"-c", filepath.Join(t.TempDir(), "nope.json")}, env(nil))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := config.ParseArgs([]string{"-backend", "carrier-pigeon"}, env(nil))
		require.Error(t, err)

		_, err = config.ParseArgs([]string{"-page-size", "0"}, env(nil))
		require.Error(t, err)
	})
}
