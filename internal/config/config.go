// Package config reads the application settings from command-line flags,
// environment variables and an optional JSON or YAML file, in that order of
// precedence (the file wins).
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Effects backends.
const (
	BackendSimulated = "simulated"
	BackendHTTP      = "http"
	BackendGRPC      = "grpc"
)

const defaultConfigPath = "config.json"

// Options holds the configuration values for the application.
type Options struct {
	// Port is the HTTP listening address (ip:port).
	Port string `json:"server_address" yaml:"server_address"`

	// BaseURL is the REST API root used by the HTTP effects backend.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// FilePath is the JSON-lines storage file.
	FilePath string `json:"file_storage_path" yaml:"file_storage_path"`

	// DatabaseDSN is the postgres connection string.
	DatabaseDSN string `json:"database_dsn" yaml:"database_dsn"`

	// SQLitePath is the SQLite database file.
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`

	// RedisAddr enables the record cache when set.
	RedisAddr string `json:"redis_addr" yaml:"redis_addr"`

	EnablePprof bool `json:"enable_pprof" yaml:"enable_pprof"`
	EnableHTTPS bool `json:"enable_https" yaml:"enable_https"`

	// TrustedSubnet guards the internal endpoints (CIDR).
	TrustedSubnet string `json:"trusted_subnet" yaml:"trusted_subnet"`

	GRPCPort string `json:"grpc_port" yaml:"grpc_port"`

	// Backend selects where effects send their work: simulated, http or grpc.
	Backend string `json:"effects_backend" yaml:"effects_backend"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	JWTSecret string `json:"jwt_secret" yaml:"jwt_secret"`

	PageSize       int           `json:"page_size" yaml:"page_size"`
	RefreshDelay   time.Duration `json:"-" yaml:"-"`
	DeleteDelay    time.Duration `json:"-" yaml:"-"`
	SearchDebounce time.Duration `json:"-" yaml:"-"`

	// Config is the path of the configuration file.
	Config string `json:"-" yaml:"-"`
}

// fileOptions mirrors Options for decoding; nil fields were absent from the file.
type fileOptions struct {
	Port           *string `json:"server_address" yaml:"server_address"`
	BaseURL        *string `json:"base_url" yaml:"base_url"`
	FilePath       *string `json:"file_storage_path" yaml:"file_storage_path"`
	DatabaseDSN    *string `json:"database_dsn" yaml:"database_dsn"`
	SQLitePath     *string `json:"sqlite_path" yaml:"sqlite_path"`
	RedisAddr      *string `json:"redis_addr" yaml:"redis_addr"`
	EnablePprof    *bool   `json:"enable_pprof" yaml:"enable_pprof"`
	EnableHTTPS    *bool   `json:"enable_https" yaml:"enable_https"`
	TrustedSubnet  *string `json:"trusted_subnet" yaml:"trusted_subnet"`
	GRPCPort       *string `json:"grpc_port" yaml:"grpc_port"`
	Backend        *string `json:"effects_backend" yaml:"effects_backend"`
	LogLevel       *string `json:"log_level" yaml:"log_level"`
	JWTSecret      *string `json:"jwt_secret" yaml:"jwt_secret"`
	PageSize       *int    `json:"page_size" yaml:"page_size"`
	RefreshDelay   *string `json:"refresh_delay" yaml:"refresh_delay"`
	DeleteDelay    *string `json:"delete_delay" yaml:"delete_delay"`
	SearchDebounce *string `json:"search_debounce" yaml:"search_debounce"`
}

// Parse reads the process arguments and environment.
func Parse() (*Options, error) {
	return ParseArgs(os.Args[1:], os.Getenv)
}

// ParseArgs reads args (without the program name) and the environment
// through getenv.
func ParseArgs(args []string, getenv func(string) string) (*Options, error) {
	o := &Options{}

	flags := flag.NewFlagSet("webpages", flag.ContinueOnError)
	flags.StringVar(&o.Port, "a", "localhost:8080", "run on ip:port server")
	flags.StringVar(&o.BaseURL, "b", "http://localhost:8080", "REST API base url")
	flags.StringVar(&o.FilePath, "f", "", "path to storage file")
	flags.StringVar(&o.DatabaseDSN, "d", "", "db address")
	flags.StringVar(&o.SQLitePath, "l", "", "path to sqlite database")
	flags.StringVar(&o.RedisAddr, "r", "", "redis address for the record cache")
	flags.BoolVar(&o.EnablePprof, "p", false, "enable pprof")
	flags.BoolVar(&o.EnableHTTPS, "s", false, "enable https")
	flags.StringVar(&o.TrustedSubnet, "t", "", "trusted subnet (CIDR)")
	flags.StringVar(&o.GRPCPort, "g", "3200", "grpc port")
	flags.StringVar(&o.Backend, "backend", BackendSimulated, "effects backend: simulated, http or grpc")
	flags.StringVar(&o.LogLevel, "log", "info", "log level")
	flags.StringVar(&o.JWTSecret, "secret", "dev-secret-key", "jwt signing secret")
	flags.IntVar(&o.PageSize, "page-size", 10, "dashboard table page size")
	flags.DurationVar(&o.RefreshDelay, "refresh-delay", 1500*time.Millisecond, "simulated refresh delay")
	flags.DurationVar(&o.DeleteDelay, "delete-delay", 300*time.Millisecond, "simulated delete delay")
	flags.DurationVar(&o.SearchDebounce, "debounce", 300*time.Millisecond, "table search debounce")
	flags.StringVar(&o.Config, "c", defaultConfigPath, "path to config file")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := o.applyEnv(getenv); err != nil {
		return nil, err
	}

	if err := o.applyFile(); err != nil {
		return nil, err
	}

	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Options) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"SERVER_ADDRESS":    &o.Port,
		"BASE_URL":          &o.BaseURL,
		"FILE_STORAGE_PATH": &o.FilePath,
		"DATABASE_DSN":      &o.DatabaseDSN,
		"SQLITE_PATH":       &o.SQLitePath,
		"REDIS_ADDR":        &o.RedisAddr,
		"TRUSTED_SUBNET":    &o.TrustedSubnet,
		"GRPC_PORT":         &o.GRPCPort,
		"EFFECTS_BACKEND":   &o.Backend,
		"LOG_LEVEL":         &o.LogLevel,
		"JWT_SECRET":        &o.JWTSecret,
		"CONFIG":            &o.Config,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"ENABLE_PPROF": &o.EnablePprof,
		"ENABLE_HTTPS": &o.EnableHTTPS,
	}
	for key, dst := range bools {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = b
		}
	}

	if v := getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PAGE_SIZE: %w", err)
		}
		o.PageSize = n
	}

	durations := map[string]*time.Duration{
		"REFRESH_DELAY":   &o.RefreshDelay,
		"DELETE_DELAY":    &o.DeleteDelay,
		"SEARCH_DEBOUNCE": &o.SearchDebounce,
	}
	for key, dst := range durations {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}

func (o *Options) applyFile() error {
	if o.Config == "" {
		return nil
	}

	data, err := os.ReadFile(o.Config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && o.Config == defaultConfigPath {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", o.Config, err)
	}

	var f fileOptions
	switch strings.ToLower(filepath.Ext(o.Config)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", o.Config, err)
	}

	set(&o.Port, f.Port)
	set(&o.BaseURL, f.BaseURL)
	set(&o.FilePath, f.FilePath)
	set(&o.DatabaseDSN, f.DatabaseDSN)
	set(&o.SQLitePath, f.SQLitePath)
	set(&o.RedisAddr, f.RedisAddr)
	set(&o.EnablePprof, f.EnablePprof)
	set(&o.EnableHTTPS, f.EnableHTTPS)
	set(&o.TrustedSubnet, f.TrustedSubnet)
	set(&o.GRPCPort, f.GRPCPort)
	set(&o.Backend, f.Backend)
	set(&o.LogLevel, f.LogLevel)
	set(&o.JWTSecret, f.JWTSecret)
	set(&o.PageSize, f.PageSize)

	for _, d := range []struct {
		dst *time.Duration
		src *string
	}{
		{&o.RefreshDelay, f.RefreshDelay},
		{&o.DeleteDelay, f.DeleteDelay},
		{&o.SearchDebounce, f.SearchDebounce},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("config: %s: %w", o.Config, err)
		}
		*d.dst = v
	}
	return nil
}

func (o *Options) validate() error {
	switch o.Backend {
	case BackendSimulated, BackendHTTP, BackendGRPC:
	default:
		return fmt.Errorf("config: unknown effects backend %q", o.Backend)
	}
	if o.PageSize < 1 {
		return fmt.Errorf("config: page size must be positive, got %d", o.PageSize)
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
