package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultPort             = "8080"
	DefaultCSVPath          = "catalogo.csv"
	DefaultAssetRoot        = "."
	DefaultLogoPath         = "logos/clami-positivo_.jpg"
	DefaultCacheTTL         = 5 * time.Minute
	DefaultGridColumns      = 5
	DefaultImageBaseURL     = "https://raw.githubusercontent.com/mostruario/mostruario-digital-clami/main/"
	DefaultPlaceholderURL   = "https://placehold.co/400x300"
	DefaultProbeTTL         = 10 * time.Minute
	DefaultProbeTimeout     = 3 * time.Second
	DefaultPresignExpiry    = time.Hour
	DefaultDiagnosticsEvery = 15 * time.Minute
	DefaultConfigFile       = "config.toml"
)

// Config represents the complete configuration
type Config struct {
	Env     string        `toml:"env"`
	LogMode string        `toml:"log_mode"`
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	Images  ImageConfig   `toml:"images"`
	Redis   RedisConfig   `toml:"redis"`
	Minio   MinioConfig   `toml:"minio"`
	Jobs    JobsConfig    `toml:"jobs"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port string `toml:"port"`
}

// CatalogConfig contains the source file and display settings
type CatalogConfig struct {
	CSVPath     string        `toml:"csv_path"`
	AssetRoot   string        `toml:"asset_root"`
	LogoPath    string        `toml:"logo_path"`
	CacheTTL    time.Duration `toml:"cache_ttl"`
	GridColumns int           `toml:"grid_columns"`
}

// ImageConfig contains remote image and placeholder settings
type ImageConfig struct {
	BaseURL        string        `toml:"base_url"`
	PlaceholderURL string        `toml:"placeholder_url"`
	ProbeRemote    bool          `toml:"probe_remote"`
	ProbeTTL       time.Duration `toml:"probe_ttl"`
	ProbeTimeout   time.Duration `toml:"probe_timeout"`
}

// RedisConfig contains the optional shared cache. An empty Addr selects the in-process cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MinioConfig contains the optional object store used as the remote image tier
type MinioConfig struct {
	Endpoint      string        `toml:"endpoint"`
	AccessKey     string        `toml:"access_key"`
	SecretKey     string        `toml:"secret_key"`
	UseSSL        bool          `toml:"use_ssl"`
	Bucket        string        `toml:"bucket"`
	PresignExpiry time.Duration `toml:"presign_expiry"`
}

// Enabled reports whether MinIO should replace the base URL source
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != "" && m.Bucket != ""
}

// JobsConfig contains background job intervals. Zero disables the job.
type JobsConfig struct {
	RefreshInterval     time.Duration `toml:"refresh_interval"`
	DiagnosticsInterval time.Duration `toml:"diagnostics_interval"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Env:     "development",
		LogMode: "dev",
		Server:  ServerConfig{Port: DefaultPort},
		Catalog: CatalogConfig{
			CSVPath:     DefaultCSVPath,
			AssetRoot:   DefaultAssetRoot,
			LogoPath:    DefaultLogoPath,
			CacheTTL:    DefaultCacheTTL,
			GridColumns: DefaultGridColumns,
		},
		Images: ImageConfig{
			BaseURL:        DefaultImageBaseURL,
			PlaceholderURL: DefaultPlaceholderURL,
			ProbeTTL:       DefaultProbeTTL,
			ProbeTimeout:   DefaultProbeTimeout,
		},
		Minio: MinioConfig{PresignExpiry: DefaultPresignExpiry},
		Jobs: JobsConfig{
			RefreshInterval:     DefaultCacheTTL,
			DiagnosticsInterval: DefaultDiagnosticsEvery,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file named by CATALOG_CONFIG
// (or config.toml when present), then .env outside production, then the environment.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("CATALOG_CONFIG")
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if os.Getenv("ENV") != "production" {
		// A missing .env is fine; variables may come from the environment
		_ = godotenv.Load()
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over cfg
func LoadFile(filename string, cfg *Config) error {
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

// Validate rejects values the application cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.CSVPath) == "" {
		return errors.New("catalog csv path is required")
	}
	if c.Catalog.CacheTTL < 0 {
		return errors.New("catalog cache ttl cannot be negative")
	}
	if c.Catalog.GridColumns <= 0 {
		c.Catalog.GridColumns = DefaultGridColumns
	}
	if c.Images.ProbeTimeout <= 0 {
		c.Images.ProbeTimeout = DefaultProbeTimeout
	}
	if c.Minio.Enabled() && (c.Minio.AccessKey == "" || c.Minio.SecretKey == "") {
		return errors.New("minio endpoint and bucket set but credentials are missing")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	cfg.LogMode = envString("LOG_MODE", cfg.LogMode)

	// PORT from some platforms comes with a leading colon
	cfg.Server.Port = strings.TrimPrefix(envString("PORT", cfg.Server.Port), ":")

	cfg.Catalog.CSVPath = envString("CATALOG_CSV_PATH", cfg.Catalog.CSVPath)
	cfg.Catalog.AssetRoot = envString("CATALOG_ASSET_ROOT", cfg.Catalog.AssetRoot)
	cfg.Catalog.LogoPath = envString("CATALOG_LOGO_PATH", cfg.Catalog.LogoPath)

	cfg.Images.BaseURL = envString("IMAGE_BASE_URL", cfg.Images.BaseURL)
	cfg.Images.PlaceholderURL = envString("IMAGE_PLACEHOLDER_URL", cfg.Images.PlaceholderURL)

	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envString("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.Minio.Endpoint = envString("MINIO_ENDPOINT", cfg.Minio.Endpoint)
	cfg.Minio.AccessKey = envString("MINIO_ACCESS_KEY", cfg.Minio.AccessKey)
	cfg.Minio.SecretKey = envString("MINIO_SECRET_KEY", cfg.Minio.SecretKey)
	cfg.Minio.Bucket = envString("MINIO_BUCKET", cfg.Minio.Bucket)

	var err error
	if cfg.Catalog.CacheTTL, err = envDuration("CATALOG_CACHE_TTL", cfg.Catalog.CacheTTL); err != nil {
		return err
	}
	if cfg.Catalog.GridColumns, err = envInt("CATALOG_GRID_COLUMNS", cfg.Catalog.GridColumns); err != nil {
		return err
	}
	if cfg.Images.ProbeRemote, err = envBool("IMAGE_PROBE_REMOTE", cfg.Images.ProbeRemote); err != nil {
		return err
	}
	if cfg.Images.ProbeTTL, err = envDuration("IMAGE_PROBE_TTL", cfg.Images.ProbeTTL); err != nil {
		return err
	}
	if cfg.Images.ProbeTimeout, err = envDuration("IMAGE_PROBE_TIMEOUT", cfg.Images.ProbeTimeout); err != nil {
		return err
	}
	if cfg.Redis.DB, err = envInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return err
	}
	if cfg.Minio.UseSSL, err = envBool("MINIO_USE_SSL", cfg.Minio.UseSSL); err != nil {
		return err
	}
	if cfg.Jobs.RefreshInterval, err = envDuration("CATALOG_REFRESH_INTERVAL", cfg.Jobs.RefreshInterval); err != nil {
		return err
	}
	return nil
}

func envString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return i, nil
}

func envBool(name string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return b, nil
}

// envDuration accepts Go durations ("5m") or a plain number of seconds ("300")
func envDuration(name string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return d, nil
}
