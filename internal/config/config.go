package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Store         string
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Server        ServerConfig
	Log           LogConfig
	Seed          SeedConfig
	DefaultTenant string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
	Migrate  bool
}

// RedisConfig holds Redis connection settings. An empty Addr disables
// board event streaming.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// JWTConfig holds JWT authentication settings.
type JWTConfig struct {
	Secret     string //nolint:gosec // G117: JWT signing secret config
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// SeedConfig controls the sample data loaded into an empty store.
type SeedConfig struct {
	Enabled bool
	File    string
}

// Load reads configuration from environment variables, after merging the
// dotenv file named by TEAMBOARD_ENV_FILE (default ".env"). Variables already
// present in the environment win over the file.
// Defaults are safe for local development only.
func Load() (*Config, error) {
	err := loadDotEnv(getEnv("TEAMBOARD_ENV_FILE", ".env"))
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbPort, err := getEnvInt("TEAMBOARD_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("TEAMBOARD_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMigrate, err := getEnvBool("TEAMBOARD_DB_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("TEAMBOARD_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("TEAMBOARD_JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	refreshTTL, err := getEnvDuration("TEAMBOARD_JWT_REFRESH_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("TEAMBOARD_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("TEAMBOARD_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rps, err := getEnvFloat("TEAMBOARD_RATE_LIMIT_RPS", 20)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	burst, err := getEnvInt("TEAMBOARD_RATE_LIMIT_BURST", 40)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	seed, err := getEnvBool("TEAMBOARD_SEED", true)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Store: strings.ToLower(getEnv("TEAMBOARD_STORE", StoreMemory)),
		Database: DatabaseConfig{
			Host:     getEnv("TEAMBOARD_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("TEAMBOARD_DB_USER", "teamboard"),
			Password: getEnv("TEAMBOARD_DB_PASSWORD", ""),
			DBName:   getEnv("TEAMBOARD_DB_NAME", "teamboard_dev"),
			SSLMode:  getEnv("TEAMBOARD_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
			Migrate:  dbMigrate,
		},
		Redis: RedisConfig{
			Addr:     getEnv("TEAMBOARD_REDIS_ADDR", ""),
			Password: getEnv("TEAMBOARD_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:     getEnv("TEAMBOARD_JWT_SECRET", ""),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Server: ServerConfig{
			Addr:           getEnv("TEAMBOARD_SERVER_ADDR", ":8080"),
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			CORSOrigins:    getEnvList("TEAMBOARD_CORS_ORIGINS", []string{"http://localhost:5173"}),
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("TEAMBOARD_LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("TEAMBOARD_LOG_FORMAT", "json")),
		},
		Seed: SeedConfig{
			Enabled: seed,
			File:    getEnv("TEAMBOARD_SEED_FILE", ""),
		},
		DefaultTenant: strings.ToLower(getEnv("TEAMBOARD_DEFAULT_TENANT", "acme")),
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("TEAMBOARD_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("TEAMBOARD_JWT_SECRET must be at least 32 characters")
	}

	switch c.Store {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("TEAMBOARD_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store)
	}

	if c.Store == StorePostgres && c.Database.SSLMode == "disable" {
		log.Warn().Msg("TEAMBOARD_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("TEAMBOARD_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("TEAMBOARD_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("TEAMBOARD_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("TEAMBOARD_JWT_REFRESH_TTL must be positive, got %s", c.JWT.RefreshTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("TEAMBOARD_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("TEAMBOARD_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("TEAMBOARD_RATE_LIMIT_RPS must be positive, got %g", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("TEAMBOARD_RATE_LIMIT_BURST must be >= 1, got %d", c.Server.RateLimitBurst)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("TEAMBOARD_LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}

	if c.DefaultTenant == "" {
		return errors.New("TEAMBOARD_DEFAULT_TENANT must not be empty")
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the connection string in URL form, as golang-migrate expects.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// loadDotEnv merges a dotenv file into the process environment. A missing
// file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
