package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"movie-catalog-api/internal/model"
)

const (
	DefaultAdminEmail    = "kaezvem@admin.com"
	DefaultAdminPassword = "123456"
	DefaultAdminName     = "Admin"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	JWTAccessSecret         string
	JWTRefreshSecret        string
	JWTAccessTTL            time.Duration
	JWTRefreshTTL           time.Duration
	BcryptCost              int
	HashConcurrency         int
	Admin                   AdminIdentity
	CORSOrigins             []string
	TrustedProxies          []netip.Prefix
	RateLimitRPM            int
	AuthRateLimitRPM        int
	LogLevel                slog.Level
}

// AdminIdentity is the account Admin Bootstrap creates or promotes when no
// administrator exists. Defaulted reports whether the email or password fell
// back to the built-in development values.
type AdminIdentity struct {
	Email     string
	Password  string
	Name      string
	Defaulted bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "4000"),
		ServerReadHeaderTimeout: env.getDuration("SERVER_READ_HEADER_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:      env.getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       env.getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          env.getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(env.getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(env.getInt("DB_MIN_CONNS", 1)),
		JWTAccessSecret:         strings.TrimSpace(os.Getenv("JWT_ACCESS_SECRET")),
		JWTRefreshSecret:        strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET")),
		JWTAccessTTL:            env.getDuration("JWT_ACCESS_TTL", 15*time.Minute),
		JWTRefreshTTL:           env.getDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		BcryptCost:              env.getInt("BCRYPT_COST", 10),
		HashConcurrency:         env.getInt("HASH_CONCURRENCY", runtime.GOMAXPROCS(0)),
		Admin:                   loadAdminIdentity(),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TrustedProxies:          env.getPrefixes("TRUSTED_PROXIES"),
		RateLimitRPM:            env.getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:        env.getInt("AUTH_RATE_LIMIT_RPM", 10),
		LogLevel:                env.getLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the process cannot safely run with. Missing
// signing secrets wrap model.ErrConfiguration so callers can abort startup.
func (c *Config) Validate() error {
	if c.JWTAccessSecret == "" {
		return fmt.Errorf("%w: JWT_ACCESS_SECRET is required", model.ErrConfiguration)
	}

	if c.JWTRefreshSecret == "" {
		return fmt.Errorf("%w: JWT_REFRESH_SECRET is required", model.ErrConfiguration)
	}

	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return fmt.Errorf("%w: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ", model.ErrConfiguration)
	}

	if c.JWTAccessTTL <= 0 || c.JWTRefreshTTL <= 0 {
		return fmt.Errorf("%w: token TTLs must be positive", model.ErrConfiguration)
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required", model.ErrConfiguration)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.HashConcurrency <= 0 {
		return fmt.Errorf("HASH_CONCURRENCY must be positive")
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MAX_CONNS/DB_MIN_CONNS are out of range")
	}

	return nil
}

// WithDefaults fills unset fields with the built-in development identity.
func (a AdminIdentity) WithDefaults() AdminIdentity {
	a.Email = strings.TrimSpace(a.Email)
	a.Name = strings.TrimSpace(a.Name)

	if a.Email == "" {
		a.Email = DefaultAdminEmail
		a.Defaulted = true
	}
	if a.Password == "" {
		a.Password = DefaultAdminPassword
		a.Defaulted = true
	}
	if a.Name == "" {
		a.Name = DefaultAdminName
	}

	return a
}

func loadAdminIdentity() AdminIdentity {
	return AdminIdentity{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
		Name:     os.Getenv("ADMIN_NAME"),
	}.WithDefaults()
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

// envReader parses typed variables and collects every malformed value so
// Load can report them together instead of silently using defaults.
type envReader struct {
	errs []error
}

func (e *envReader) fail(key string, raw string, want string) {
	e.errs = append(e.errs, fmt.Errorf("%w: %s=%q is not %s", model.ErrConfiguration, key, raw, want))
}

func (e *envReader) getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(key, raw, "an integer")
		return fallback
	}

	return v
}

func (e *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		e.fail(key, raw, "a duration such as 15m or 168h")
		return fallback
	}

	return v
}

func (e *envReader) getLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		e.fail(key, raw, "a log level")
		return fallback
	}

	return level
}

// getPrefixes reads a CSV of CIDRs or bare addresses.
func (e *envReader) getPrefixes(key string) []netip.Prefix {
	entries := splitCSV(os.Getenv(key))
	out := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			e.fail(key, entry, "a CIDR or IP address")
			continue
		}
		out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}

	return out
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
