// Package config lee la configuración del proceso: primero .env (si existe),
// luego variables de entorno, con defaults para desarrollo local.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vet-practice-management/internal/domain/billing"

	"github.com/joho/godotenv"
)

type SessionBackend string

const (
	SessionMemory   SessionBackend = "memory"
	SessionSQLite   SessionBackend = "sqlite"
	SessionPostgres SessionBackend = "postgres"
	SessionRedis    SessionBackend = "redis"
)

type Config struct {
	Port      string
	AppName   string
	LogLevel  string
	LogFormat string

	SessionSecret     string
	SessionTTL        time.Duration
	SessionBackend    SessionBackend
	SessionSQLitePath string
	DatabaseDSN       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	TaxRate  float64
	Location *time.Location

	LoginRateRPS   float64
	LoginRateBurst int

	SeedData bool
}

// Load carga .env (opcional) y después el entorno. files vacío = ".env".
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var err error
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		AppName:           getEnv("APP_NAME", "vet-practice-management"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionBackend:    SessionBackend(strings.ToLower(getEnv("SESSION_BACKEND", string(SessionMemory)))),
		SessionSQLitePath: getEnv("SESSION_SQLITE_PATH", "sessions.db"),
		DatabaseDSN:       os.Getenv("DB_DSN"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = parseInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.TaxRate, err = parseFloat("TAX_RATE", billing.DefaultTaxRate); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateRPS, err = parseFloat("LOGIN_RATE_RPS", 1); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateBurst, err = parseInt("LOGIN_RATE_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.SeedData, err = parseBool("SEED_DATA", true); err != nil {
		return Config{}, err
	}

	tz := getEnv("CLINIC_TZ", "Local")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return Config{}, fmt.Errorf("CLINIC_TZ %q: %w", tz, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.TaxRate < 0 {
		return errors.New("TAX_RATE must be >= 0")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be > 0")
	}
	switch c.SessionBackend {
	case SessionMemory, SessionSQLite, SessionRedis:
	case SessionPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DB_DSN is required for SESSION_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}

func (c Config) Addr() string { return ":" + c.Port }

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func parseBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
