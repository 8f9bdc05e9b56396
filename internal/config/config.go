package config

import (
	"encoding/base64"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// MinSecretKeyLength is the shortest SESSION_SECRET_KEY accepted without a warning.
const MinSecretKeyLength = 32

type DB struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type Session struct {
	SecretKey string
	Duration  time.Duration
	Secure    bool
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort      int
	DB              DB
	Session         Session
	Log             Log
	BcryptCost      int
	ShutdownTimeout time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func LoadDB() DB {
	return DB{
		URL:             getEnv("DATABASE_URL", ""),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadSession() Session {
	secret := getEnv("SESSION_SECRET_KEY", "")
	if secret == "" {
		// sessions will not survive a restart
		log.Warn().Msg("SESSION_SECRET_KEY is not set, generating a random key")
		secret = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(MinSecretKeyLength))
	} else if len(secret) < MinSecretKeyLength {
		log.Warn().
			Int("length", len(secret)).
			Int("min_length", MinSecretKeyLength).
			Msg("SESSION_SECRET_KEY is short, session cookies are easier to forge")
	}

	return Session{
		SecretKey: secret,
		Duration:  getEnvDuration("SESSION_DURATION", 14*24*time.Hour),
		Secure:    getEnvBool("SESSION_SECURE", false),
	}
}

// LoadConfig reads the process environment, optionally seeded from a .env file.
// A missing DATABASE_URL is the only fatal condition.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	cfg := &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		DB:         LoadDB(),
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		BcryptCost:      parseBcryptCost(getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost)),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	if cfg.DB.URL == "" {
		return nil, ErrMissingDatabaseURL
	}

	cfg.Session = LoadSession()

	return cfg, nil
}

func parseBcryptCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}
