package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		cfg, err := LoadConfig()

		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrMissingDatabaseURL)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://board@localhost/board?sslmode=disable")
		t.Setenv("SESSION_SECRET_KEY", "")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("BCRYPT_COST", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, 25, cfg.DB.MaxOpenConns)
		assert.Equal(t, 5, cfg.DB.MaxIdleConns)
		assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
		assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
		assert.NotEmpty(t, cfg.Session.SecretKey)
		assert.False(t, cfg.Session.Secure)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://board@db/board")
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SESSION_SECRET_KEY", "top-secret")
		t.Setenv("SESSION_DURATION", "1h")
		t.Setenv("SESSION_SECURE", "true")
		t.Setenv("BCRYPT_COST", "4")
		t.Setenv("DB_CONN_MAX_LIFETIME", "not-a-duration")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "postgres://board@db/board", cfg.DB.URL)
		assert.Equal(t, 9000, cfg.ServerPort)
		assert.Equal(t, "top-secret", cfg.Session.SecretKey)
		assert.Equal(t, time.Hour, cfg.Session.Duration)
		assert.True(t, cfg.Session.Secure)
		assert.Equal(t, 4, cfg.BcryptCost)
		assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://board@db/board")
		t.Setenv("BCRYPT_COST", "99")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	})
}

func TestLoadSession_SecretKeyLength(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = saved })

	tests := []struct {
		name     string
		secret   string
		wantWarn bool
	}{
		{name: "short", secret: "top-secret", wantWarn: true},
		{name: "long enough", secret: strings.Repeat("k", MinSecretKeyLength), wantWarn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			t.Setenv("SESSION_SECRET_KEY", tt.secret)

			session := LoadSession()

			assert.Equal(t, tt.secret, session.SecretKey)
			if tt.wantWarn {
				assert.Contains(t, buf.String(), "SESSION_SECRET_KEY is short")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}

	t.Run("generated key is long enough", func(t *testing.T) {
		buf.Reset()
		t.Setenv("SESSION_SECRET_KEY", "")

		session := LoadSession()

		assert.GreaterOrEqual(t, len(session.SecretKey), MinSecretKeyLength)
		assert.NotContains(t, buf.String(), "SESSION_SECRET_KEY is short")
	})
}
