// Package config loads application configuration from environment variables.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// minSecretKeyLen is the minimum accepted length of READTRACK_SECRET_KEY in bytes.
const minSecretKeyLen = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
	SecretKey  []byte
	SessionTTL time.Duration
	BcryptCost int

	// SecureCookies marks the web session cookie Secure. Enable behind TLS.
	SecureCookies bool

	// EphemeralSecret is true when SecretKey was generated at startup because
	// READTRACK_SECRET_KEY was unset. Sessions then do not survive a restart.
	EphemeralSecret bool
}

// Load reads configuration from environment variables and returns a validated Config.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment take precedence over it.
// Optional variables with defaults: READTRACK_LISTEN_ADDR (127.0.0.1:8080),
// READTRACK_DB_PATH (readtrack.db), READTRACK_SESSION_TTL (24h),
// READTRACK_BCRYPT_COST (bcrypt.DefaultCost), READTRACK_SECRET_KEY (random),
// READTRACK_SECURE_COOKIES (false).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("READTRACK_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "readtrack.db"
	if v, ok := os.LookupEnv("READTRACK_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	sessionTTL := 24 * time.Hour
	if v, ok := os.LookupEnv("READTRACK_SESSION_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("READTRACK_SESSION_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("READTRACK_SESSION_TTL must be positive, got %s", parsed)
		}
		sessionTTL = parsed
	}

	bcryptCost := bcrypt.DefaultCost
	if v, ok := os.LookupEnv("READTRACK_BCRYPT_COST"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("READTRACK_BCRYPT_COST has invalid value %q: %w", v, err)
		}
		if parsed < bcrypt.MinCost || parsed > bcrypt.MaxCost {
			return nil, fmt.Errorf("READTRACK_BCRYPT_COST must be between %d and %d, got %d",
				bcrypt.MinCost, bcrypt.MaxCost, parsed)
		}
		bcryptCost = parsed
	}

	secureCookies := false
	if v, ok := os.LookupEnv("READTRACK_SECURE_COOKIES"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("READTRACK_SECURE_COOKIES has invalid value %q: %w", v, err)
		}
		secureCookies = parsed
	}

	var secret []byte
	ephemeral := false
	if v, ok := os.LookupEnv("READTRACK_SECRET_KEY"); ok && v != "" {
		if len(v) < minSecretKeyLen {
			return nil, fmt.Errorf("READTRACK_SECRET_KEY must be at least %d bytes, got %d", minSecretKeyLen, len(v))
		}
		secret = []byte(v)
	} else {
		secret = make([]byte, minSecretKeyLen)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		ephemeral = true
	}

	return &Config{
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		SecretKey:       secret,
		SessionTTL:      sessionTTL,
		BcryptCost:      bcryptCost,
		SecureCookies:   secureCookies,
		EphemeralSecret: ephemeral,
	}, nil
}
