package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultAccessCodeLength    = 8
	defaultAnalyticsWindowDays = 30
	defaultTokenTTLHours       = 24
	defaultGuestSessionHours   = 72
	defaultCommentListLimit    = 50
)

type Config struct {
	// database path (sqlite file)
	DatabasePath string

	// HTTP settings
	Port       string
	CORSOrigin string

	// token signing
	JWTSecret string
	TokenTTL  time.Duration

	// guest sessions expire after this duration; rotating a gallery access
	// code does not shorten sessions already created
	GuestSessionTTL time.Duration

	// access code generation
	AccessCodeLength int

	// analytics dashboard settings
	AnalyticsWindowDays int
	CommentListLimit    int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg := Config{
		DatabasePath:        getEnvOrDefault("DATABASE_PATH", "gallery.db"),
		Port:                getEnvOrDefault("PORT", "8080"),
		CORSOrigin:          getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		JWTSecret:           secret,
		TokenTTL:            time.Duration(getEnvIntOrDefault("TOKEN_TTL_HOURS", defaultTokenTTLHours)) * time.Hour,
		GuestSessionTTL:     time.Duration(getEnvIntOrDefault("GUEST_SESSION_TTL_HOURS", defaultGuestSessionHours)) * time.Hour,
		AccessCodeLength:    getEnvIntOrDefault("ACCESS_CODE_LENGTH", defaultAccessCodeLength),
		AnalyticsWindowDays: getEnvIntOrDefault("ANALYTICS_WINDOW_DAYS", defaultAnalyticsWindowDays),
		CommentListLimit:    getEnvIntOrDefault("COMMENT_LIST_LIMIT", defaultCommentListLimit),
	}

	return cfg, nil
}
