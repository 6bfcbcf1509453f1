package config

import (
	"errors"
	"os"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	DBURL          string
	RedisAddress   string
	SymmetricKey   string
	ServerAddress  string
	AllowedOrigins []string
}

// Load reads the configuration from environment variables. DB_URL,
// REDIS_URL and SYMMETRIC_KEY are mandatory.
func Load() (*AppConfig, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}

	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	symmetricKey := os.Getenv("SYMMETRIC_KEY")
	if len(symmetricKey) != 32 {
		return nil, errors.New("SYMMETRIC_KEY must be exactly 32 bytes long")
	}

	serverAddress := os.Getenv("SERVER_ADDRESS")
	if serverAddress == "" {
		serverAddress = ":8930"
	}

	origins := []string{"http://localhost:3000"}
	if extra := os.Getenv("ALLOWED_ORIGIN"); extra != "" {
		origins = append(origins, extra)
	}

	return &AppConfig{
		DBURL:          dbURL,
		RedisAddress:   redisAddress,
		SymmetricKey:   symmetricKey,
		ServerAddress:  serverAddress,
		AllowedOrigins: origins,
	}, nil
}
