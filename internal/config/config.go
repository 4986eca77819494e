package config

import (
	"errors"
	"os"
	"strconv"
)

// DefaultTokenExpireMinutes is the access token lifetime used when the
// environment does not override it.
const DefaultTokenExpireMinutes = 30

// Config holds application level configuration loaded from environment
// variables. It is built once at startup and passed by reference; nothing
// reads the environment after Load returns.
type Config struct {
	ServerPort         string
	MySQLDSN           string
	RedisAddr          string
	RedisDB            int
	RedisPass          string
	JWTSecret          string
	JWTAlgorithm       string
	TokenExpireMinutes int
	SwaggerHost        string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		MySQLDSN:           getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/taskhub?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-key-change-in-production"),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		TokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", DefaultTokenExpireMinutes),
		SwaggerHost:        os.Getenv("SWAGGER_HOST"),
	}
}

// Validate checks invariants that must hold before the process is allowed to
// serve traffic. A failing config prevents startup.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.MySQLDSN == "" {
		return errors.New("MYSQL_DSN must not be empty")
	}
	if c.TokenExpireMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.JWTAlgorithm != "HS256" {
		return errors.New("JWT_ALGORITHM must be HS256")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
