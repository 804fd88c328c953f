package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. It is loaded once at startup
// and never mutated afterwards; handlers and middleware receive it by
// value at construction.
type Config struct {
	Env        string // application environment (dev/test/prod)
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host
	DBPort     string // database port
	DBName     string // database name
	JWTSecret  string // secret used to sign and verify auth tokens
	BcryptCost int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment. A .env file is
// applied first when present. Missing required variables are fatal.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       must("APP_PORT"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		JWTSecret:  must("JWT_SECRET"),
		BcryptCost: mustInt("BCRYPT_COST"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() with integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
