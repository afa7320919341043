package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Disconnect policies for the player left behind in a room.
const (
	DisconnectStall   = "stall"
	DisconnectForfeit = "forfeit"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	JWTSecret     string
	AllowedOrigin string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	DisconnectPolicy string
	SendBuffer       int

	LogLevel string
	LogJSON  bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppPort:          getenv("APP_PORT"),
		DatabaseURL:      getenv("DATABASE_URL"),
		JWTSecret:        getenv("JWT_SECRET"),
		AllowedOrigin:    getenv("ALLOWED_ORIGIN"),
		RedisAddr:        getenv("REDIS_ADDR"),
		RedisPassword:    getenv("REDIS_PASSWORD"),
		DisconnectPolicy: strings.ToLower(strings.TrimSpace(getenv("DISCONNECT_POLICY"))),
		LogLevel:         getenv("LOG_LEVEL"),
		LogJSON:          getenv("LOG_JSON") == "true",
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	switch cfg.DisconnectPolicy {
	case "":
		cfg.DisconnectPolicy = DisconnectStall
	case DisconnectStall, DisconnectForfeit:
	default:
		return nil, fmt.Errorf("invalid DISCONNECT_POLICY %q (valid: %s, %s)",
			cfg.DisconnectPolicy, DisconnectStall, DisconnectForfeit)
	}

	var err error
	if cfg.RedisDB, err = intVar(getenv, "REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.APIRateLimit, err = intVar(getenv, "API_RATE_LIMIT", 60); err != nil {
		return nil, err
	}
	window, err := intVar(getenv, "API_RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.APIRateWindow = time.Duration(window) * time.Second
	if cfg.SendBuffer, err = intVar(getenv, "SEND_BUFFER", 256); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	v := getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}
