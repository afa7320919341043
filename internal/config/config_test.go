package config

import (
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"JWT_SECRET": "s"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.AppPort != "8080" || cfg.DisconnectPolicy != DisconnectStall || cfg.SendBuffer != 256 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.APIRateLimit != 60 || cfg.APIRateWindow != time.Minute {
		t.Fatalf("unexpected rate limit defaults: %d / %s", cfg.APIRateLimit, cfg.APIRateWindow)
	}
	if cfg.LogLevel != "info" || cfg.LogJSON {
		t.Fatalf("unexpected log defaults: %s %v", cfg.LogLevel, cfg.LogJSON)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET":              "s",
		"APP_PORT":                "9000",
		"DISCONNECT_POLICY":       "Forfeit",
		"API_RATE_LIMIT":          "5",
		"API_RATE_WINDOW_SECONDS": "10",
		"REDIS_ADDR":              "localhost:6379",
		"REDIS_DB":                "2",
		"LOG_JSON":                "true",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.AppPort != "9000" || cfg.DisconnectPolicy != DisconnectForfeit {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.APIRateLimit != 5 || cfg.APIRateWindow != 10*time.Second || cfg.RedisDB != 2 || !cfg.LogJSON {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestFromEnvErrors(t *testing.T) {
	cases := []map[string]string{
		{},
		{"JWT_SECRET": "s", "DISCONNECT_POLICY": "pause"},
		{"JWT_SECRET": "s", "API_RATE_LIMIT": "many"},
		{"JWT_SECRET": "s", "SEND_BUFFER": "-1"},
	}
	for _, vars := range cases {
		if _, err := FromEnv(env(vars)); err == nil {
			t.Fatalf("FromEnv(%v): expected error", vars)
		}
	}
}
