package classicmatch

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidatesWithSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Secret = "s"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("session TTL = %v", cfg.Session.TTL)
	}
	if cfg.AdminSession.TTL != 12*time.Hour {
		t.Fatalf("admin session TTL = %v", cfg.AdminSession.TTL)
	}
	if cfg.Confirmation.TTL != 30*time.Minute || cfg.Reset.TTL != 15*time.Minute {
		t.Fatalf("code TTLs = %v / %v", cfg.Confirmation.TTL, cfg.Reset.TTL)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing secret", func(c *Config) { c.Secret = "" }, "Secret"},
		{"empty session cookie", func(c *Config) { c.Session.CookieName = "" }, "CookieName"},
		{"non-positive session ttl", func(c *Config) { c.Session.TTL = 0 }, "TTL"},
		{"colliding cookie names", func(c *Config) { c.AdminSession.CookieName = c.Session.CookieName }, "distinct"},
		{"zero confirmation ttl", func(c *Config) { c.Confirmation.TTL = 0 }, "Confirmation"},
		{"digits too few", func(c *Config) { c.Reset.Digits = 4 }, "Digits"},
		{"digits too many", func(c *Config) { c.Reset.Digits = 11 }, "Digits"},
		{"cooldown at ttl", func(c *Config) { c.Reset.ResendCooldown = c.Reset.TTL }, "Cooldown"},
		{"admin email only", func(c *Config) { c.Admin.Email = "ops@example.com" }, "together"},
		{"admin password only", func(c *Config) { c.Admin.Password = "secret" }, "together"},
		{"throttle without attempts", func(c *Config) {
			c.LoginThrottle.Enabled = true
			c.LoginThrottle.MaxAttempts = 0
		}, "MaxAttempts"},
		{"throttle without window", func(c *Config) {
			c.LoginThrottle.Enabled = true
			c.LoginThrottle.Window = 0
		}, "Window"},
		{"audit without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}, "BufferSize"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Secret = "s"
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestAdminPairTogetherIsValid(t *testing.T) {
	cfg := defaultConfig()
	cfg.Secret = "s"
	cfg.Admin = AdminConfig{Email: "ops@example.com", Password: "secret"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
