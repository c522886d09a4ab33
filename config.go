package classicmatch

import (
	"errors"
	"time"

	"classicmatch/password"
	"classicmatch/session"
)

// Config drives engine construction. Populate it once, validate via
// [Config.Validate] (Build does this for you), and treat it as immutable
// afterwards.
type Config struct {
	// Secret keys every HMAC signature: session cookies and admin cookies
	// alike. Required; all horizontally scaled instances must share it.
	Secret string
	// Production switches the Secure cookie attribute on.
	Production bool

	Session       SessionConfig
	AdminSession  SessionConfig
	Password      password.Config
	Confirmation  CodeConfig
	Reset         CodeConfig
	Admin         AdminConfig
	LoginThrottle ThrottleConfig
	Audit         AuditConfig
}

// SessionConfig shapes one cookie codec.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// CodeConfig shapes one one-time code purpose.
type CodeConfig struct {
	// TTL is the window in which an issued code verifies.
	TTL time.Duration
	// ResendCooldown suppresses re-issue while the outstanding code is
	// younger than this; the resend call then silently succeeds.
	ResendCooldown time.Duration
	// Digits is the code length. Codes are left-zero-padded decimal.
	Digits int
}

// AdminConfig carries the single fixed admin credential pair. Leave both
// fields empty to disable the admin flow entirely; configuring only one of
// them is a validation error.
type AdminConfig struct {
	Email    string
	Password string
}

// ThrottleConfig shapes the optional fixed-window login throttle. It is an
// additive hardening layer: the login contract is identical with it off,
// except that excessive attempts return ErrLoginRateLimited.
type ThrottleConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
}

// AuditConfig shapes the audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the request path when the
	// buffer is saturated.
	DropIfFull bool
}

// NewConfig returns the default configuration. Set Secret plus any
// overrides and hand it to [Builder.WithConfig].
func NewConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			CookieName: session.DefaultCookieName,
			TTL:        session.DefaultTTL,
		},
		AdminSession: SessionConfig{
			CookieName: session.DefaultAdminCookieName,
			TTL:        session.DefaultAdminTTL,
		},
		Password: password.DefaultConfig(),
		Confirmation: CodeConfig{
			TTL:            30 * time.Minute,
			ResendCooldown: 60 * time.Second,
			Digits:         6,
		},
		Reset: CodeConfig{
			TTL:            15 * time.Minute,
			ResendCooldown: 60 * time.Second,
			Digits:         6,
		},
		LoginThrottle: ThrottleConfig{
			Enabled:     false,
			MaxAttempts: 10,
			Window:      15 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
	}
}

// Validate checks the configuration as a whole and reports the first
// problem found. A failing config must stop startup; nothing here is
// recoverable at request time.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("Secret is required: session signing cannot run without it")
	}

	if c.Session.CookieName == "" {
		return errors.New("Session CookieName must not be empty")
	}
	if c.Session.TTL <= 0 {
		return errors.New("Session TTL must be > 0")
	}
	if c.AdminSession.CookieName == "" {
		return errors.New("AdminSession CookieName must not be empty")
	}
	if c.AdminSession.TTL <= 0 {
		return errors.New("AdminSession TTL must be > 0")
	}
	if c.Session.CookieName == c.AdminSession.CookieName {
		return errors.New("member and admin session cookies must use distinct names")
	}

	for _, code := range []struct {
		name string
		cfg  CodeConfig
	}{
		{"Confirmation", c.Confirmation},
		{"Reset", c.Reset},
	} {
		if code.cfg.TTL <= 0 {
			return errors.New(code.name + " TTL must be > 0")
		}
		if code.cfg.Digits < 6 || code.cfg.Digits > 10 {
			return errors.New(code.name + " Digits must be between 6 and 10")
		}
		if code.cfg.ResendCooldown < 0 {
			return errors.New(code.name + " ResendCooldown must be >= 0")
		}
		if code.cfg.ResendCooldown >= code.cfg.TTL {
			return errors.New(code.name + " ResendCooldown must be shorter than the code TTL")
		}
	}

	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("Admin Email and Password must be configured together")
	}

	if c.LoginThrottle.Enabled {
		if c.LoginThrottle.MaxAttempts <= 0 {
			return errors.New("LoginThrottle MaxAttempts must be > 0 when enabled")
		}
		if c.LoginThrottle.Window <= 0 {
			return errors.New("LoginThrottle Window must be > 0 when enabled")
		}
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	return nil
}
