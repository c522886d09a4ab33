package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"classicmatch/signer"
)

// AdminCodec mints and validates admin session cookies. The payload carries
// only the issue time: the admin identity is a single configured credential
// pair, not an account row. Validation is a bare pass/fail: expired and
// forged cookies both fail closed with no distinction exposed.
type AdminCodec struct {
	signer *signer.Signer
	name   string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewAdminCodec returns an admin session codec signing with s.
func NewAdminCodec(s *signer.Signer, opts Options) *AdminCodec {
	if opts.CookieName == "" {
		opts.CookieName = DefaultAdminCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultAdminTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AdminCodec{
		signer: s,
		name:   opts.CookieName,
		ttl:    opts.TTL,
		secure: opts.Secure,
		now:    opts.Now,
	}
}

// CookieName returns the configured cookie name.
func (c *AdminCodec) CookieName() string { return c.name }

type adminPayload struct {
	IssuedAt int64 `json:"issuedAt"`
}

// Create mints a signed admin session cookie.
func (c *AdminCodec) Create() (Cookie, error) {
	data, err := json.Marshal(adminPayload{IssuedAt: c.now().UnixMilli()})
	if err != nil {
		return Cookie{}, err
	}

	encoded := base64.RawURLEncoding.EncodeToString(data)
	return c.cookie(encoded+"."+c.signer.Sign(encoded), int(c.ttl.Seconds())), nil
}

// Validate reports whether raw is an authentic, unexpired admin session.
func (c *AdminCodec) Validate(raw string) bool {
	if raw == "" {
		return false
	}

	encoded, signature, ok := strings.Cut(raw, ".")
	if !ok || encoded == "" || signature == "" {
		return false
	}

	if !c.signer.Verify(encoded, signature) {
		return false
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}

	var wire struct {
		IssuedAt *int64 `json:"issuedAt"`
	}
	if err := json.Unmarshal(data, &wire); err != nil || wire.IssuedAt == nil {
		return false
	}

	return c.now().UnixMilli()-*wire.IssuedAt < c.ttl.Milliseconds()
}

// Expire returns a cookie that clears the admin session on the client.
func (c *AdminCodec) Expire() Cookie {
	return c.cookie("", -1)
}

func (c *AdminCodec) cookie(value string, maxAge int) Cookie {
	return Cookie{
		Name:     c.name,
		Value:    value,
		MaxAge:   maxAge,
		Secure:   c.secure,
		HTTPOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}
