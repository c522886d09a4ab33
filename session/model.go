package session

import (
	"net/http"
	"time"
)

// Cookie name and lifetime defaults shared by the engine and the HTTP layer.
const (
	DefaultCookieName      = "classic-match-session"
	DefaultAdminCookieName = "classic-match-admin-session"
	DefaultTTL             = 24 * time.Hour
	DefaultAdminTTL        = 12 * time.Hour
)

// Payload is the signed content of a member session token. IssuedAt is unix
// milliseconds; expiry is computed from it and the codec TTL on every
// validation rather than being baked into the token.
type Payload struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"issuedAt"`
}

// Status classifies the outcome of validating a raw cookie value.
type Status int

const (
	// StatusInvalid covers everything from a missing cookie to a garbled or
	// forged token. Callers redirect to login without comment.
	StatusInvalid Status = iota
	// StatusExpired means the token was authentic but aged out. The decoded
	// payload is carried along so callers can show a session-expired notice.
	StatusExpired
	// StatusValid means the token is authentic and inside its TTL.
	StatusValid
)

// Validation is the three-way result of Codec.Validate. Payload is non-nil
// for StatusValid and StatusExpired, nil for StatusInvalid.
type Validation struct {
	Status  Status
	Payload *Payload
}

// Cookie is a transport-agnostic description of a session cookie. The HTTP
// layer converts it with HTTP.
type Cookie struct {
	Name     string
	Value    string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	Path     string
	SameSite http.SameSite
}

// HTTP converts the cookie for use with net/http.
func (c Cookie) HTTP() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
		Path:     c.Path,
		SameSite: c.SameSite,
	}
}
