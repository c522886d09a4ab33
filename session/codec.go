package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"classicmatch/signer"
)

// Options configures a Codec. Zero fields fall back to the member-session
// defaults.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Now        func() time.Time
}

// Codec mints and validates member session cookies. Immutable after
// NewCodec, safe for concurrent use.
type Codec struct {
	signer *signer.Signer
	name   string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewCodec returns a member session codec signing with s.
func NewCodec(s *signer.Signer, opts Options) *Codec {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Codec{
		signer: s,
		name:   opts.CookieName,
		ttl:    opts.TTL,
		secure: opts.Secure,
		now:    opts.Now,
	}
}

// CookieName returns the configured cookie name.
func (c *Codec) CookieName() string { return c.name }

// TTL returns the configured session lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Create mints a signed session cookie for the given subject.
func (c *Codec) Create(subjectID, email string) (Cookie, error) {
	payload := Payload{
		SubjectID: subjectID,
		Email:     email,
		IssuedAt:  c.now().UnixMilli(),
	}

	encoded, err := encodePayload(payload)
	if err != nil {
		return Cookie{}, err
	}

	return c.cookie(encoded+"."+c.signer.Sign(encoded), int(c.ttl.Seconds())), nil
}

// Validate classifies a raw cookie value as valid, expired, or invalid. The
// signature is checked before the payload is decoded, so no attacker-
// controlled JSON is parsed unless it was signed with the server secret.
func (c *Codec) Validate(raw string) Validation {
	invalid := Validation{Status: StatusInvalid}
	if raw == "" {
		return invalid
	}

	encoded, signature, ok := strings.Cut(raw, ".")
	if !ok || encoded == "" || signature == "" {
		return invalid
	}

	if !c.signer.Verify(encoded, signature) {
		return invalid
	}

	payload, ok := decodePayload(encoded)
	if !ok {
		return invalid
	}

	if c.now().UnixMilli()-payload.IssuedAt >= c.ttl.Milliseconds() {
		return Validation{Status: StatusExpired, Payload: payload}
	}

	return Validation{Status: StatusValid, Payload: payload}
}

// Expire returns a cookie that clears the session on the client. MaxAge -1
// makes net/http emit Max-Age=0, the delete directive. The token itself
// remains cryptographically valid until its natural expiry.
func (c *Codec) Expire() Cookie {
	return c.cookie("", -1)
}

func (c *Codec) cookie(value string, maxAge int) Cookie {
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

func encodePayload(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// decodePayload enforces the presence and type of every required field, as
// the signature alone does not guarantee a well-formed payload across
// deployments with historic token shapes.
func decodePayload(encoded string) (*Payload, bool) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}

	var wire struct {
		SubjectID *string `json:"subjectId"`
		Email     *string `json:"email"`
		IssuedAt  *int64  `json:"issuedAt"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, false
	}
	if wire.SubjectID == nil || wire.Email == nil || wire.IssuedAt == nil {
		return nil, false
	}

	return &Payload{
		SubjectID: *wire.SubjectID,
		Email:     *wire.Email,
		IssuedAt:  *wire.IssuedAt,
	}, true
}
