package httpapi

import (
	"context"
	"time"

	"classicmatch"
	"classicmatch/store"
)

// ProfileStore is the profile persistence the API needs.
type ProfileStore interface {
	Upsert(ctx context.Context, rec store.ProfileRecord) error
	Get(ctx context.Context, accountID string) (*store.ProfileRecord, error)
}

// ChatStore is the public chat persistence the API needs.
type ChatStore interface {
	Post(ctx context.Context, accountID, callSign, body string) (*store.ChatRecord, error)
	Recent(ctx context.Context) ([]store.ChatRecord, error)
}

// ContactStore is the contact form persistence the API needs.
type ContactStore interface {
	Submit(ctx context.Context, accountID, email, subject, body string) (*store.ContactRecord, error)
	Recent(ctx context.Context, limit int) ([]store.ContactRecord, error)
}

type signupRequest struct {
	Email    string `json:"email"`
	CallSign string `json:"callSign"`
	Password string `json:"password"`
}

type signupResponse struct {
	Email string `json:"email"`
}

type validateSignupRequest struct {
	Email    string `json:"email"`
	CallSign string `json:"callSign"`
	Password string `json:"password"`
}

type validateSignupResponse struct {
	Valid bool `json:"valid"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	CallSign string `json:"callSign"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Admin bool `json:"admin"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type verifyResponse struct {
	Verified bool   `json:"verified"`
	CallSign string `json:"callSign"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type resendResponse struct {
	Sent bool `json:"sent"`
}

type passwordRequestRequest struct {
	Email string `json:"email"`
}

type passwordRequestResponse struct {
	Sent bool `json:"sent"`
}

type passwordResetRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

type passwordResetResponse struct {
	CallSign string `json:"callSign"`
}

type profileRequest struct {
	Eras   []string `json:"eras"`
	Moods  []string `json:"moods"`
	Bio    string   `json:"bio"`
	Agreed bool     `json:"agreed"`
}

type profileResponse struct {
	Eras   []string `json:"eras"`
	Moods  []string `json:"moods"`
	Bio    string   `json:"bio"`
	Agreed bool     `json:"agreed"`
}

type chatPostRequest struct {
	Body string `json:"body"`
}

type chatMessage struct {
	ID        string    `json:"id"`
	CallSign  string    `json:"callSign"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type chatListResponse struct {
	Messages []chatMessage `json:"messages"`
}

type contactRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactResponse struct {
	Received bool `json:"received"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toLoginResponse(result *classicmatch.LoginResult) loginResponse {
	return loginResponse{
		CallSign: result.Account.CallSign,
		Email:    result.Account.Email,
		Verified: result.Account.Verified,
	}
}
