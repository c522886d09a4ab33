package classicmatch

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSignupCreatesUnverifiedAccount(t *testing.T) {
	env := newTestEnv(t, nil)

	account := env.signup(t, " Pilot@Example.COM ", "  Maverick  ", "sup3r-secret")

	if account.Email != "pilot@example.com" {
		t.Fatalf("email = %q, want normalized", account.Email)
	}
	if account.CallSign != "Maverick" {
		t.Fatalf("call sign = %q, want trimmed with casing kept", account.CallSign)
	}
	if account.Verified {
		t.Fatal("fresh account must start unverified")
	}
	if account.PasswordHash == "" || strings.Contains(account.PasswordHash, "sup3r-secret") {
		t.Fatalf("password hash = %q", account.PasswordHash)
	}

	sent := env.notifier.last(t)
	if sent.Purpose != PurposeConfirmation {
		t.Fatalf("delivered purpose = %q", sent.Purpose)
	}
	if len(sent.Code) != 6 {
		t.Fatalf("code length = %d", len(sent.Code))
	}
	for _, r := range sent.Code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q is not all digits", sent.Code)
		}
	}
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"empty email", SignupInput{Email: "", CallSign: "Maverick", Password: "sup3r-secret"}},
		{"malformed email", SignupInput{Email: "not-an-email", CallSign: "Maverick", Password: "sup3r-secret"}},
		{"missing local part", SignupInput{Email: "@example.com", CallSign: "Maverick", Password: "sup3r-secret"}},
		{"empty call sign", SignupInput{Email: "a@example.com", CallSign: "   ", Password: "sup3r-secret"}},
		{"call sign too long", SignupInput{Email: "a@example.com", CallSign: strings.Repeat("x", 41), Password: "sup3r-secret"}},
		{"password too short", SignupInput{Email: "a@example.com", CallSign: "Maverick", Password: "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.engine.Signup(context.Background(), tc.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSignupCallSignLengthBoundary(t *testing.T) {
	env := newTestEnv(t, nil)

	// 40 runes is allowed, including multibyte ones.
	account := env.signup(t, "a@example.com", strings.Repeat("あ", 40), "sup3r-secret")
	if account.CallSign != strings.Repeat("あ", 40) {
		t.Fatalf("call sign = %q", account.CallSign)
	}
}

func TestSignupEmailConflictIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "a@x.com", "First", "sup3r-secret")

	_, err := env.engine.Signup(context.Background(), SignupInput{
		Email:    "A@X.COM",
		CallSign: "Second",
		Password: "sup3r-secret",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignupCallSignConflictIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "a@x.com", "Maverick", "sup3r-secret")

	_, err := env.engine.Signup(context.Background(), SignupInput{
		Email:    "b@x.com",
		CallSign: "MAVERICK",
		Password: "sup3r-secret",
	})
	if !errors.Is(err, ErrCallSignTaken) {
		t.Fatalf("err = %v, want ErrCallSignTaken", err)
	}
}

func TestValidateSignupDoesNotCreate(t *testing.T) {
	env := newTestEnv(t, nil)

	if err := env.engine.ValidateSignup(context.Background(), SignupInput{
		Email:    "a@x.com",
		CallSign: "Maverick",
		Password: "sup3r-secret",
	}); err != nil {
		t.Fatalf("ValidateSignup: %v", err)
	}

	if _, err := env.accounts.GetByEmail(context.Background(), "a@x.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("ValidateSignup created an account: %v", err)
	}
	if env.notifier.count() != 0 {
		t.Fatal("ValidateSignup delivered a code")
	}
}

func TestValidateSignupReportsConflicts(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "a@x.com", "Maverick", "sup3r-secret")

	err := env.engine.ValidateSignup(context.Background(), SignupInput{
		Email:    "a@x.com",
		CallSign: "Other",
		Password: "sup3r-secret",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignupSucceedsWhenDeliveryFails(t *testing.T) {
	env := newTestEnv(t, nil)
	env.notifier.failure = errors.New("smtp down")

	result, err := env.engine.Signup(context.Background(), SignupInput{
		Email:    "a@x.com",
		CallSign: "Maverick",
		Password: "sup3r-secret",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// The code is persisted even though delivery failed; a resend can
	// redeliver it.
	if _, err := env.codes.Get(context.Background(), result.Account.ID, PurposeConfirmation); err != nil {
		t.Fatalf("stored code: %v", err)
	}
}
