package classicmatch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "pilot@example.com", "Maverick", "old-secret-1")

	if err := env.engine.RequestPasswordReset(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	sent := env.notifier.last(t)
	if sent.Purpose != PurposeReset {
		t.Fatalf("delivered purpose = %q", sent.Purpose)
	}

	result, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", sent.Code, "new-secret-1")
	if err != nil {
		t.Fatalf("CompletePasswordReset: %v", err)
	}
	if result.Cookie.Value == "" {
		t.Fatal("no session minted after reset")
	}

	if _, err := env.engine.Login(context.Background(), "pilot@example.com", "old-secret-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := env.engine.Login(context.Background(), "pilot@example.com", "new-secret-1"); err != nil {
		t.Fatalf("new password: %v", err)
	}
}

func TestRequestResetRevealsAbsence(t *testing.T) {
	env := newTestEnv(t, nil)

	err := env.engine.RequestPasswordReset(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestResetCodeSingleUse(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "pilot@example.com", "Maverick", "old-secret-1")

	if err := env.engine.RequestPasswordReset(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	code := env.notifier.last(t).Code

	if _, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", code, "new-secret-1"); err != nil {
		t.Fatalf("first reset: %v", err)
	}

	_, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", code, "other-secret-1")
	if !errors.Is(err, ErrCodeConsumed) {
		t.Fatalf("second use err = %v, want ErrCodeConsumed", err)
	}
}

func TestResetCodeExpiry(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "pilot@example.com", "Maverick", "old-secret-1")

	if err := env.engine.RequestPasswordReset(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	code := env.notifier.last(t).Code

	// Reset codes live 15 minutes, confirmation codes 30.
	env.clock.Advance(16 * time.Minute)

	_, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", code, "new-secret-1")
	if !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("err = %v, want ErrCodeExpired", err)
	}
}

func TestResetRejectsWeakReplacement(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "pilot@example.com", "Maverick", "old-secret-1")

	if err := env.engine.RequestPasswordReset(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	code := env.notifier.last(t).Code

	_, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", code, "short")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	// The rejection must not have burned the code.
	if _, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", code, "new-secret-1"); err != nil {
		t.Fatalf("reset after rejected password: %v", err)
	}
}

func TestResetWrongCodeLeavesPasswordUntouched(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "pilot@example.com", "Maverick", "old-secret-1")

	if err := env.engine.RequestPasswordReset(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	code := env.notifier.last(t).Code

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	if _, err := env.engine.CompletePasswordReset(context.Background(), "pilot@example.com", wrong, "new-secret-1"); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("err = %v, want ErrCodeInvalid", err)
	}
	if _, err := env.engine.Login(context.Background(), "pilot@example.com", "old-secret-1"); err != nil {
		t.Fatalf("old password should still work: %v", err)
	}
}

func TestResendResetCooldown(t *testing.T) {
	env := newTestEnv(t, nil)
	account := env.signup(t, "pilot@example.com", "Maverick", "old-secret-1")

	if err := env.engine.RequestPasswordReset(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	before, _ := env.codes.Get(context.Background(), account.ID, PurposeReset)
	deliveries := env.notifier.count()

	env.clock.Advance(10 * time.Second)
	if err := env.engine.ResendResetCode(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("resend inside cooldown: %v", err)
	}
	if env.notifier.count() != deliveries {
		t.Fatal("cooldown resend delivered a code")
	}

	env.clock.Advance(time.Minute)
	if err := env.engine.ResendResetCode(context.Background(), "pilot@example.com"); err != nil {
		t.Fatalf("resend after cooldown: %v", err)
	}
	after, _ := env.codes.Get(context.Background(), account.ID, PurposeReset)
	if after.CodeHash == before.CodeHash {
		t.Fatal("resend after cooldown did not re-issue")
	}
}
