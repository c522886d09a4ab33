package password

import (
	"strings"
	"testing"
)

// testConfig keeps derivation fast; production parameters are exercised by
// DefaultConfig validation only.
func testConfig() Config {
	return Config{
		N:          1024,
		R:          8,
		P:          1,
		SaltLength: 16,
		KeyLength:  32,
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero", Config{}},
		{"n not power of two", Config{N: 1000, R: 8, P: 1, SaltLength: 16, KeyLength: 32}},
		{"n too small", Config{N: 512, R: 8, P: 1, SaltLength: 16, KeyLength: 32}},
		{"short salt", Config{N: 1024, R: 8, P: 1, SaltLength: 8, KeyLength: 32}},
		{"short key", Config{N: 1024, R: 8, P: 1, SaltLength: 16, KeyLength: 16}},
		{"zero r", Config{N: 1024, R: 0, P: 1, SaltLength: 16, KeyLength: 32}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg); err == nil {
				t.Fatalf("expected config error for %+v", tc.cfg)
			}
		})
	}

	if _, err := New(DefaultConfig()); err != nil {
		t.Fatalf("DefaultConfig rejected: %v", err)
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, plaintext := range []string{"Abcd1234", "correct horse battery staple", "パスワード12345"} {
		stored, err := h.Hash(plaintext)
		if err != nil {
			t.Fatalf("Hash(%q): %v", plaintext, err)
		}
		if !h.Verify(plaintext, stored) {
			t.Errorf("Verify rejected correct password %q", plaintext)
		}
		if h.Verify(plaintext+"x", stored) {
			t.Errorf("Verify accepted wrong password for %q", plaintext)
		}
	}
}

func TestHashSaltsAreRandom(t *testing.T) {
	h, _ := New(testConfig())

	first, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password produced identical stored forms")
	}
	if first[:strings.Index(first, ":")] == second[:strings.Index(second, ":")] {
		t.Fatal("two hashes reused the same salt")
	}
}

func TestStoredFormShape(t *testing.T) {
	h, _ := New(testConfig())

	stored, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	salt, key, ok := strings.Cut(stored, ":")
	if !ok {
		t.Fatalf("stored form missing separator: %q", stored)
	}
	if len(salt) != 32 { // 16 salt bytes, hex-encoded
		t.Errorf("salt hex length = %d, want 32", len(salt))
	}
	if len(key) != 64 { // 32 key bytes, hex-encoded
		t.Errorf("key hex length = %d, want 64", len(key))
	}
}

func TestVerifyMalformedStoredForm(t *testing.T) {
	h, _ := New(testConfig())

	stored, _ := h.Hash("Abcd1234")
	_, key, _ := strings.Cut(stored, ":")

	cases := []string{
		"",
		":",
		"nosalt",
		"salt:",
		":" + key,
		"salt:not-hex!",
		stored + "00", // key length mismatch
	}

	for _, malformed := range cases {
		if h.Verify("Abcd1234", malformed) {
			t.Errorf("Verify accepted malformed stored form %q", malformed)
		}
	}
}
