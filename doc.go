// Package classicmatch is the session and credential core of the
// classic-match community application: cookie-based authentication with
// HMAC-signed self-contained session tokens, scrypt password hashing, and
// one-time numeric codes for email confirmation and password reset.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// classicmatch is the public surface. It exposes [Engine], [Builder],
// [Config], the collaborator interfaces ([AccountProvider], [CodeStore],
// [Notifier]), and value types. Cryptographic primitives live in the
// signer, password, and session sub-packages; persistence implementations
// live in store; HTTP presentation lives in httpapi.
//
// # What this package must NOT do
//
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Keep per-session server state: session validity is entirely a
//     function of signature correctness and token age.
//   - Reveal through any login error whether an email address is
//     registered.
package classicmatch
