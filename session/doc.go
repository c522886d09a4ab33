// Package session encodes and validates the self-certifying cookie tokens
// that prove a classic-match login.
//
// # Token layout
//
// A token is base64url(JSON payload) + "." + hex(HMAC-SHA256 of the encoded
// payload). Validity is entirely a function of signature correctness and
// age: no server-side session store exists, and logout merely expires the
// client cookie. A captured token therefore replays successfully until its
// TTL elapses, an accepted property of the short-TTL bearer design, not a
// defect.
//
// # Architecture boundaries
//
// This package owns encoding, signature checks, and expiry. It does NOT
// look up accounts, touch storage, or decide which operations require a
// session; those responsibilities belong to the Engine and the HTTP layer.
//
// # What this package must NOT do
//
//   - Import classicmatch or store (no upward imports).
//   - Persist anything.
//   - Accept a token whose signature fails, regardless of payload content.
package session
