// Package password implements credential hashing and verification with scrypt.
//
// # Output format
//
// Stored hashes use a two-part hex encoding:
//
//	<hex(salt)>:<hex(scrypt(plaintext, salt, N, r, p))>
//
// The salt fed to the key derivation is the hex-encoded salt string itself,
// so a stored form is fully self-describing given the hasher parameters.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (minimum
// length, confirmation) is enforced by the Engine and the HTTP boundary.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords; callers supply plaintext and receive hashes.
//   - Import any other classicmatch package.
//   - Use non-constant-time comparisons for derived keys.
package password
