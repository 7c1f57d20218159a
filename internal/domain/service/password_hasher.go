// Package service defines the ports the use cases depend on: hashing, tokens,
// OAuth providers, mail, image storage, device detection and metrics.
package service

// PasswordHasher hashes local passwords. Social identities get a random
// password through the same hasher so every row has a valid hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password matches hash. Any error counts as a mismatch.
	Check(password, hash string) bool
}
