package model

// TokenManager issues and validates signed session tokens bound to an
// account id. Parse collapses every failure (bad signature, malformed
// token, expiry) into ErrInvalidToken so callers cannot distinguish why
// a token was rejected.
type TokenManager interface {
	Generate(accountID uint64) (string, error)
	Parse(token string) (uint64, error)
}

// Hasher hashes and verifies secrets. Verify must tolerate malformed
// stored hashes by returning false, never by failing.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
