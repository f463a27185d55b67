package model

import (
	"context"
	"time"
)

// VerificationCodeTTL is the default lifetime of an issued code.
const VerificationCodeTTL = 5 * time.Minute

// VerificationResult is the outcome of checking a submitted code.
type VerificationResult int

const (
	// VerificationSuccess means a live code exists and matches.
	VerificationSuccess VerificationResult = iota
	// VerificationInvalid means a live code exists but does not match.
	VerificationInvalid
	// VerificationExpired means no live code exists for the phone,
	// whether it expired or was never issued.
	VerificationExpired
)

func (r VerificationResult) String() string {
	switch r {
	case VerificationSuccess:
		return "success"
	case VerificationInvalid:
		return "invalid"
	case VerificationExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// ChallengeStore is a TTL-capable key-value store for verification codes,
// keyed by phone number. Set overwrites any live code and restarts the TTL
// window. Get reports a miss with ok=false, never an error.
type ChallengeStore interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (code string, ok bool, err error)
	Delete(ctx context.Context, phone string) error
}
