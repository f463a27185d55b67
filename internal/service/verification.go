package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
)

// Verification issues and checks short-lived phone verification codes.
type Verification struct {
	store     model.ChallengeStore
	logger    *logger.Logger
	codeWidth int
	ttl       time.Duration
}

// NewVerification creates a Verification service. codeWidth is the number
// of decimal digits per code; ttl is the lifetime of an issued code.
func NewVerification(store model.ChallengeStore, logger *logger.Logger, codeWidth int, ttl time.Duration) *Verification {
	if codeWidth <= 0 {
		codeWidth = 6
	}
	if ttl <= 0 {
		ttl = model.VerificationCodeTTL
	}
	return &Verification{store: store, logger: logger, codeWidth: codeWidth, ttl: ttl}
}

// Issue generates a fresh code for the phone, overwriting any live code
// and restarting the TTL window.
func (s *Verification) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateCode(s.codeWidth)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := s.store.Set(ctx, phone, code, s.ttl); err != nil {
		s.logger.Error("Verification service: failed to store code",
			"phone", phone,
			"error", err.Error())
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	s.logger.Info("Verification service: code issued",
		"phone", phone,
		"ttl", s.ttl.String())

	return code, nil
}

// Verify checks a submitted code. Expired covers both an elapsed TTL and a
// code that was never issued; the two are indistinguishable by design.
// Verify never consumes the entry.
func (s *Verification) Verify(ctx context.Context, phone, submitted string) (model.VerificationResult, error) {
	code, ok, err := s.store.Get(ctx, phone)
	if err != nil {
		return model.VerificationExpired, fmt.Errorf("failed to read verification code: %w", err)
	}
	if !ok {
		return model.VerificationExpired, nil
	}
	if code != submitted {
		return model.VerificationInvalid, nil
	}

	return model.VerificationSuccess, nil
}

// Consume removes the live code for the phone. Flows that act on a
// successful verification call this so the code cannot be replayed.
func (s *Verification) Consume(ctx context.Context, phone string) error {
	return s.store.Delete(ctx, phone)
}

// generateCode returns a uniformly random zero-padded decimal string of
// the given width.
func generateCode(width int) (string, error) {
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(width)), nil)
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", width, n), nil
}
