package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
)

// Identity resolves a login identifier to a single account.
//
// Classification order is fixed: phone shape first, then anything with an
// "@", then handle. Handles are not unique, so a multi-match handle is
// disambiguated by probing the password against each candidate's stored
// hash in retrieval order. The probe uses the hasher's constant-time
// comparison; a handle with no matching candidate reports plain NotFound,
// never that duplicates exist.
type Identity struct {
	accounts model.AccountStore
	hasher   model.Hasher
	logger   *logger.Logger
}

// NewIdentity creates an Identity resolver.
func NewIdentity(accounts model.AccountStore, hasher model.Hasher, logger *logger.Logger) *Identity {
	return &Identity{accounts: accounts, hasher: hasher, logger: logger}
}

// Resolve classifies loginKey and returns the matching account, or
// model.ErrNotFound. For a unique phone, email or handle match the
// password is not checked here; the caller verifies it afterwards.
func (s *Identity) Resolve(ctx context.Context, loginKey, password string) (model.Account, error) {
	switch {
	case model.ValidPhone(loginKey):
		account, err := s.accounts.FindByPhone(ctx, loginKey)
		if err != nil {
			return model.Account{}, classifyErr("phone", err)
		}
		return account, nil

	case strings.Contains(loginKey, "@"):
		account, err := s.accounts.FindByEmail(ctx, loginKey)
		if err != nil {
			return model.Account{}, classifyErr("email", err)
		}
		return account, nil

	default:
		candidates, err := s.accounts.FindByHandle(ctx, loginKey)
		if err != nil {
			return model.Account{}, classifyErr("handle", err)
		}

		switch len(candidates) {
		case 0:
			return model.Account{}, model.ErrNotFound
		case 1:
			return candidates[0], nil
		default:
			s.logger.Debug("Identity service: probing duplicate handle",
				"handle", loginKey,
				"candidates", len(candidates))
			for _, candidate := range candidates {
				if s.hasher.Verify(password, candidate.PasswordHash) {
					return candidate, nil
				}
			}
			return model.Account{}, model.ErrNotFound
		}
	}
}

func classifyErr(kind string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	return fmt.Errorf("failed to resolve by %s: %w", kind, err)
}
