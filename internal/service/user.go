package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/snowflake"
)

// ErrPasswordTooShort rejects passwords below the minimum length.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

const minPasswordLength = 6

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched; string fields are also skipped when empty, matching the
// partial-update behavior of the public API.
type ProfilePatch struct {
	ID        *uint64
	Handle    *string
	Email     *string
	Age       *int
	Gender    *int
	AvatarURL *string
	Bio       *string
	Signature *string
}

// User coordinates registration, login and profile flows.
type User struct {
	accounts     model.AccountStore
	identity     *Identity
	verification *Verification
	ids          *snowflake.Generator
	hasher       model.Hasher
	tokens       model.TokenManager
	logger       *logger.Logger
}

// NewUser creates a User service.
func NewUser(
	accounts model.AccountStore,
	identity *Identity,
	verification *Verification,
	ids *snowflake.Generator,
	hasher model.Hasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *User {
	return &User{
		accounts:     accounts,
		identity:     identity,
		verification: verification,
		ids:          ids,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

// SendCode issues a verification code for the phone and returns it.
// SMS delivery is an external concern; the code is logged for now.
func (s *User) SendCode(ctx context.Context, phone string) (string, error) {
	code, err := s.verification.Issue(ctx, phone)
	if err != nil {
		return "", err
	}

	// TODO: hand the code to an SMS gateway once one is provisioned.
	s.logger.Info("User service: verification code sent",
		"phone", phone)

	return code, nil
}

// Register verifies the code, consumes it and creates a new account with
// a freshly generated id and a default handle derived from the phone.
func (s *User) Register(ctx context.Context, phone, code, password string) (model.Account, error) {
	if len(password) < minPasswordLength {
		return model.Account{}, ErrPasswordTooShort
	}

	if err := s.checkCode(ctx, phone, code); err != nil {
		return model.Account{}, err
	}

	id, err := s.ids.NextID()
	if err != nil {
		// Clock regression: abort loudly rather than risk a duplicate id.
		s.logger.Error("User service: id generation failed",
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to generate account id: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:           id,
		Phone:        phone,
		Handle:       defaultHandle(phone),
		PasswordHash: passwordHash,
		Age:          18,
		Gender:       model.GenderUnknown,
		Status:       model.StatusActive,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		s.logger.Error("User service: failed to create account",
			"phone", phone,
			"error", err.Error())
		return model.Account{}, err
	}

	s.logger.Info("User service: account registered",
		"account_id", created.ID,
		"phone", phone)

	return created, nil
}

// LoginByPassword resolves the login identifier, verifies the password,
// stamps the login time and issues a session token. Every authentication
// failure collapses to model.ErrInvalidCredentials so callers cannot
// probe which accounts exist.
func (s *User) LoginByPassword(ctx context.Context, loginKey, password string) (model.Account, string, error) {
	if loginKey == "" || password == "" {
		return model.Account{}, "", model.ErrInvalidCredentials
	}

	account, err := s.identity.Resolve(ctx, loginKey, password)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, "", model.ErrInvalidCredentials
		}
		return model.Account{}, "", err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return model.Account{}, "", model.ErrInvalidCredentials
	}

	return s.startSession(ctx, account)
}

// LoginByCode verifies a code-based login for the phone's account.
// Expired and invalid codes stay distinguishable; that distinction is not
// security-sensitive and helps legitimate retry.
func (s *User) LoginByCode(ctx context.Context, phone, code string) (model.Account, string, error) {
	if err := s.checkCode(ctx, phone, code); err != nil {
		return model.Account{}, "", err
	}

	account, err := s.accounts.FindByPhone(ctx, phone)
	if err != nil {
		return model.Account{}, "", err
	}

	return s.startSession(ctx, account)
}

// GetInfo returns the account for the id.
func (s *User) GetInfo(ctx context.Context, id uint64) (model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// SetPassword replaces the account's password.
func (s *User) SetPassword(ctx context.Context, id uint64, password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now()

	if _, err := s.accounts.Update(ctx, id, account); err != nil {
		return err
	}

	s.logger.Info("User service: password updated",
		"account_id", id)

	return nil
}

// SetPhone binds a new phone to the account. Uniqueness is enforced by
// the store and surfaces as model.ErrConflict.
func (s *User) SetPhone(ctx context.Context, id uint64, phone string) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, err
	}

	account.Phone = phone
	account.UpdatedAt = time.Now()

	updated, err := s.accounts.Update(ctx, id, account)
	if err != nil {
		return model.Account{}, err
	}

	return updated, nil
}

// UpdateProfile applies a partial update. An id reassignment is a single
// atomic update keyed by the current id; email uniqueness is pre-checked
// for a clear error and backstopped by the store constraint.
func (s *User) UpdateProfile(ctx context.Context, id uint64, patch ProfilePatch) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, err
	}

	if patch.ID != nil && *patch.ID != id {
		if _, err := s.accounts.GetByID(ctx, *patch.ID); err == nil {
			return model.Account{}, model.ErrConflict
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		account.ID = *patch.ID
	}

	if patch.Email != nil && *patch.Email != "" && *patch.Email != account.Email {
		if _, err := s.accounts.FindByEmail(ctx, *patch.Email); err == nil {
			return model.Account{}, model.ErrConflict
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		account.Email = *patch.Email
	}

	if patch.Handle != nil && *patch.Handle != "" {
		account.Handle = *patch.Handle
	}
	if patch.Age != nil {
		account.Age = *patch.Age
	}
	if patch.Gender != nil {
		account.Gender = *patch.Gender
	}
	if patch.AvatarURL != nil && *patch.AvatarURL != "" {
		account.AvatarURL = *patch.AvatarURL
	}
	if patch.Bio != nil && *patch.Bio != "" {
		account.Bio = *patch.Bio
	}
	if patch.Signature != nil && *patch.Signature != "" {
		account.Signature = *patch.Signature
	}

	account.UpdatedAt = time.Now()

	updated, err := s.accounts.Update(ctx, id, account)
	if err != nil {
		s.logger.Error("User service: failed to update profile",
			"account_id", id,
			"error", err.Error())
		return model.Account{}, err
	}

	s.logger.Info("User service: profile updated",
		"account_id", updated.ID)

	return updated, nil
}

// checkCode verifies and consumes the code for the phone. Only a
// successful verification consumes the entry; failed checks leave it
// live so the user can retry until the TTL elapses.
func (s *User) checkCode(ctx context.Context, phone, code string) error {
	result, err := s.verification.Verify(ctx, phone, code)
	if err != nil {
		return err
	}

	switch result {
	case model.VerificationExpired:
		return model.ErrCodeExpired
	case model.VerificationInvalid:
		return model.ErrCodeInvalid
	}

	if err := s.verification.Consume(ctx, phone); err != nil {
		s.logger.Error("User service: failed to consume verification code",
			"phone", phone,
			"error", err.Error())
	}

	return nil
}

func (s *User) startSession(ctx context.Context, account model.Account) (model.Account, string, error) {
	account.LastLoginAt = time.Now()
	account.UpdatedAt = account.LastLoginAt

	updated, err := s.accounts.Update(ctx, account.ID, account)
	if err != nil {
		return model.Account{}, "", fmt.Errorf("failed to stamp login time: %w", err)
	}

	session, err := s.tokens.Generate(updated.ID)
	if err != nil {
		return model.Account{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("User service: login succeeded",
		"account_id", updated.ID)

	return updated, session, nil
}

// defaultHandle derives the registration handle from the phone's last
// four digits.
func defaultHandle(phone string) string {
	if len(phone) < 4 {
		return model.DefaultHandlePrefix + phone
	}
	return model.DefaultHandlePrefix + phone[len(phone)-4:]
}
