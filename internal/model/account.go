package model

import (
	"context"
	"regexp"
	"time"
)

// phonePattern matches the supported phone shape: 11 digits, leading 1,
// second digit 3-9.
var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidPhone reports whether s has the supported phone shape.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// AccountStore defines persistence operations for accounts.
//
// Lookups return ErrNotFound on miss. FindByHandle returns every account
// sharing the handle, since handles are not unique. Update is keyed by the
// current id so that id reassignment happens in a single statement.
type AccountStore interface {
	GetByID(ctx context.Context, id uint64) (Account, error)
	FindByPhone(ctx context.Context, phone string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByHandle(ctx context.Context, handle string) ([]Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, id uint64, account Account) (Account, error)
}

// Account represents a stored account with authentication material.
// ID is assigned once at creation from the snowflake generator; Phone and
// Email are unique or absent (empty string), Handle may repeat.
type Account struct {
	ID           uint64
	Phone        string
	Email        string
	Handle       string
	PasswordHash string
	Age          int
	Gender       int
	AvatarURL    string
	Bio          string
	Signature    string
	Status       int
	Role         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  time.Time
}

// Account status and role values.
const (
	StatusDisabled = 0
	StatusActive   = 1

	RoleUser  = 0
	RoleAdmin = 1

	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

// DefaultHandlePrefix prefixes the generated handle for new registrations.
const DefaultHandlePrefix = "user"
