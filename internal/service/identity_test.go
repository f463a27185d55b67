package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cypresslabs/identity-server/internal/mocks"
	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/testutil"
)

func TestIdentity_Resolve_Phone(t *testing.T) {
	t.Parallel()

	phone := "13812345678"
	account := model.Account{ID: 1001, Phone: phone}

	t.Run("phone shape resolves by phone", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByPhone", mock.Anything, phone).Return(account, nil)

		s := NewIdentity(accounts, mocks.NewHasher(t), testutil.MakeNoopLogger())

		got, err := s.Resolve(context.Background(), phone, "whatever")
		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("unknown phone", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByPhone", mock.Anything, phone).Return(model.Account{}, model.ErrNotFound)

		s := NewIdentity(accounts, mocks.NewHasher(t), testutil.MakeNoopLogger())

		_, err := s.Resolve(context.Background(), phone, "whatever")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("ten digit string is not a phone", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByHandle", mock.Anything, "1381234567").Return(nil, nil)

		s := NewIdentity(accounts, mocks.NewHasher(t), testutil.MakeNoopLogger())

		_, err := s.Resolve(context.Background(), "1381234567", "whatever")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestIdentity_Resolve_Email(t *testing.T) {
	t.Parallel()

	account := model.Account{ID: 1002, Email: "a@b.co"}

	t.Run("at sign resolves by email", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByEmail", mock.Anything, "a@b.co").Return(account, nil)

		s := NewIdentity(accounts, mocks.NewHasher(t), testutil.MakeNoopLogger())

		got, err := s.Resolve(context.Background(), "a@b.co", "whatever")
		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("internal error is wrapped", func(t *testing.T) {
		t.Parallel()

		internalErr := errors.New("internal error")

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByEmail", mock.Anything, "a@b.co").Return(model.Account{}, internalErr)

		s := NewIdentity(accounts, mocks.NewHasher(t), testutil.MakeNoopLogger())

		_, err := s.Resolve(context.Background(), "a@b.co", "whatever")
		require.ErrorIs(t, err, internalErr)
		assert.NotErrorIs(t, err, model.ErrNotFound)
	})
}

func TestIdentity_Resolve_Handle(t *testing.T) {
	t.Parallel()

	first := model.Account{ID: 1, Handle: "alice", PasswordHash: "hash-1"}
	second := model.Account{ID: 2, Handle: "alice", PasswordHash: "hash-2"}
	third := model.Account{ID: 3, Handle: "alice", PasswordHash: "hash-3"}

	t.Run("single match returned without password probe", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByHandle", mock.Anything, "alice").Return([]model.Account{first}, nil)

		hasher := mocks.NewHasher(t)

		s := NewIdentity(accounts, hasher, testutil.MakeNoopLogger())

		got, err := s.Resolve(context.Background(), "alice", "wrong-password")
		require.NoError(t, err)
		assert.Equal(t, first, got)
		hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByHandle", mock.Anything, "alice").Return([]model.Account{}, nil)

		s := NewIdentity(accounts, mocks.NewHasher(t), testutil.MakeNoopLogger())

		_, err := s.Resolve(context.Background(), "alice", "password")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("duplicates disambiguated by password", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByHandle", mock.Anything, "alice").
			Return([]model.Account{first, second, third}, nil)

		hasher := mocks.NewHasher(t)
		hasher.On("Verify", "password-2", "hash-1").Return(false)
		hasher.On("Verify", "password-2", "hash-2").Return(true)

		s := NewIdentity(accounts, hasher, testutil.MakeNoopLogger())

		got, err := s.Resolve(context.Background(), "alice", "password-2")
		require.NoError(t, err)
		assert.Equal(t, second, got)
		hasher.AssertNotCalled(t, "Verify", "password-2", "hash-3")
	})

	t.Run("duplicates with no password match", func(t *testing.T) {
		t.Parallel()

		accounts := mocks.NewAccountStore(t)
		accounts.On("FindByHandle", mock.Anything, "alice").
			Return([]model.Account{first, second}, nil)

		hasher := mocks.NewHasher(t)
		hasher.On("Verify", "nope", mock.Anything).Return(false)

		s := NewIdentity(accounts, hasher, testutil.MakeNoopLogger())

		_, err := s.Resolve(context.Background(), "alice", "nope")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
