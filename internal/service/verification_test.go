package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cypresslabs/identity-server/internal/mocks"
	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/testutil"
)

func TestNewVerification(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()

		s := NewVerification(mocks.NewChallengeStore(t), testutil.MakeNoopLogger(), 0, 0)

		assert.Equal(t, 6, s.codeWidth)
		assert.Equal(t, model.VerificationCodeTTL, s.ttl)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		t.Parallel()

		s := NewVerification(mocks.NewChallengeStore(t), testutil.MakeNoopLogger(), 4, time.Minute)

		assert.Equal(t, 4, s.codeWidth)
		assert.Equal(t, time.Minute, s.ttl)
	})
}

func TestVerification_Issue(t *testing.T) {
	t.Parallel()

	phone := "13812345678"

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewChallengeStore(t)
		store.On("Set", mock.Anything, phone, mock.MatchedBy(func(code string) bool {
			return len(code) == 6
		}), model.VerificationCodeTTL).Return(nil)

		s := NewVerification(store, testutil.MakeNoopLogger(), 6, model.VerificationCodeTTL)

		code, err := s.Issue(context.Background(), phone)
		require.NoError(t, err)

		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		store.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()

		internalErr := errors.New("internal error")

		store := mocks.NewChallengeStore(t)
		store.On("Set", mock.Anything, phone, mock.Anything, mock.Anything).Return(internalErr)

		s := NewVerification(store, testutil.MakeNoopLogger(), 6, model.VerificationCodeTTL)

		_, err := s.Issue(context.Background(), phone)
		require.ErrorIs(t, err, internalErr)
	})

	t.Run("respects code width", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewChallengeStore(t)
		store.On("Set", mock.Anything, phone, mock.Anything, mock.Anything).Return(nil)

		s := NewVerification(store, testutil.MakeNoopLogger(), 4, time.Minute)

		code, err := s.Issue(context.Background(), phone)
		require.NoError(t, err)
		assert.Len(t, code, 4)
	})
}

func TestVerification_Verify(t *testing.T) {
	t.Parallel()

	phone := "13812345678"
	internalErr := errors.New("internal error")

	tests := map[string]struct {
		storedCode string
		storedOK   bool
		storeErr   error
		submitted  string
		wantResult model.VerificationResult
		wantErr    error
	}{
		"matching code": {
			storedCode: "042317",
			storedOK:   true,
			submitted:  "042317",
			wantResult: model.VerificationSuccess,
		},
		"wrong code": {
			storedCode: "042317",
			storedOK:   true,
			submitted:  "111111",
			wantResult: model.VerificationInvalid,
		},
		"no live code": {
			storedOK:   false,
			submitted:  "042317",
			wantResult: model.VerificationExpired,
		},
		"store error": {
			storeErr:   internalErr,
			submitted:  "042317",
			wantResult: model.VerificationExpired,
			wantErr:    internalErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := mocks.NewChallengeStore(t)
			store.On("Get", mock.Anything, phone).Return(tt.storedCode, tt.storedOK, tt.storeErr)

			s := NewVerification(store, testutil.MakeNoopLogger(), 6, model.VerificationCodeTTL)

			result, err := s.Verify(context.Background(), phone, tt.submitted)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantResult, result)
		})
	}

	t.Run("verify does not consume", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewChallengeStore(t)
		store.On("Get", mock.Anything, phone).Return("042317", true, nil)

		s := NewVerification(store, testutil.MakeNoopLogger(), 6, model.VerificationCodeTTL)

		for i := 0; i < 3; i++ {
			result, err := s.Verify(context.Background(), phone, "042317")
			require.NoError(t, err)
			assert.Equal(t, model.VerificationSuccess, result)
		}
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestVerification_Consume(t *testing.T) {
	t.Parallel()

	phone := "13812345678"

	store := mocks.NewChallengeStore(t)
	store.On("Delete", mock.Anything, phone).Return(nil)

	s := NewVerification(store, testutil.MakeNoopLogger(), 6, model.VerificationCodeTTL)

	require.NoError(t, s.Consume(context.Background(), phone))
	store.AssertExpectations(t)
}
