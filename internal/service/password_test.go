package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hasher := NewPasswordHasher(bcrypt.MinCost, 2)

	t.Run("round trip verifies", func(t *testing.T) {
		digest, err := hasher.Hash(ctx, "correct horse")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse", digest)
		assert.True(t, hasher.Verify(ctx, "correct horse", digest))
	})

	t.Run("different password does not verify", func(t *testing.T) {
		digest, err := hasher.Hash(ctx, "correct horse")
		require.NoError(t, err)
		assert.False(t, hasher.Verify(ctx, "battery staple", digest))
	})

	t.Run("salted digests differ yet both verify", func(t *testing.T) {
		first, err := hasher.Hash(ctx, "same-password")
		require.NoError(t, err)
		second, err := hasher.Hash(ctx, "same-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Verify(ctx, "same-password", first))
		assert.True(t, hasher.Verify(ctx, "same-password", second))
	})

	t.Run("malformed digest fails closed", func(t *testing.T) {
		assert.False(t, hasher.Verify(ctx, "anything", ""))
		assert.False(t, hasher.Verify(ctx, "anything", "not-a-bcrypt-digest"))
		assert.False(t, hasher.Verify(ctx, "anything", "$2a$10$short"))
	})

	t.Run("absent user never verifies", func(t *testing.T) {
		assert.False(t, hasher.VerifyAbsent(ctx, "absent-user-placeholder"))
	})
}

func TestPasswordHasherHonorsContext(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost, 1)
	digest, err := hasher.Hash(context.Background(), "pw123456")
	require.NoError(t, err)

	// Hold the only slot so the next call has to wait on its context.
	require.NoError(t, hasher.slots.Acquire(context.Background(), 1))
	defer hasher.slots.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = hasher.Hash(ctx, "pw123456")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, hasher.Verify(ctx, "pw123456", digest))
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(1, 1).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1, 1).cost)
}

func TestNewPasswordHasherPreparesAbsentDigest(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost, 1)
	require.NotEmpty(t, hasher.dummy)

	cost, err := bcrypt.Cost(hasher.dummy)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	before := string(hasher.dummy)
	assert.False(t, hasher.VerifyAbsent(context.Background(), "anything"))
	assert.Equal(t, before, string(hasher.dummy))
}
