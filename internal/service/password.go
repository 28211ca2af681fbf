package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"movie-catalog-api/internal/model"
)

// PasswordHasher hashes and verifies passwords with bcrypt. At most
// `concurrency` hash operations run at once; callers beyond that wait on
// their own context.
type PasswordHasher struct {
	cost  int
	slots *semaphore.Weighted
	dummy []byte
}

func NewPasswordHasher(cost int, concurrency int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	// Built up front so the first login for an unknown email costs the same
	// as every later one.
	dummy, err := bcrypt.GenerateFromPassword([]byte("absent-user-placeholder"), cost)
	if err != nil {
		panic(fmt.Sprintf("password hasher: build placeholder digest: %v", err))
	}

	return &PasswordHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(concurrency)),
		dummy: dummy,
	}
}

func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	defer h.slots.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password exceeds 72 bytes", model.ErrInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests and
// cancelled contexts yield false.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext string, digest string) bool {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.slots.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// VerifyAbsent spends the same work as Verify for a user that does not exist,
// so unknown emails and wrong passwords take comparable time. It always
// returns false.
func (h *PasswordHasher) VerifyAbsent(ctx context.Context, plaintext string) bool {
	_ = h.Verify(ctx, plaintext, string(h.dummy))
	return false
}
