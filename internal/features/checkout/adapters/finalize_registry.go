package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/cache"
)

const (
	finalizeKeyPrefix = "finalize_issued:"
	// finalizeRecordTTL bounds how long an issuance record lives; the backend's
	// own idempotency covers anything older.
	finalizeRecordTTL = 24 * time.Hour
)

// RedisFinalizeRegistry implements the FinalizeRegistry port over the cache
// adapter. The set-if-absent write is what makes the mark-paid call issue
// exactly once per order across concurrent attempts.
type RedisFinalizeRegistry struct {
	cache cache.Cache
}

// NewRedisFinalizeRegistry creates a new RedisFinalizeRegistry.
func NewRedisFinalizeRegistry(c cache.Cache) *RedisFinalizeRegistry {
	return &RedisFinalizeRegistry{
		cache: c,
	}
}

// MarkIssued records the finalize issuance for the order. Returns true on the
// first issuance, false when a record already exists.
func (r *RedisFinalizeRegistry) MarkIssued(ctx context.Context, orderID string) (bool, error) {
	first, err := r.cache.SetIfAbsent(ctx, finalizeKeyPrefix+orderID, []byte("1"), finalizeRecordTTL)
	if err != nil {
		return false, fmt.Errorf("failed to record finalize issuance for order %s: %w", orderID, err)
	}
	return first, nil
}

// Clear forgets the issuance record so an explicit retry can re-issue the call.
func (r *RedisFinalizeRegistry) Clear(ctx context.Context, orderID string) error {
	if err := r.cache.Delete(ctx, finalizeKeyPrefix+orderID); err != nil {
		return fmt.Errorf("failed to clear finalize record for order %s: %w", orderID, err)
	}
	return nil
}
