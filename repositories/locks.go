package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/database"
)

const (
	lockTTL        = 10 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 2 * time.Second
)

// withLock runs fn while holding a redis lock on key. Multi-table writes
// (case totals, relationship promotion) serialize through these.
func withLock(ctx context.Context, key string, fn func() error) error {
	value := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < lockMaxRetries; i++ {
		locked, err = database.NewLock(ctx, key, value, lockTTL)
		if err == nil && locked {
			break
		}
		if i < lockMaxRetries-1 {
			time.Sleep(lockRetryDelay)
		}
	}
	if !locked {
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		return errors.New("failed to acquire lock " + key + " after retries")
	}

	defer func() {
		if err := database.ReleaseLock(ctx, key, value); err != nil {
			log.Printf("Failed to release lock %s: %v", key, err)
		}
	}()

	return fn()
}
