package repositories

import "context"

// SequenceRepository hands out per prefix, per period counters.
type SequenceRepository interface {
	// NextValue atomically increments and returns the counter for prefix+period.
	// The first call for a key returns 1. Two calls never return the same value.
	NextValue(ctx context.Context, prefix, period string) (int, error)
}
