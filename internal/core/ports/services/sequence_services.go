package services

import "context"

// SequenceSvc issues period-scoped document numbers such as JE-202601-0001.
type SequenceSvc interface {
	Next(ctx context.Context, prefix, period string) (string, error)
}
