package memory

import "context"

// NextValue increments the counter for prefix+period under the store lock.
func (s *Store) NextValue(ctx context.Context, prefix, period string) (int, error) {
	defer s.write(ctx)()

	key := prefix + "-" + period
	s.sequences[key]++
	return s.sequences[key], nil
}
