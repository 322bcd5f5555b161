package ports

import "context"

// StatsCache holds serialized dashboard results for a limited time. Readers
// tolerate results that are at most one TTL old.
type StatsCache interface {
	// Get returns found == false on a miss.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
