package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/adaptor/pkg/adapters/redis"
)

// OpenRedisStore connects to addr and verifies the connection.
func OpenRedisStore(ctx context.Context, addr, password string, db int) (*redis.Store, error) {
	store := redis.New(addr, password, db)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return store, nil
}
