package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// lockKeyPrefix namespaces per-order fulfilment leases.
const lockKeyPrefix = "locks:order:"

// unlockScript deletes the lease only while the caller's token still owns it,
// so an expired lease retaken by another run is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements ports.OrderLocker with SET NX leases.
type Locker struct {
	rdb      redis.UniversalClient
	newToken func() string
}

// NewLocker wraps rdb.
func NewLocker(rdb redis.UniversalClient) *Locker {
	return &Locker{rdb: rdb, newToken: uuid.NewString}
}

// Lock takes the lease on orderID. ok is false while another holder has it.
func (l *Locker) Lock(ctx context.Context, orderID string, ttl time.Duration) (string, bool, error) {
	token := l.newToken()

	ok, err := l.rdb.SetNX(ctx, lockKeyPrefix+orderID, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx lock %s: %w", orderID, err)
	}

	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

// Unlock is a no-op when token no longer owns the lease.
func (l *Locker) Unlock(ctx context.Context, orderID, token string) error {
	if err := unlockScript.Run(ctx, l.rdb, []string{lockKeyPrefix + orderID}, token).Err(); err != nil {
		return fmt.Errorf("redis unlock %s: %w", orderID, err)
	}

	return nil
}
