package remindermark

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hirex:reminder:"

var Instance Provider

// Provider remembers which pending approvals were already reminded about.
type Provider interface {
	// Mark sets the key for ttl and reports whether it was unset before.
	Mark(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func NewRedisInstance(client redis.UniversalClient) Provider {
	return &redisImpl{
		client: client,
	}
}

type redisImpl struct {
	client redis.UniversalClient
}

func (i redisImpl) Mark(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := i.client.SetNX(ctx, keyPrefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis setnx failed")
	}
	return ok, nil
}

// NewMemoryInstance keeps marks in process memory, they do not survive a restart.
// Expiry is measured with now, time.Now when nil.
func NewMemoryInstance(now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return &memoryImpl{
		marks: map[string]time.Time{},
		now:   now,
	}
}

type memoryImpl struct {
	mu    sync.Mutex
	marks map[string]time.Time
	now   func() time.Time
}

func (i *memoryImpl) Mark(_ context.Context, key string, ttl time.Duration) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	now := i.now()
	for k, expiresAt := range i.marks {
		if !now.Before(expiresAt) {
			delete(i.marks, k)
		}
	}
	if _, ok := i.marks[key]; ok {
		return false, nil
	}
	i.marks[key] = now.Add(ttl)
	return true, nil
}
