package lock

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	lockMap sync.Map
)

// ErrLockTimeout is returned by Do when the key stays busy for the whole wait.
var ErrLockTimeout = errors.New("resource is busy, try again later")

func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isLocked := false
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			isLocked = true
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
	if isLocked {
		defer lockMap.Delete(key)
		return true, safeCode()
	}
	return false, nil
}

// Do runs safeCode under the key lock and reports a timeout as ErrLockTimeout.
func Do(ctx context.Context, key string, wait time.Duration, safeCode func() error) error {
	success, err := WithDelay(ctx, key, wait, safeCode)
	if err != nil {
		return err
	}
	if !success {
		return ErrLockTimeout
	}
	return nil
}
