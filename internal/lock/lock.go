package lock

import (
	"context"
	"fmt"
)

// Locker serializes work on a key. The returned func releases the lock and
// is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func UserKey(userID string) string {
	return fmt.Sprintf("cloudmart:lock:user:%s", userID)
}
