package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a blocked lock acquisition re-polls.
const lockRetryDelay = 250 * time.Millisecond

// storageLock serializes installs against a single storage directory.
// Two processes racing to write the same archive and marker files would
// otherwise corrupt each other's install.
type storageLock struct {
	fl *flock.Flock
}

func newStorageLock(storageDir string) *storageLock {
	return &storageLock{
		fl: flock.New(filepath.Join(storageDir, ".install.lock")),
	}
}

// Acquire takes the advisory lock, waiting until the context expires.
// The returned function releases the lock.
func (l *storageLock) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	ok, err := l.fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire storage lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("storage lock held by another process")
	}

	return func() {
		_ = l.fl.Unlock()
	}, nil
}
