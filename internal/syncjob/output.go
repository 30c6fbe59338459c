package syncjob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"lyricsync/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// writeOutput replaces path with content while holding path.lock, so runs
// that target the same caption file never interleave.
func writeOutput(ctx context.Context, path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "sync", "create output dir", dir, err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return services.Wrap(services.ErrTimeout, "sync", "lock output", path, err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, "sync", "lock output", path, fmt.Errorf("lock not acquired"))
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return services.Wrap(services.ErrTransient, "sync", "write output", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return services.Wrap(services.ErrTransient, "sync", "write output", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return services.Wrap(services.ErrTransient, "sync", "write output", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return services.Wrap(services.ErrTransient, "sync", "write output", path, err)
	}
	return nil
}
