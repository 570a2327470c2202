package room

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"sajumatch/internal/logging"
	"sajumatch/internal/types"
)

// watchDebounce batches the write and rename events of one save.
const watchDebounce = 50 * time.Millisecond

// Watch calls fn with the current room, then again after every change to
// the room's file, until ctx is done or the room is deleted.
func (s *FileStore) Watch(ctx context.Context, id string, fn func(types.Room)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	// Read after the watch is in place so no change is missed.
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	fn(r)

	target := s.path(id)
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			logging.StoreDebug("watch of room %s stopped", id)
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				return fmt.Errorf("room %s removed: %w", id, ErrNotFound)
			case event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0:
				pending = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Get(logging.CategoryStore).Warn("watch of room %s: %v", id, err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			r, err := s.Get(ctx, id)
			if err != nil {
				logging.StoreDebug("watch reload of room %s: %v", id, err)
				continue
			}
			fn(r)
		}
	}
}
