package room

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sajumatch/internal/types"
)

func waitForRoom(t *testing.T, updates <-chan types.Room, want func(types.Room) bool) types.Room {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-updates:
			if want(r) {
				return r
			}
		case <-timeout:
			t.Fatal("timed out waiting for room update")
			return types.Room{}
		}
	}
}

func TestFileStoreWatch(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewService(fs, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := svc.Create(ctx, "live", person("Ada", "INTJ", 1995, 1, 1, 12))
	require.NoError(t, err)

	updates := make(chan types.Room, 64)
	done := make(chan error, 1)
	go func() {
		done <- fs.Watch(ctx, r.ID, func(r types.Room) { updates <- r })
	}()

	initial := waitForRoom(t, updates, func(types.Room) bool { return true })
	assert.Len(t, initial.Participants, 1)

	_, _, err = svc.Join(ctx, r.ID, person("Bo", "ENFP", 1990, 5, 15, 8))
	require.NoError(t, err)

	updated := waitForRoom(t, updates, func(r types.Room) bool { return len(r.Participants) == 2 })
	assert.Equal(t, "Bo", updated.Participants[1].Name)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestFileStoreWatchMissingRoom(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = fs.Watch(context.Background(), uuid.NewString(), func(types.Room) {
		t.Error("callback must not run for a missing room")
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
