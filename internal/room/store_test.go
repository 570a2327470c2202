package room

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sajumatch/internal/config"
	"sajumatch/internal/types"
)

// TestMain ensures no goroutines leak from graph builds or open databases.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func person(name, code string, y, m, d, h int) types.Person {
	return types.Person{
		Name:       name,
		TypeCode:   code,
		BirthYear:  y,
		BirthMonth: m,
		BirthDay:   d,
		BirthHour:  h,
	}
}

func newRoom(name string, participants ...types.Person) types.Room {
	for i := range participants {
		if participants[i].ID == "" {
			participants[i].ID = uuid.NewString()
		}
	}
	return types.Room{
		ID:           uuid.NewString(),
		Name:         name,
		CreatedAt:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Participants: participants,
	}
}

// stores returns one instance of every backend, each in its own temp dir.
func stores(t *testing.T) map[string]types.RoomStore {
	t.Helper()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "rooms"))
	require.NoError(t, err)

	ss, err := NewSQLiteStore(filepath.Join(t.TempDir(), "rooms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	return map[string]types.RoomStore{
		"file":   fs,
		"sqlite": ss,
	}
}

func TestStoreCreateGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := newRoom("team", person("Ada", "INTJ", 1995, 1, 1, 12))
			require.NoError(t, s.Create(ctx, r))

			got, err := s.Get(ctx, r.ID)
			require.NoError(t, err)
			assert.Equal(t, r.ID, got.ID)
			assert.Equal(t, "team", got.Name)
			assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
			require.Len(t, got.Participants, 1)
			assert.Equal(t, r.Participants[0].ID, got.Participants[0].ID)
			assert.Equal(t, "INTJ", got.Participants[0].TypeCode)

			err = s.Create(ctx, r)
			assert.True(t, errors.Is(err, ErrExists), "duplicate create: %v", err)
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, uuid.NewString())
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = s.Get(ctx, "../../etc/passwd")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = s.Update(ctx, uuid.NewString(), func(*types.Room) error { return nil })
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreRejectsNonUUID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			r := newRoom("bad")
			r.ID = "not-a-uuid"
			assert.Error(t, s.Create(context.Background(), r))
		})
	}
}

func TestStoreUpdate(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := newRoom("team", person("Ada", "INTJ", 1995, 1, 1, 12))
			require.NoError(t, s.Create(ctx, r))

			updated, err := s.Update(ctx, r.ID, func(r *types.Room) error {
				p := person("Bo", "ENFP", 1990, 5, 15, 8)
				p.ID = uuid.NewString()
				r.Participants = append(r.Participants, p)
				return nil
			})
			require.NoError(t, err)
			assert.Len(t, updated.Participants, 2)

			got, err := s.Get(ctx, r.ID)
			require.NoError(t, err)
			assert.Len(t, got.Participants, 2)
			assert.Equal(t, "Bo", got.Participants[1].Name)
		})
	}
}

func TestStoreUpdateFailureLeavesRoomUntouched(t *testing.T) {
	boom := errors.New("boom")
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := newRoom("team", person("Ada", "INTJ", 1995, 1, 1, 12))
			require.NoError(t, s.Create(ctx, r))

			_, err := s.Update(ctx, r.ID, func(r *types.Room) error {
				r.Participants = nil
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := s.Get(ctx, r.ID)
			require.NoError(t, err)
			assert.Len(t, got.Participants, 1)
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			later := newRoom("later")
			later.CreatedAt = later.CreatedAt.Add(time.Hour)
			earlier := newRoom("earlier")
			require.NoError(t, s.Create(ctx, later))
			require.NoError(t, s.Create(ctx, earlier))

			rooms, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, rooms, 2)
			assert.Equal(t, "earlier", rooms[0].Name)
			assert.Equal(t, "later", rooms[1].Name)
		})
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	const joiners = 16
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := newRoom("crowd")
			require.NoError(t, s.Create(ctx, r))

			var wg sync.WaitGroup
			for i := 0; i < joiners; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Update(ctx, r.ID, func(r *types.Room) error {
						p := person("", "ISTJ", 1988, 11, 30, 23)
						p.ID = uuid.NewString()
						r.Participants = append(r.Participants, p)
						return nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			got, err := s.Get(ctx, r.ID)
			require.NoError(t, err)
			assert.Len(t, got.Participants, joiners)
		})
	}
}

// Two stores on one directory stand in for two CLI processes.
func TestFileStoreSharedDirectory(t *testing.T) {
	const perStore = 25
	dir := t.TempDir()
	a, err := NewFileStore(dir)
	require.NoError(t, err)
	b, err := NewFileStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	r := newRoom("shared")
	require.NoError(t, a.Create(ctx, r))
	assert.ErrorIs(t, b.Create(ctx, r), ErrExists)

	var wg sync.WaitGroup
	for _, s := range []*FileStore{a, b} {
		for i := 0; i < perStore; i++ {
			wg.Add(1)
			go func(s *FileStore) {
				defer wg.Done()
				_, err := s.Update(ctx, r.ID, func(r *types.Room) error {
					p := person("", "ENTP", 1991, 2, 3, 4)
					p.ID = uuid.NewString()
					r.Participants = append(r.Participants, p)
					return nil
				})
				assert.NoError(t, err)
			}(s)
		}
	}
	wg.Wait()

	got, err := a.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 2*perStore)
}

func TestFileStoreSharedDirectoryCapacity(t *testing.T) {
	const limit = 8
	dir := t.TempDir()
	a, err := NewFileStore(dir)
	require.NoError(t, err)
	b, err := NewFileStore(dir)
	require.NoError(t, err)
	svcA, svcB := NewService(a, limit), NewService(b, limit)

	ctx := context.Background()
	r, err := svcA.Create(ctx, "capped", person("Ada", "INTJ", 1995, 1, 1, 12))
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		full int
	)
	for i := 0; i < 20; i++ {
		svc := svcA
		if i%2 == 1 {
			svc = svcB
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Join(ctx, r.ID, person("", "ISFJ", 1993, 6, 7, 8))
			if errors.Is(err, ErrRoomFull) {
				mu.Lock()
				full++
				mu.Unlock()
				return
			}
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svcB.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, limit)
	assert.Equal(t, 20-(limit-1), full)
}

func TestFileStoreWaitsForDirectoryLock(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	r := newRoom("locked")
	require.NoError(t, fs.Create(context.Background(), r))

	held := flock.New(filepath.Join(dir, lockFileName))
	require.NoError(t, held.Lock())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = fs.Update(ctx, r.ID, func(*types.Room) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, held.Unlock())
	_, err = fs.Update(context.Background(), r.ID, func(*types.Room) error { return nil })
	assert.NoError(t, err)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, fs.Create(ctx, newRoom("x")), context.Canceled)
	_, err = fs.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.RoomsConfig{Backend: config.BackendFile, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(config.RoomsConfig{Backend: config.BackendSQLite, Dir: dir})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	assert.Equal(t, filepath.Join(dir, "rooms.db"), s.(*SQLiteStore).Path())
	require.NoError(t, s.(*SQLiteStore).Close())

	_, err = Open(config.RoomsConfig{Backend: "postgres", Dir: dir})
	assert.Error(t, err)
}
