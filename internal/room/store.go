// Package room manages rooms of participants: persistence, membership and
// the pairwise relationship graph built from compatibility results.
package room

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"sajumatch/internal/config"
	"sajumatch/internal/logging"
	"sajumatch/internal/types"
)

var (
	// ErrNotFound is returned when a room or participant does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when creating a room whose ID is taken.
	ErrExists = errors.New("already exists")
	// ErrRoomFull is returned when joining a room at capacity.
	ErrRoomFull = errors.New("room is full")
)

// Open returns the store selected by the rooms config.
func Open(cfg config.RoomsConfig) (types.RoomStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLiteStore(filepath.Join(cfg.Dir, "rooms.db"))
	case config.BackendFile, "":
		return NewFileStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown room backend %q", cfg.Backend)
	}
}

// validID rejects anything that is not a UUID so IDs can never escape the
// store directory.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// lockFileName is the directory-wide lock shared by every process using
// the same store directory.
const lockFileName = ".lock"

// lockRetry is how often a blocked writer polls for the directory lock.
const lockRetry = 10 * time.Millisecond

// FileStore keeps one YAML document per room. Writers hold an advisory lock
// on the directory so concurrent CLI processes do not lose updates.
type FileStore struct {
	dir  string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create room directory: %w", err)
	}
	logging.StoreDebug("file store at %s", dir)
	return &FileStore{dir: dir, lock: flock.New(filepath.Join(dir, lockFileName))}, nil
}

// Path returns the directory holding the room files.
func (s *FileStore) Path() string { return s.dir }

// withLock runs fn while holding both the in-process mutex and the
// directory lock.
func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("failed to lock room store: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to lock room store %s", s.dir)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logging.Get(logging.CategoryStore).Warn("unlock %s: %v", s.dir, err)
		}
	}()
	return fn()
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}

// Create writes a new room. The room ID must be a UUID.
func (s *FileStore) Create(ctx context.Context, r types.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validID(r.ID) {
		return fmt.Errorf("invalid room id %q", r.ID)
	}

	return s.withLock(ctx, func() error {
		if _, err := os.Stat(s.path(r.ID)); err == nil {
			return fmt.Errorf("room %s: %w", r.ID, ErrExists)
		}
		return s.writeLocked(r)
	})
}

// Get reads a room.
func (s *FileStore) Get(ctx context.Context, id string) (types.Room, error) {
	if err := ctx.Err(); err != nil {
		return types.Room{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(id)
}

// Update applies fn to the stored room and writes the result back. The room
// is left untouched when fn fails.
func (s *FileStore) Update(ctx context.Context, id string, fn func(*types.Room) error) (types.Room, error) {
	if err := ctx.Err(); err != nil {
		return types.Room{}, err
	}

	var r types.Room
	err := s.withLock(ctx, func() error {
		var err error
		r, err = s.readLocked(id)
		if err != nil {
			return err
		}
		if err := fn(&r); err != nil {
			return err
		}
		r.ID = id
		return s.writeLocked(r)
	})
	if err != nil {
		return types.Room{}, err
	}
	return r, nil
}

// List returns every room, oldest first.
func (s *FileStore) List(ctx context.Context) ([]types.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	var rooms []types.Room
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		r, err := s.readLocked(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			logging.StoreDebug("skipping %s: %v", name, err)
			continue
		}
		rooms = append(rooms, r)
	}
	sortRooms(rooms)
	return rooms, nil
}

func (s *FileStore) readLocked(id string) (types.Room, error) {
	if !validID(id) {
		return types.Room{}, fmt.Errorf("room %q: %w", id, ErrNotFound)
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return types.Room{}, fmt.Errorf("room %s: %w", id, ErrNotFound)
		}
		return types.Room{}, fmt.Errorf("failed to read room: %w", err)
	}

	var r types.Room
	if err := yaml.Unmarshal(data, &r); err != nil {
		return types.Room{}, fmt.Errorf("failed to parse room %s: %w", id, err)
	}
	return r, nil
}

// writeLocked writes to a temp file and renames it over the target so a
// reader never sees a partial document.
func (s *FileStore) writeLocked(r types.Room) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+r.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write room: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write room: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(r.ID)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to commit room: %w", err)
	}

	logging.StoreDebug("wrote room %s (%d participants)", r.ID, len(r.Participants))
	return nil
}

func sortRooms(rooms []types.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
}
