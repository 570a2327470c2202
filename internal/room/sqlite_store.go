package room

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"sajumatch/internal/logging"
	"sajumatch/internal/types"
)

// SQLiteStore keeps rooms in a single SQLite database. Participants are
// stored as a JSON column since they are always read and written together
// with their room.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewSQLiteStore creates or opens a room database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.StoreDebug("sqlite store at %s", dbPath)
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		participants_json TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_rooms_created ON rooms(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create inserts a new room.
func (s *SQLiteStore) Create(ctx context.Context, r types.Room) error {
	if !validID(r.ID) {
		return fmt.Errorf("invalid room id %q", r.ID)
	}
	participants, err := json.Marshal(participantsOrEmpty(r.Participants))
	if err != nil {
		return fmt.Errorf("failed to marshal participants: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE id = ?`, r.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check room: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("room %s: %w", r.ID, ErrExists)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rooms (id, name, created_at, participants_json) VALUES (?, ?, ?, ?)`,
		r.ID, r.Name, r.CreatedAt.UTC().Format(time.RFC3339Nano), string(participants))
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

// Get reads a room.
func (s *SQLiteStore) Get(ctx context.Context, id string) (types.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, s.db, id)
}

// Update applies fn inside a transaction.
func (s *SQLiteStore) Update(ctx context.Context, id string, fn func(*types.Room) error) (types.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Room{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	r, err := s.get(ctx, tx, id)
	if err != nil {
		return types.Room{}, err
	}
	if err := fn(&r); err != nil {
		return types.Room{}, err
	}

	participants, err := json.Marshal(participantsOrEmpty(r.Participants))
	if err != nil {
		return types.Room{}, fmt.Errorf("failed to marshal participants: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE rooms SET name = ?, participants_json = ? WHERE id = ?`,
		r.Name, string(participants), id)
	if err != nil {
		return types.Room{}, fmt.Errorf("failed to update room: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return types.Room{}, fmt.Errorf("failed to commit: %w", err)
	}

	r.ID = id
	logging.StoreDebug("updated room %s (%d participants)", id, len(r.Participants))
	return r, nil
}

// List returns every room, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]types.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, participants_json FROM rooms ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []types.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortRooms(rooms)
	return rooms, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) get(ctx context.Context, q queryer, id string) (types.Room, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, created_at, participants_json FROM rooms WHERE id = ?`, id)
	r, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Room{}, fmt.Errorf("room %q: %w", id, ErrNotFound)
	}
	return r, err
}

func scanRoom(sc scanner) (types.Room, error) {
	var (
		r            types.Room
		createdAt    string
		participants string
	)
	if err := sc.Scan(&r.ID, &r.Name, &createdAt, &participants); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Room{}, err
		}
		return types.Room{}, fmt.Errorf("failed to scan room: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return types.Room{}, fmt.Errorf("room %s: bad created_at: %w", r.ID, err)
	}
	r.CreatedAt = t

	if err := json.Unmarshal([]byte(participants), &r.Participants); err != nil {
		return types.Room{}, fmt.Errorf("room %s: bad participants: %w", r.ID, err)
	}
	return r, nil
}

func participantsOrEmpty(p []types.Person) []types.Person {
	if p == nil {
		return []types.Person{}
	}
	return p
}
