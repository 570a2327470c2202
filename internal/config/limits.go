package config

import "fmt"

// MaxGraphWorkers bounds graph.workers.
const MaxGraphWorkers = 64

// Room store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ValidateLimits checks that room and graph limits are within acceptable ranges.
func (c *Config) ValidateLimits() error {
	if c.Rooms.Backend != BackendFile && c.Rooms.Backend != BackendSQLite {
		return fmt.Errorf("rooms.backend must be %s or %s, got %q", BackendFile, BackendSQLite, c.Rooms.Backend)
	}
	if c.Rooms.Dir == "" {
		return fmt.Errorf("rooms.dir must be set")
	}
	if c.Rooms.MaxParticipants < 0 {
		return fmt.Errorf("rooms.max_participants must be >= 0")
	}
	if c.Graph.Workers < 1 || c.Graph.Workers > MaxGraphWorkers {
		return fmt.Errorf("graph.workers must be within [1,%d]", MaxGraphWorkers)
	}
	return nil
}
