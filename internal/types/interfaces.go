package types

import (
	"context"
)

// RoomStore persists rooms and their participants.
type RoomStore interface {
	Create(ctx context.Context, room Room) error
	Get(ctx context.Context, id string) (Room, error)
	// Update replaces a stored room with the result of fn. Implementations
	// serialise concurrent updates to the same room.
	Update(ctx context.Context, id string, fn func(*Room) error) (Room, error)
	List(ctx context.Context) ([]Room, error)
}
