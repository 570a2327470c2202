package room

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sajumatch/internal/logging"
	"sajumatch/internal/types"
)

// Service implements room membership on top of a RoomStore.
type Service struct {
	store           types.RoomStore
	maxParticipants int // 0 = unlimited
	now             func() time.Time
	newID           func() string
}

// NewService creates a service. maxParticipants <= 0 disables the cap.
func NewService(store types.RoomStore, maxParticipants int) *Service {
	return &Service{
		store:           store,
		maxParticipants: maxParticipants,
		now:             func() time.Time { return time.Now().UTC() },
		newID:           uuid.NewString,
	}
}

// Create validates the creator, opens a new room and makes the creator its
// first participant.
func (s *Service) Create(ctx context.Context, name string, creator types.Person) (types.Room, error) {
	r := types.Room{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := r.ValidateName(); err != nil {
		return types.Room{}, err
	}
	if err := creator.Validate(); err != nil {
		return types.Room{}, err
	}

	creator.ID = s.newID()
	creator.Creator = true
	creator.JoinedAt = r.CreatedAt
	r.Participants = []types.Person{creator}

	if err := s.store.Create(ctx, r); err != nil {
		return types.Room{}, fmt.Errorf("create room: %w", err)
	}

	logging.Room("room %s created by %s", r.ID, creator.DisplayName())
	return r, nil
}

// Join adds a participant. It returns the stored participant (with its new
// ID) and the updated room.
func (s *Service) Join(ctx context.Context, roomID string, p types.Person) (types.Person, types.Room, error) {
	if err := p.Validate(); err != nil {
		return types.Person{}, types.Room{}, err
	}
	p.ID = s.newID()
	p.Creator = false
	p.JoinedAt = s.now()
	log := logging.Get(logging.CategoryRoom).With("room", roomID, "participant", p.ID)

	r, err := s.store.Update(ctx, roomID, func(r *types.Room) error {
		if s.maxParticipants > 0 && len(r.Participants) >= s.maxParticipants {
			return fmt.Errorf("room %s has %d participants: %w", r.ID, len(r.Participants), ErrRoomFull)
		}
		r.Participants = append(r.Participants, p)
		return nil
	})
	if err != nil {
		log.Debug("join rejected: %v", err)
		return types.Person{}, types.Room{}, err
	}

	log.Info("%s joined (%d participants)", p.DisplayName(), len(r.Participants))
	return p, r, nil
}

// Get returns a room.
func (s *Service) Get(ctx context.Context, roomID string) (types.Room, error) {
	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return types.Room{}, err
	}
	logging.RoomDebug("loaded room %s", roomID)
	return r, nil
}

// List returns all rooms.
func (s *Service) List(ctx context.Context) ([]types.Room, error) {
	return s.store.List(ctx)
}
