package service

import (
	"context"
	"strings"
	"time"

	"github.com/davidrios/cinemap/internal/model"
	"github.com/davidrios/cinemap/internal/queue"
	"github.com/davidrios/cinemap/internal/validate"
)

// RoomStore is the persistence interface the room service depends on.
type RoomStore interface {
	Insert(ctx context.Context, r *model.Room) error
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	List(ctx context.Context) ([]*model.Room, error)
	Update(ctx context.Context, r *model.Room) error
	Delete(ctx context.Context, id uint64) error
}

// RoomInput is a screening room submission as received from the client.
type RoomInput struct {
	Name    string
	Address string
}

// RoomService is the simplest orchestrator: no geocoding, no upload.
// Validate → persist, with ownership checks on update and delete.
type RoomService struct {
	store   RoomStore
	publish PublishFunc
}

// NewRoomService wires the room orchestrator with its store.
func NewRoomService(store RoomStore, publish PublishFunc) *RoomService {
	if store == nil {
		panic("nil store passed to NewRoomService")
	}
	return &RoomService{store: store, publish: publish}
}

// Create validates the submission and persists the room.
func (s *RoomService) Create(ctx context.Context, callerEmail string, in RoomInput) (*model.Room, error) {
	if callerEmail == "" {
		return nil, ErrUnauthenticated
	}

	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	if errs := validate.RoomInput(name, address); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	r := model.NewRoom(name, address, callerEmail)
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, depErr(DepStore, err)
	}

	s.emit(ctx, queue.ActionCreated, r)
	return r, nil
}

// Update applies a replacement submission to an existing room.  Only the
// owner may update.
func (s *RoomService) Update(ctx context.Context, callerEmail string, id uint64, in RoomInput) (*model.Room, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(existing.OwnerEmail, callerEmail); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	if errs := validate.RoomInput(name, address); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	updated := &model.Room{
		ID:         existing.ID,
		Name:       name,
		Address:    address,
		OwnerEmail: existing.OwnerEmail,
		CreatedAt:  existing.CreatedAt,
	}
	if err := s.store.Update(ctx, updated); err != nil {
		return nil, depErr(DepStore, err)
	}

	s.emit(ctx, queue.ActionUpdated, updated)
	return updated, nil
}

// Delete removes a room.  Only the owner may delete.
func (s *RoomService) Delete(ctx context.Context, callerEmail string, id uint64) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(existing.OwnerEmail, callerEmail); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, queue.ActionDeleted, existing)
	return nil
}

// Get fetches a single room by id.
func (s *RoomService) Get(ctx context.Context, id uint64) (*model.Room, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all rooms ordered by creation time ascending.
func (s *RoomService) List(ctx context.Context) ([]*model.Room, error) {
	return s.store.List(ctx)
}

func (s *RoomService) emit(ctx context.Context, action string, r *model.Room) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.RecordEvent{
		Kind:       queue.KindRoom,
		Action:     action,
		RecordID:   r.ID,
		Name:       r.Name,
		OwnerEmail: r.OwnerEmail,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
