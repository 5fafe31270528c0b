package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrios/cinemap/internal/model"
	"github.com/davidrios/cinemap/internal/queue"
	"github.com/davidrios/cinemap/internal/repository"
)

type fakeRoomStore struct {
	rooms   map[uint64]*model.Room
	nextID  uint64
	inserts int
	updates int
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: map[uint64]*model.Room{}, nextID: 1}
}

func (f *fakeRoomStore) Insert(ctx context.Context, r *model.Room) error {
	f.inserts++
	r.ID = f.nextID
	f.nextID++
	cp := *r
	f.rooms[r.ID] = &cp
	return nil
}

func (f *fakeRoomStore) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomStore) List(ctx context.Context) ([]*model.Room, error) {
	out := make([]*model.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRoomStore) Update(ctx context.Context, r *model.Room) error {
	if _, ok := f.rooms[r.ID]; !ok {
		return repository.ErrRoomNotFound
	}
	f.updates++
	cp := *r
	f.rooms[r.ID] = &cp
	return nil
}

func (f *fakeRoomStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.rooms[id]; !ok {
		return repository.ErrRoomNotFound
	}
	delete(f.rooms, id)
	return nil
}

func roomFixture(store *fakeRoomStore, owner string) *model.Room {
	r := &model.Room{ID: store.nextID, Name: "Sala 1", Address: "Gran Via 12", OwnerEmail: owner}
	store.rooms[r.ID] = r
	store.nextID++
	return r
}

func TestRoomCreate(t *testing.T) {
	store := newFakeRoomStore()
	rec := &eventRecorder{}
	svc := NewRoomService(store, rec.publish)

	r, err := svc.Create(context.Background(), "alice@example.com", RoomInput{Name: "Sala 1", Address: "Gran Via 12"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", r.OwnerEmail)
	assert.NotZero(t, r.ID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, queue.KindRoom, rec.events[0].Kind)
}

func TestRoomCreateValidation(t *testing.T) {
	store := newFakeRoomStore()
	svc := NewRoomService(store, nil)

	_, err := svc.Create(context.Background(), "alice@example.com", RoomInput{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"name is required", "address is required"}, ve.Errors)
	assert.Equal(t, 0, store.inserts)
}

func TestRoomCreateUnauthenticated(t *testing.T) {
	svc := NewRoomService(newFakeRoomStore(), nil)
	_, err := svc.Create(context.Background(), "", RoomInput{Name: "Sala 1", Address: "Gran Via 12"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRoomUpdate(t *testing.T) {
	store := newFakeRoomStore()
	existing := roomFixture(store, "alice@example.com")
	svc := NewRoomService(store, nil)

	r, err := svc.Update(context.Background(), "alice@example.com", existing.ID, RoomInput{
		Name: "Sala 2", Address: "Calle Mayor 3",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sala 2", r.Name)
	assert.Equal(t, "alice@example.com", r.OwnerEmail)
}

func TestRoomUpdateForbidden(t *testing.T) {
	store := newFakeRoomStore()
	existing := roomFixture(store, "alice@example.com")
	svc := NewRoomService(store, nil)

	_, err := svc.Update(context.Background(), "mallory@example.com", existing.ID, RoomInput{
		Name: "Sala 2", Address: "Calle Mayor 3",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, store.updates)
}

func TestRoomDelete(t *testing.T) {
	store := newFakeRoomStore()
	existing := roomFixture(store, "alice@example.com")
	svc := NewRoomService(store, nil)

	require.NoError(t, svc.Delete(context.Background(), "alice@example.com", existing.ID))
	_, err := store.GetByID(context.Background(), existing.ID)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestRoomDeleteNotFound(t *testing.T) {
	svc := NewRoomService(newFakeRoomStore(), nil)
	err := svc.Delete(context.Background(), "alice@example.com", 42)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}
