package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrios/cinemap/internal/geocoding"
	"github.com/davidrios/cinemap/internal/model"
	"github.com/davidrios/cinemap/internal/queue"
	"github.com/davidrios/cinemap/internal/repository"
)

// ----- fakes -----

type fakeMarkerStore struct {
	markers   map[uint64]*model.Marker
	nextID    uint64
	insertErr error
	updateErr error
	inserts   int
	updates   int
	deletes   int
	lastBox   [3]float64
}

func newFakeMarkerStore() *fakeMarkerStore {
	return &fakeMarkerStore{markers: map[uint64]*model.Marker{}, nextID: 1}
}

func (f *fakeMarkerStore) Insert(ctx context.Context, m *model.Marker) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	m.ID = f.nextID
	f.nextID++
	cp := *m
	f.markers[m.ID] = &cp
	return nil
}

func (f *fakeMarkerStore) GetByID(ctx context.Context, id uint64) (*model.Marker, error) {
	m, ok := f.markers[id]
	if !ok {
		return nil, repository.ErrMarkerNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMarkerStore) List(ctx context.Context) ([]*model.Marker, error) {
	out := make([]*model.Marker, 0, len(f.markers))
	for _, m := range f.markers {
		cp := *m
		out = append(out, &cp)
	}
	sortByCreation(out)
	return out, nil
}

func (f *fakeMarkerStore) ListByBoundingBox(ctx context.Context, lat, lon, delta float64) ([]*model.Marker, error) {
	f.lastBox = [3]float64{lat, lon, delta}
	var out []*model.Marker
	for _, m := range f.markers {
		if m.Latitude >= lat-delta && m.Latitude <= lat+delta &&
			m.Longitude >= lon-delta && m.Longitude <= lon+delta {
			cp := *m
			out = append(out, &cp)
		}
	}
	sortByCreation(out)
	return out, nil
}

// sortByCreation mirrors the store's ORDER BY created_at, id contract.
func sortByCreation(ms []*model.Marker) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].CreatedAt.Equal(ms[j].CreatedAt) {
			return ms[i].CreatedAt.Before(ms[j].CreatedAt)
		}
		return ms[i].ID < ms[j].ID
	})
}

func (f *fakeMarkerStore) Update(ctx context.Context, m *model.Marker) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.markers[m.ID]; !ok {
		return repository.ErrMarkerNotFound
	}
	f.updates++
	cp := *m
	f.markers[m.ID] = &cp
	return nil
}

func (f *fakeMarkerStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.markers[id]; !ok {
		return repository.ErrMarkerNotFound
	}
	f.deletes++
	delete(f.markers, id)
	return nil
}

type fakeGeocoder struct {
	coords    *geocoding.Coordinates
	err       error
	calls     int
	lastPlace string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (*geocoding.Coordinates, error) {
	f.calls++
	f.lastPlace = place
	if f.err != nil {
		return nil, f.err
	}
	return f.coords, nil
}

type fakeUploader struct {
	url        string
	err        error
	calls      int
	lastFolder string
	lastType   string
	lastData   []byte
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	f.calls++
	f.lastData = data
	f.lastType = contentType
	f.lastFolder = folder
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type eventRecorder struct {
	events []queue.RecordEvent
	err    error
}

func (r *eventRecorder) publish(ctx context.Context, ev queue.RecordEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

func parisGeocoder() *fakeGeocoder {
	return &fakeGeocoder{coords: &geocoding.Coordinates{Latitude: 48.8566, Longitude: 2.3522}}
}

func markerFixture(store *fakeMarkerStore, owner string) *model.Marker {
	m := &model.Marker{
		ID: store.nextID, Name: "Tower", Place: "Paris",
		Latitude: 48.8566, Longitude: 2.3522,
		ImageURL: "https://media.example.com/markers/old.jpg", OwnerEmail: owner,
	}
	store.markers[m.ID] = m
	store.nextID++
	return m
}

// ----- create -----

func TestMarkerCreate(t *testing.T) {
	store := newFakeMarkerStore()
	geo := parisGeocoder()
	up := &fakeUploader{url: "https://media.example.com/markers/x.jpg"}
	rec := &eventRecorder{}
	svc := NewMarkerService(store, geo, up, rec.publish)

	m, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "Tower", Place: "Paris"})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), m.ID)
	assert.Equal(t, "alice@example.com", m.OwnerEmail)
	assert.InDelta(t, 48.8566, m.Latitude, 1e-9)
	assert.InDelta(t, 2.3522, m.Longitude, 1e-9)
	assert.Equal(t, "", m.ImageURL) // no image submitted
	assert.Equal(t, 0, up.calls)
	assert.False(t, m.CreatedAt.IsZero())

	require.Len(t, rec.events, 1)
	assert.Equal(t, queue.KindMarker, rec.events[0].Kind)
	assert.Equal(t, queue.ActionCreated, rec.events[0].Action)
	assert.Equal(t, m.ID, rec.events[0].RecordID)
}

func TestMarkerCreateWithImage(t *testing.T) {
	store := newFakeMarkerStore()
	up := &fakeUploader{url: "https://media.example.com/markers/x.jpg"}
	svc := NewMarkerService(store, parisGeocoder(), up, nil)

	m, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{
		Name: "Tower", Place: "Paris", Image: []byte{0xFF, 0xD8}, ImageType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, up.url, m.ImageURL)
	assert.Equal(t, "markers", up.lastFolder)
	assert.Equal(t, "image/jpeg", up.lastType)
}

func TestMarkerCreatePlaceDefaultsToName(t *testing.T) {
	store := newFakeMarkerStore()
	geo := parisGeocoder()
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	m, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "Eiffel Tower"})
	require.NoError(t, err)
	assert.Equal(t, "Eiffel Tower", m.Place)
	assert.Equal(t, "Eiffel Tower", geo.lastPlace)
}

func TestMarkerCreateValidation(t *testing.T) {
	store := newFakeMarkerStore()
	geo := parisGeocoder()
	up := &fakeUploader{}
	svc := NewMarkerService(store, geo, up, nil)

	_, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "  "})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	// Every problem is reported and no collaborator was touched.
	assert.Equal(t, []string{"name is required", "place is required"}, ve.Errors)
	assert.Equal(t, 0, geo.calls)
	assert.Equal(t, 0, up.calls)
	assert.Equal(t, 0, store.inserts)
}

func TestMarkerCreateUnauthenticated(t *testing.T) {
	store := newFakeMarkerStore()
	geo := parisGeocoder()
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	_, err := svc.Create(context.Background(), "", MarkerInput{Name: "Tower", Place: "Paris"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, geo.calls)
	assert.Equal(t, 0, store.inserts)
}

func TestMarkerCreateUnresolvablePlace(t *testing.T) {
	store := newFakeMarkerStore()
	geo := &fakeGeocoder{err: geocoding.ErrNoResults}
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	_, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "Tower", Place: "xyzzy"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors[0], "xyzzy")
	assert.Equal(t, 0, store.inserts)
}

func TestMarkerCreateGeocoderDown(t *testing.T) {
	store := newFakeMarkerStore()
	geo := &fakeGeocoder{err: errors.New("timeout")}
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	_, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "Tower", Place: "Paris"})
	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DepGeocoder, de.Dependency)
	assert.Equal(t, 0, store.inserts)
}

func TestMarkerCreateUploadFails(t *testing.T) {
	store := newFakeMarkerStore()
	up := &fakeUploader{err: errors.New("access denied")}
	svc := NewMarkerService(store, parisGeocoder(), up, nil)

	_, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{
		Name: "Tower", Place: "Paris", Image: []byte{1}, ImageType: "image/png",
	})
	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DepStorage, de.Dependency)
	assert.Equal(t, 0, store.inserts)
}

func TestMarkerCreateInsertFails(t *testing.T) {
	store := newFakeMarkerStore()
	store.insertErr = errors.New("connection lost")
	rec := &eventRecorder{}
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, rec.publish)

	_, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "Tower", Place: "Paris"})
	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DepStore, de.Dependency)
	assert.Empty(t, rec.events) // nothing persisted, nothing announced
}

func TestMarkerCreatePublishFailureIgnored(t *testing.T) {
	store := newFakeMarkerStore()
	rec := &eventRecorder{err: errors.New("broker down")}
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, rec.publish)

	m, err := svc.Create(context.Background(), "alice@example.com", MarkerInput{Name: "Tower", Place: "Paris"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
}

// ----- update -----

func TestMarkerUpdateSamePlaceSkipsGeocoding(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	geo := &fakeGeocoder{err: errors.New("should not be called")}
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	m, err := svc.Update(context.Background(), "alice@example.com", existing.ID, MarkerInput{
		Name: "Renamed Tower", Place: "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, geo.calls)
	assert.InDelta(t, existing.Latitude, m.Latitude, 1e-9)
	assert.InDelta(t, existing.Longitude, m.Longitude, 1e-9)
	assert.Equal(t, "Renamed Tower", m.Name)
}

func TestMarkerUpdateNewPlaceGeocodes(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	geo := &fakeGeocoder{coords: &geocoding.Coordinates{Latitude: 51.5074, Longitude: -0.1278}}
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	m, err := svc.Update(context.Background(), "alice@example.com", existing.ID, MarkerInput{
		Name: "Tower", Place: "London",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geo.calls)
	assert.InDelta(t, 51.5074, m.Latitude, 1e-9)
	assert.InDelta(t, -0.1278, m.Longitude, 1e-9)
}

func TestMarkerUpdateCarriesImageForward(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	up := &fakeUploader{}
	svc := NewMarkerService(store, parisGeocoder(), up, nil)

	m, err := svc.Update(context.Background(), "alice@example.com", existing.ID, MarkerInput{
		Name: "Tower", Place: "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ImageURL, m.ImageURL)
	assert.Equal(t, 0, up.calls)
}

func TestMarkerUpdateReplacesImage(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	up := &fakeUploader{url: "https://media.example.com/markers/new.jpg"}
	svc := NewMarkerService(store, parisGeocoder(), up, nil)

	m, err := svc.Update(context.Background(), "alice@example.com", existing.ID, MarkerInput{
		Name: "Tower", Place: "Paris", Image: []byte{1}, ImageType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, up.url, m.ImageURL)
}

func TestMarkerUpdateUploadFailureLeavesStoreUnchanged(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	up := &fakeUploader{err: errors.New("access denied")}
	svc := NewMarkerService(store, parisGeocoder(), up, nil)

	_, err := svc.Update(context.Background(), "alice@example.com", existing.ID, MarkerInput{
		Name: "Renamed", Place: "Paris", Image: []byte{1}, ImageType: "image/jpeg",
	})
	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, DepStorage, de.Dependency)

	got, err := store.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tower", got.Name) // untouched
}

func TestMarkerUpdateOwnershipImmutable(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	m, err := svc.Update(context.Background(), "alice@example.com", existing.ID, MarkerInput{
		Name: "Tower", Place: "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", m.OwnerEmail)
	assert.Equal(t, existing.CreatedAt, m.CreatedAt)
}

func TestMarkerUpdateForbidden(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	geo := parisGeocoder()
	svc := NewMarkerService(store, geo, &fakeUploader{}, nil)

	_, err := svc.Update(context.Background(), "mallory@example.com", existing.ID, MarkerInput{
		Name: "Hijacked", Place: "Paris",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, geo.calls)
	assert.Equal(t, 0, store.updates)
}

func TestMarkerUpdateUnauthenticated(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	_, err := svc.Update(context.Background(), "", existing.ID, MarkerInput{Name: "Tower", Place: "Paris"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMarkerUpdateNotFound(t *testing.T) {
	store := newFakeMarkerStore()
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	_, err := svc.Update(context.Background(), "alice@example.com", 99, MarkerInput{Name: "Tower", Place: "Paris"})
	assert.ErrorIs(t, err, repository.ErrMarkerNotFound)
}

// ----- delete -----

func TestMarkerDelete(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	rec := &eventRecorder{}
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, rec.publish)

	require.NoError(t, svc.Delete(context.Background(), "alice@example.com", existing.ID))
	_, err := store.GetByID(context.Background(), existing.ID)
	assert.ErrorIs(t, err, repository.ErrMarkerNotFound)

	require.Len(t, rec.events, 1)
	assert.Equal(t, queue.ActionDeleted, rec.events[0].Action)
}

func TestMarkerDeleteForbidden(t *testing.T) {
	store := newFakeMarkerStore()
	existing := markerFixture(store, "alice@example.com")
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	err := svc.Delete(context.Background(), "mallory@example.com", existing.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, store.deletes)
}

func TestMarkerDeleteNotFound(t *testing.T) {
	store := newFakeMarkerStore()
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	err := svc.Delete(context.Background(), "alice@example.com", 99)
	assert.ErrorIs(t, err, repository.ErrMarkerNotFound)
}

// ----- reads -----

func TestMarkerListNearUsesFixedDelta(t *testing.T) {
	store := newFakeMarkerStore()
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	_, err := svc.ListNear(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{48.85, 2.35, BoundingBoxDelta}, store.lastBox)
}

func seedMarker(store *fakeMarkerStore, name string, lat, lon float64, createdAt time.Time) {
	m := &model.Marker{
		ID: store.nextID, Name: name, Place: name,
		Latitude: lat, Longitude: lon,
		OwnerEmail: "alice@example.com", CreatedAt: createdAt,
	}
	store.markers[m.ID] = m
	store.nextID++
}

func markerNames(ms []*model.Marker) []string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}

func TestMarkerListOrderedByCreation(t *testing.T) {
	store := newFakeMarkerStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Seed newest-first so order can only come from created_at, not from
	// insertion or id order.
	seedMarker(store, "newest", 10, 10, base.Add(2*time.Hour))
	seedMarker(store, "middle", 20, 20, base.Add(time.Hour))
	seedMarker(store, "oldest", 30, 30, base)
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"oldest", "middle", "newest"}, markerNames(got))
}

func TestMarkerListNearOrderedAndIdempotent(t *testing.T) {
	store := newFakeMarkerStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedMarker(store, "later", 48.90, 2.40, base.Add(time.Hour))
	seedMarker(store, "earlier", 48.80, 2.30, base)
	seedMarker(store, "far away", 51.50, -0.12, base)
	svc := NewMarkerService(store, parisGeocoder(), &fakeUploader{}, nil)

	first, err := svc.ListNear(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, []string{"earlier", "later"}, markerNames(first))

	// Unchanged store, unchanged answer.
	second, err := svc.ListNear(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
