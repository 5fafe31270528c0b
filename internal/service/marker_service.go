package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/davidrios/cinemap/internal/geocoding"
	"github.com/davidrios/cinemap/internal/model"
	"github.com/davidrios/cinemap/internal/queue"
	"github.com/davidrios/cinemap/internal/storage"
	"github.com/davidrios/cinemap/internal/validate"
)

// BoundingBoxDelta is the fixed half-width, in degrees, of the proximity
// filter applied to both latitude and longitude on marker list queries.
const BoundingBoxDelta = 0.2

// MarkerStore is the persistence interface the marker service depends on.
// It is implemented by repository.MarkerRepo and by fakes in tests.
type MarkerStore interface {
	Insert(ctx context.Context, m *model.Marker) error
	GetByID(ctx context.Context, id uint64) (*model.Marker, error)
	List(ctx context.Context) ([]*model.Marker, error)
	ListByBoundingBox(ctx context.Context, lat, lon, delta float64) ([]*model.Marker, error)
	Update(ctx context.Context, m *model.Marker) error
	Delete(ctx context.Context, id uint64) error
}

// PublishFunc publishes a record event to the message broker.  Publishing
// is best-effort: the services log nothing and never fail a request over
// it, because the record is already persisted when events go out.
type PublishFunc func(ctx context.Context, ev queue.RecordEvent) error

// MarkerInput is a marker submission as received from the client.  Image
// is the raw upload payload; a nil/empty slice means no image was sent.
type MarkerInput struct {
	Name      string
	Place     string
	Image     []byte
	ImageType string
}

// MarkerService orchestrates the marker lifecycle: validation, geocoding,
// image upload, persistence and ownership checks, in that order.
type MarkerService struct {
	store    MarkerStore
	geocoder geocoding.Provider
	uploader storage.Uploader
	publish  PublishFunc // may be nil when no broker is configured
}

// NewMarkerService wires the marker orchestrator with its collaborators.
func NewMarkerService(store MarkerStore, geocoder geocoding.Provider, uploader storage.Uploader, publish PublishFunc) *MarkerService {
	if store == nil || geocoder == nil || uploader == nil {
		panic("nil collaborator passed to NewMarkerService")
	}
	return &MarkerService{store: store, geocoder: geocoder, uploader: uploader, publish: publish}
}

// Create runs the full creation pipeline for a marker.  Any authenticated
// caller may create; the caller becomes the owner.  The sequence is
// validate → geocode → upload → insert: the store write comes last, so a
// failure at any earlier step leaves the store unchanged.  The only
// accepted inconsistency is an uploaded image that ends up unreferenced
// when the insert itself fails.
func (s *MarkerService) Create(ctx context.Context, callerEmail string, in MarkerInput) (*model.Marker, error) {
	if callerEmail == "" {
		return nil, ErrUnauthenticated
	}

	name := strings.TrimSpace(in.Name)
	place := strings.TrimSpace(in.Place)
	if place == "" {
		place = name // the name doubles as the geocoding query
	}
	if errs := validate.MarkerInput(name, place); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	coords, err := s.resolvePlace(ctx, place)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if len(in.Image) > 0 {
		imageURL, err = s.uploader.Upload(ctx, in.Image, in.ImageType, "markers")
		if err != nil {
			return nil, depErr(DepStorage, err)
		}
	}

	m := model.NewMarker(name, place, callerEmail, coords.Latitude, coords.Longitude, imageURL)
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, depErr(DepStore, err)
	}

	s.emit(ctx, queue.ActionCreated, m)
	return m, nil
}

// Update applies a full replacement submission to an existing marker.
// Only the owner may update.  Geocoding re-runs only when the place text
// differs from the stored value, and latitude/longitude are only ever
// overwritten together.  When no new image is submitted the previous
// image URL is carried forward unchanged.
func (s *MarkerService) Update(ctx context.Context, callerEmail string, id uint64, in MarkerInput) (*model.Marker, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(existing.OwnerEmail, callerEmail); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	place := strings.TrimSpace(in.Place)
	if place == "" {
		place = name
	}
	if errs := validate.MarkerInput(name, place); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	lat, lon := existing.Latitude, existing.Longitude
	if place != existing.Place {
		coords, err := s.resolvePlace(ctx, place)
		if err != nil {
			return nil, err
		}
		lat, lon = coords.Latitude, coords.Longitude
	}

	imageURL := existing.ImageURL
	if len(in.Image) > 0 {
		imageURL, err = s.uploader.Upload(ctx, in.Image, in.ImageType, "markers")
		if err != nil {
			return nil, depErr(DepStorage, err)
		}
	}

	updated := &model.Marker{
		ID:         existing.ID,
		Name:       name,
		Place:      place,
		Latitude:   lat,
		Longitude:  lon,
		ImageURL:   imageURL,
		OwnerEmail: existing.OwnerEmail, // ownership is immutable
		CreatedAt:  existing.CreatedAt,
	}
	if err := s.store.Update(ctx, updated); err != nil {
		return nil, depErr(DepStore, err)
	}

	s.emit(ctx, queue.ActionUpdated, updated)
	return updated, nil
}

// Delete removes a marker.  Only the owner may delete.
func (s *MarkerService) Delete(ctx context.Context, callerEmail string, id uint64) error {
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

// Get fetches a single marker by id.
func (s *MarkerService) Get(ctx context.Context, id uint64) (*model.Marker, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all markers ordered by creation time ascending.
func (s *MarkerService) List(ctx context.Context) ([]*model.Marker, error) {
	return s.store.List(ctx)
}

// ListNear returns the markers within ±BoundingBoxDelta degrees of the
// reference point on both axes, ordered by creation time ascending.
func (s *MarkerService) ListNear(ctx context.Context, lat, lon float64) ([]*model.Marker, error) {
	return s.store.ListByBoundingBox(ctx, lat, lon, BoundingBoxDelta)
}

// resolvePlace performs the single geocoding attempt.  Zero results mean
// the submitted place text itself is bad input, so they surface as a
// ValidationError; everything else is a dependency failure.
func (s *MarkerService) resolvePlace(ctx context.Context, place string) (*geocoding.Coordinates, error) {
	coords, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoResults) {
			return nil, &ValidationError{Errors: []string{"place could not be resolved: " + place}}
		}
		return nil, depErr(DepGeocoder, err)
	}
	return coords, nil
}

func (s *MarkerService) emit(ctx context.Context, action string, m *model.Marker) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.RecordEvent{
		Kind:       queue.KindMarker,
		Action:     action,
		RecordID:   m.ID,
		Name:       m.Name,
		OwnerEmail: m.OwnerEmail,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
