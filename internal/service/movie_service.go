package service

import (
	"context"
	"strings"
	"time"

	"github.com/davidrios/cinemap/internal/model"
	"github.com/davidrios/cinemap/internal/queue"
	"github.com/davidrios/cinemap/internal/storage"
	"github.com/davidrios/cinemap/internal/validate"
)

// MovieStore is the persistence interface the movie service depends on.
type MovieStore interface {
	Insert(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	List(ctx context.Context) ([]*model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
}

// MovieInput is a movie submission as received from the client.  Poster is
// the raw upload payload; empty means no poster was sent.
type MovieInput struct {
	Title      string
	Poster     []byte
	PosterType string
}

// MovieService runs the same orchestration shape as markers minus the
// geocoding step: validate → upload poster → persist, with ownership
// checks on update and delete.
type MovieService struct {
	store    MovieStore
	uploader storage.Uploader
	publish  PublishFunc
}

// NewMovieService wires the movie orchestrator with its collaborators.
func NewMovieService(store MovieStore, uploader storage.Uploader, publish PublishFunc) *MovieService {
	if store == nil || uploader == nil {
		panic("nil collaborator passed to NewMovieService")
	}
	return &MovieService{store: store, uploader: uploader, publish: publish}
}

// Create validates the submission, uploads the poster when present and
// persists the movie.  The store write comes last.
func (s *MovieService) Create(ctx context.Context, callerEmail string, in MovieInput) (*model.Movie, error) {
	if callerEmail == "" {
		return nil, ErrUnauthenticated
	}

	title := strings.TrimSpace(in.Title)
	if errs := validate.MovieInput(title); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	posterURL := ""
	if len(in.Poster) > 0 {
		url, err := s.uploader.Upload(ctx, in.Poster, in.PosterType, "movies")
		if err != nil {
			return nil, depErr(DepStorage, err)
		}
		posterURL = url
	}

	m := model.NewMovie(title, posterURL, callerEmail)
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, depErr(DepStore, err)
	}

	s.emit(ctx, queue.ActionCreated, m)
	return m, nil
}

// Update applies a replacement submission to an existing movie.  Only the
// owner may update; the previous poster URL is carried forward when no new
// poster is submitted.
func (s *MovieService) Update(ctx context.Context, callerEmail string, id uint64, in MovieInput) (*model.Movie, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(existing.OwnerEmail, callerEmail); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if errs := validate.MovieInput(title); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	posterURL := existing.PosterURL
	if len(in.Poster) > 0 {
		posterURL, err = s.uploader.Upload(ctx, in.Poster, in.PosterType, "movies")
		if err != nil {
			return nil, depErr(DepStorage, err)
		}
	}

	updated := &model.Movie{
		ID:         existing.ID,
		Title:      title,
		PosterURL:  posterURL,
		OwnerEmail: existing.OwnerEmail,
		CreatedAt:  existing.CreatedAt,
	}
	if err := s.store.Update(ctx, updated); err != nil {
		return nil, depErr(DepStore, err)
	}

	s.emit(ctx, queue.ActionUpdated, updated)
	return updated, nil
}

// Delete removes a movie.  Only the owner may delete.
func (s *MovieService) Delete(ctx context.Context, callerEmail string, id uint64) error {
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

// Get fetches a single movie by id.
func (s *MovieService) Get(ctx context.Context, id uint64) (*model.Movie, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all movies ordered by creation time ascending.
func (s *MovieService) List(ctx context.Context) ([]*model.Movie, error) {
	return s.store.List(ctx)
}

func (s *MovieService) emit(ctx context.Context, action string, m *model.Movie) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.RecordEvent{
		Kind:       queue.KindMovie,
		Action:     action,
		RecordID:   m.ID,
		Name:       m.Title,
		OwnerEmail: m.OwnerEmail,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
