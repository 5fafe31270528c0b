// This file defines repository methods for movies.  The movies table schema is:
//
//   CREATE TABLE movies (
//     id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     title       VARCHAR(255)  NOT NULL,
//     poster_url  VARCHAR(1024) NOT NULL DEFAULT '',
//     owner_email VARCHAR(255)  NOT NULL,
//     created_at  DATETIME      NOT NULL
//   );
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/davidrios/cinemap/internal/model"
)

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = "id, title, poster_url, owner_email, created_at"

// Insert persists a new movie and populates its ID on success.
func (r *MovieRepo) Insert(ctx context.Context, m *model.Movie) error {
	const q = "INSERT INTO movies (title, poster_url, owner_email, created_at) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, m.Title, m.PosterURL, m.OwnerEmail, m.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a movie by id, returning ErrMovieNotFound when missing.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies WHERE id = ?"
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.PosterURL, &m.OwnerEmail, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all movies ordered by creation time ascending.
func (r *MovieRepo) List(ctx context.Context) ([]*model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies ORDER BY created_at, id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m := new(model.Movie)
		if err := rows.Scan(&m.ID, &m.Title, &m.PosterURL, &m.OwnerEmail, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable columns of an existing movie.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = "UPDATE movies SET title = ?, poster_url = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, m.Title, m.PosterURL, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a movie by id, returning ErrMovieNotFound when no row matched.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
