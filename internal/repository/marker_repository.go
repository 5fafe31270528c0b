// This file defines repository methods for markers: CRUD plus the
// bounding-box proximity query used by the list endpoint.  The marker table
// schema is:
//
//   CREATE TABLE markers (
//     id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     name        VARCHAR(255)  NOT NULL,
//     place       VARCHAR(512)  NOT NULL,
//     latitude    DOUBLE        NOT NULL DEFAULT 0,
//     longitude   DOUBLE        NOT NULL DEFAULT 0,
//     image_url   VARCHAR(1024) NOT NULL DEFAULT '',
//     owner_email VARCHAR(255)  NOT NULL,
//     created_at  DATETIME      NOT NULL,
//     KEY idx_markers_lat_lon (latitude, longitude)
//   );
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/davidrios/cinemap/internal/model"
)

// MarkerRepo encapsulates all database queries related to markers.  It
// depends on a sql.DB connection which should be configured elsewhere.
type MarkerRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMarkerRepo constructs a MarkerRepo with the provided DB handle.  This
// allows dependency injection of the database in tests and at startup.
func NewMarkerRepo(db *sql.DB) *MarkerRepo {
	return &MarkerRepo{db: db}
}

const markerColumns = "id, name, place, latitude, longitude, image_url, owner_email, created_at"

// Insert persists a new marker.  On success the marker's ID field is
// populated with the auto-generated value.  This is the only durable write
// on the create path and it happens after all external calls succeeded.
func (r *MarkerRepo) Insert(ctx context.Context, m *model.Marker) error {
	const q = `INSERT INTO markers (name, place, latitude, longitude, image_url, owner_email, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Place, m.Latitude, m.Longitude, m.ImageURL, m.OwnerEmail, m.CreatedAt)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a marker by its ID regardless of owner.  It returns
// ErrMarkerNotFound if no row is found.
func (r *MarkerRepo) GetByID(ctx context.Context, id uint64) (*model.Marker, error) {
	const q = "SELECT " + markerColumns + " FROM markers WHERE id = ?"
	var m model.Marker
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.Name, &m.Place, &m.Latitude, &m.Longitude, &m.ImageURL, &m.OwnerEmail, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMarkerNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all markers ordered by creation time ascending (id breaks
// ties so the order is stable).
func (r *MarkerRepo) List(ctx context.Context) ([]*model.Marker, error) {
	const q = "SELECT " + markerColumns + " FROM markers ORDER BY created_at, id"
	return r.queryMarkers(ctx, q)
}

// ListByBoundingBox returns the markers whose stored latitude and longitude
// both lie within ±delta degrees of the reference point, ordered by creation
// time ascending.
func (r *MarkerRepo) ListByBoundingBox(ctx context.Context, lat, lon, delta float64) ([]*model.Marker, error) {
	const q = "SELECT " + markerColumns + ` FROM markers
	           WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
	           ORDER BY created_at, id`
	return r.queryMarkers(ctx, q, lat-delta, lat+delta, lon-delta, lon+delta)
}

// Update replaces the mutable columns of an existing marker.  The id, owner
// and creation time never change.  It returns ErrMarkerNotFound when no row
// was affected.
func (r *MarkerRepo) Update(ctx context.Context, m *model.Marker) error {
	const q = `UPDATE markers
	           SET name = ?, place = ?, latitude = ?, longitude = ?, image_url = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Place, m.Latitude, m.Longitude, m.ImageURL, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the update was a no-op on an existing
		// row, so re-check existence before reporting not-found.
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a marker by id.  Ownership is checked by the service layer
// before this is called.  Returns ErrMarkerNotFound when no row matched.
func (r *MarkerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM markers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMarkerNotFound
	}
	return nil
}

// queryMarkers runs a multi-row marker query and scans the results.
func (r *MarkerRepo) queryMarkers(ctx context.Context, q string, args ...any) ([]*model.Marker, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Marker
	for rows.Next() {
		m := new(model.Marker)
		if err := rows.Scan(&m.ID, &m.Name, &m.Place, &m.Latitude, &m.Longitude, &m.ImageURL, &m.OwnerEmail, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
