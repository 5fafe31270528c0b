// This file defines repository methods for screening rooms.  The rooms
// table schema is:
//
//   CREATE TABLE rooms (
//     id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     name        VARCHAR(255) NOT NULL,
//     address     VARCHAR(512) NOT NULL,
//     owner_email VARCHAR(255) NOT NULL,
//     created_at  DATETIME     NOT NULL
//   );
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/davidrios/cinemap/internal/model"
)

// RoomRepo encapsulates all database queries related to screening rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = "id, name, address, owner_email, created_at"

// Insert persists a new room and populates its ID on success.
func (r *RoomRepo) Insert(ctx context.Context, rm *model.Room) error {
	const q = "INSERT INTO rooms (name, address, owner_email, created_at) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Address, rm.OwnerEmail, rm.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// GetByID fetches a room by id, returning ErrRoomNotFound when missing.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms WHERE id = ?"
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.Name, &rm.Address, &rm.OwnerEmail, &rm.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// List returns all rooms ordered by creation time ascending.
func (r *RoomRepo) List(ctx context.Context) ([]*model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms ORDER BY created_at, id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		rm := new(model.Room)
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Address, &rm.OwnerEmail, &rm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable columns of an existing room.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = "UPDATE rooms SET name = ?, address = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Address, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, rm.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a room by id, returning ErrRoomNotFound when no row matched.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
