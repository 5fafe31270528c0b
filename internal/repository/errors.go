// Package repository contains the data access layer, separated from HTTP
// handlers and services.  This file defines sentinel error values shared
// across the per-entity repositories so that higher layers can distinguish
// failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrMarkerNotFound is returned when a marker cannot be found in the DB.
var ErrMarkerNotFound = errors.New("marker not found")

// ErrMovieNotFound is returned when a movie cannot be found in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// ErrRoomNotFound is returned when a room cannot be found in the DB.
var ErrRoomNotFound = errors.New("room not found")
