package model

import "time"

// Movie represents a film entry created by a user.  Movies carry no
// coordinates; the only external dependency involved in their lifecycle
// is the optional poster upload.  Corresponds to a row in the `movies`
// table.
type Movie struct {
	ID         uint64    `json:"id"`          // movies.id
	Title      string    `json:"title"`       // movies.title
	PosterURL  string    `json:"poster_url"`  // movies.poster_url (empty = no poster)
	OwnerEmail string    `json:"owner_email"` // movies.owner_email
	CreatedAt  time.Time `json:"created_at"`  // movies.created_at
}

// NewMovie builds a fully-initialized Movie value with the creation time
// set to now.  The ID is assigned by the store on insert.
func NewMovie(title, posterURL, ownerEmail string) *Movie {
	return &Movie{
		Title:      title,
		PosterURL:  posterURL,
		OwnerEmail: ownerEmail,
		CreatedAt:  time.Now().UTC(),
	}
}
