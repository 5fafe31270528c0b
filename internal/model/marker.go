package model

import "time"

// Marker represents a geo-tagged point of interest created by a user.
// The latitude/longitude pair is resolved from the free-text Place via
// the geocoding provider and is always written together, never one axis
// at a time.  This struct corresponds to a row in the `markers` table.
//
// Fields:
//  ID         – primary key identifier, assigned by the database.
//  Name       – human-friendly label; doubles as the geocoding query
//               when no separate place text is supplied.
//  Place      – free-text place description used for geocoding.
//  Latitude   – resolved latitude in signed degrees.
//  Longitude  – resolved longitude in signed degrees.
//  ImageURL   – public URL of the attached image; empty means no image.
//  OwnerEmail – email of the creating user; never reassigned.
//  CreatedAt  – timestamp when the marker was created.
type Marker struct {
	ID         uint64    `json:"id"`          // markers.id
	Name       string    `json:"name"`        // markers.name
	Place      string    `json:"place"`       // markers.place
	Latitude   float64   `json:"latitude"`    // markers.latitude
	Longitude  float64   `json:"longitude"`   // markers.longitude
	ImageURL   string    `json:"image_url"`   // markers.image_url
	OwnerEmail string    `json:"owner_email"` // markers.owner_email
	CreatedAt  time.Time `json:"created_at"`  // markers.created_at
}

// NewMarker builds a fully-initialized Marker value.  All mandatory fields
// are parameters so that a marker can never exist in a half-constructed
// state; the ID is left zero until the store assigns it on insert.
func NewMarker(name, place, ownerEmail string, lat, lon float64, imageURL string) *Marker {
	return &Marker{
		Name:       name,
		Place:      place,
		Latitude:   lat,
		Longitude:  lon,
		ImageURL:   imageURL,
		OwnerEmail: ownerEmail,
		CreatedAt:  time.Now().UTC(),
	}
}
