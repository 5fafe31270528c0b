package model

import "time"

// Room represents a screening room registered by a user.  Rooms are the
// simplest entity kind: a name and a postal address, no geocoding and no
// image.  Corresponds to a row in the `rooms` table.
type Room struct {
	ID         uint64    `json:"id"`          // rooms.id
	Name       string    `json:"name"`        // rooms.name
	Address    string    `json:"address"`     // rooms.address
	OwnerEmail string    `json:"owner_email"` // rooms.owner_email
	CreatedAt  time.Time `json:"created_at"`  // rooms.created_at
}

// NewRoom builds a fully-initialized Room value with the creation time set
// to now.  The ID is assigned by the store on insert.
func NewRoom(name, address, ownerEmail string) *Room {
	return &Room{
		Name:       name,
		Address:    address,
		OwnerEmail: ownerEmail,
		CreatedAt:  time.Now().UTC(),
	}
}
