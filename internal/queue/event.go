// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into audit log lines.
package queue

// Record event kinds and actions.  Kind names the entity type, Action the
// lifecycle step that just completed against the store.
const (
	KindMarker = "marker"
	KindMovie  = "movie"
	KindRoom   = "room"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordEvent is published after a record was successfully persisted,
// updated or deleted.  It carries enough information for downstream
// consumers to log or trigger notifications without querying the primary
// database.
type RecordEvent struct {
	Kind       string `json:"kind"`        // marker | movie | room
	Action     string `json:"action"`      // created | updated | deleted
	RecordID   uint64 `json:"record_id"`   // store-assigned identifier
	Name       string `json:"name"`        // name or title of the record
	OwnerEmail string `json:"owner_email"` // identity of the record's owner
	OccurredAt string `json:"occurred_at"` // RFC3339 timestamp of the mutation
}
