// Package queue defines message payloads exchanged over the message broker.
package queue

// AdoptionSubmittedEvent is published after an adoption request commits.
// It carries enough information for downstream consumers to log or notify
// shelter staff without querying the primary database.  The event stream
// is advisory: the workflow's correctness never depends on it.
type AdoptionSubmittedEvent struct {
	EventID     string `json:"event_id"`
	RequestID   uint64 `json:"request_id"`
	PetID       uint64 `json:"pet_id"`
	PetName     string `json:"pet_name"`
	UserID      uint64 `json:"user_id"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submitted_at"`
}
