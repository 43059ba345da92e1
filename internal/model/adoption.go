package model

import "time"

// Adoption request status values.  Requests are always created pending;
// the other two states are reserved for the shelter staff's manual
// review flow.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AdoptionRequest mirrors the `adoption_requests` table.  A row is only
// ever created inside the same transaction that flips the pet's status
// to pending, so a request for an unavailable pet cannot exist.
type AdoptionRequest struct {
	ID        uint64    // adoption_requests.id
	PetID     uint64    // adoption_requests.pet_id
	UserID    uint64    // adoption_requests.user_id
	Message   string    // adoption_requests.message
	Status    string    // adoption_requests.status
	CreatedAt time.Time // adoption_requests.created_at
}
