package model

import "time"

// Pet status values.  A pet starts out available, moves to pending when
// an adoption request is submitted, and only leaves pending through an
// admin edit (approval handling is a manual step, not modeled here).
const (
	PetStatusAvailable = "available"
	PetStatusPending   = "pending"
	PetStatusAdopted   = "adopted"
)

// Pet mirrors the `pets` table.  Rows are served to the public catalog
// as-is, so the struct carries json tags matching the column names the
// web client expects.
type Pet struct {
	ID          uint64    `json:"id"`          // pets.id
	Name        string    `json:"name"`        // pets.name
	Type        string    `json:"type"`        // pets.type
	Breed       *string   `json:"breed"`       // pets.breed (nullable)
	Age         *uint32   `json:"age"`         // pets.age (nullable)
	Gender      *string   `json:"gender"`      // pets.gender (nullable)
	Size        *string   `json:"size"`        // pets.size (nullable)
	Description *string   `json:"description"` // pets.description (nullable)
	ImageURL    *string   `json:"image_url"`   // pets.image_url (nullable)
	Status      string    `json:"status"`      // pets.status
	CreatedAt   time.Time `json:"created_at"`  // pets.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // pets.updated_at
}
