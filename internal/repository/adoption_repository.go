package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pawhaven/shelter-api/internal/database"
	"github.com/pawhaven/shelter-api/internal/model"
)

// AdoptionRepo persists adoption requests.  Submission is the one write
// path in the system whose correctness depends on the database: the pet's
// availability is re-read and its status flipped inside a single
// transaction, so two submissions racing for the same pet cannot both
// succeed no matter how the handlers interleave.
type AdoptionRepo struct {
	db *sql.DB
}

// NewAdoptionRepo returns a new AdoptionRepo bound to the given database.
func NewAdoptionRepo(db *sql.DB) *AdoptionRepo { return &AdoptionRepo{db: db} }

// Submit creates an adoption request for an available pet and moves the
// pet to 'pending', atomically.  The status read uses FOR UPDATE so the
// row stays locked until commit; a concurrent submission blocks on the
// lock and then observes 'pending', yielding ErrPetUnavailable with no
// rows written.  On success the generated ID and status are populated on
// req.
func (r *AdoptionRepo) Submit(ctx context.Context, req *model.AdoptionRequest) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var status string
		err := tx.QueryRowContext(ctx,
			"SELECT status FROM pets WHERE id = ? FOR UPDATE", req.PetID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPetNotFound
		}
		if err != nil {
			return err
		}
		if status != model.PetStatusAvailable {
			return ErrPetUnavailable
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO adoption_requests (pet_id, user_id, message, status) VALUES (?, ?, ?, 'pending')",
			req.PetID, req.UserID, req.Message)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE pets SET status = 'pending' WHERE id = ?", req.PetID); err != nil {
			return err
		}
		req.ID = uint64(id)
		req.Status = model.RequestStatusPending
		return nil
	})
}

// AdoptionRequestDetail is a request row joined with the pet fields the
// profile page displays.
type AdoptionRequestDetail struct {
	ID        uint64    `json:"id"`
	PetID     uint64    `json:"pet_id"`
	UserID    uint64    `json:"user_id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	PetName   string    `json:"pet_name"`
	ImageURL  *string   `json:"image_url"`
	Breed     *string   `json:"breed"`
	Age       *uint32   `json:"age"`
	Type      string    `json:"type"`
}

// ListByUser returns a user's adoption requests newest-first, each joined
// with its pet for display.
func (r *AdoptionRepo) ListByUser(ctx context.Context, userID uint64) ([]AdoptionRequestDetail, error) {
	const q = `SELECT ar.id, ar.pet_id, ar.user_id, ar.message, ar.status, ar.created_at,
                      p.name AS pet_name, p.image_url, p.breed, p.age, p.type
                 FROM adoption_requests ar
                 JOIN pets p ON ar.pet_id = p.id
                WHERE ar.user_id = ?
                ORDER BY ar.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]AdoptionRequestDetail, 0)
	for rows.Next() {
		var it AdoptionRequestDetail
		if err := rows.Scan(
			&it.ID, &it.PetID, &it.UserID, &it.Message, &it.Status, &it.CreatedAt,
			&it.PetName, &it.ImageURL, &it.Breed, &it.Age, &it.Type,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
