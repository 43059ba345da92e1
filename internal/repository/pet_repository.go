package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pawhaven/shelter-api/internal/model"
)

// PetRepo provides CRUD operations for pet records.  Reads are public;
// writes are reserved for admins and enforced at the routing layer.
type PetRepo struct {
	db *sql.DB
}

// NewPetRepo returns a new PetRepo bound to the given database.
func NewPetRepo(db *sql.DB) *PetRepo { return &PetRepo{db: db} }

// PetListItem is a catalog row: the pet plus the number of adoption
// requests currently pending for it.  The count lets the site show "N
// applications" badges without a second round trip.
type PetListItem struct {
	model.Pet
	PendingRequests uint32 `json:"pending_requests"`
}

// List returns all pets newest-first, each with its pending adoption
// request count.
func (r *PetRepo) List(ctx context.Context) ([]PetListItem, error) {
	const q = `SELECT p.id, p.name, p.type, p.breed, p.age, p.gender, p.size,
                      p.description, p.image_url, p.status, p.created_at, p.updated_at,
                      COALESCE(
                        (SELECT COUNT(*) FROM adoption_requests ar
                          WHERE ar.pet_id = p.id AND ar.status = 'pending'),
                        0
                      ) AS pending_requests
                 FROM pets p
                ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]PetListItem, 0)
	for rows.Next() {
		var it PetListItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Type, &it.Breed, &it.Age, &it.Gender, &it.Size,
			&it.Description, &it.ImageURL, &it.Status, &it.CreatedAt, &it.UpdatedAt,
			&it.PendingRequests,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID returns a single pet or ErrPetNotFound.
func (r *PetRepo) GetByID(ctx context.Context, id uint64) (model.Pet, error) {
	const q = `SELECT id, name, type, breed, age, gender, size, description,
                      image_url, status, created_at, updated_at
                 FROM pets WHERE id = ? LIMIT 1`
	var p model.Pet
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age, &p.Gender, &p.Size,
		&p.Description, &p.ImageURL, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Pet{}, ErrPetNotFound
	}
	return p, err
}

// GetStatus reads only the status column.  The adoption handler uses it
// as a fast-path check before opening the submission transaction; the
// authoritative re-check happens inside the transaction.
func (r *PetRepo) GetStatus(ctx context.Context, id uint64) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx, "SELECT status FROM pets WHERE id = ? LIMIT 1", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrPetNotFound
	}
	return status, err
}

// Create inserts a new pet with status 'available' and populates the
// generated ID and timestamps on the provided record.
func (r *PetRepo) Create(ctx context.Context, p *model.Pet) error {
	const q = `INSERT INTO pets (name, type, breed, age, gender, size, description, image_url, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'available')`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Type, p.Breed, p.Age, p.Gender, p.Size, p.Description, p.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	created, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = created
	return nil
}

// Update rewrites the descriptive fields of a pet.  Status is only
// written when set, so an admin can move a pet back to 'available' or
// mark it 'adopted' after handling a request offline, without ordinary
// edits clobbering the adoption workflow's transitions.  Returns
// ErrPetNotFound for unknown ids.
func (r *PetRepo) Update(ctx context.Context, id uint64, p model.Pet) error {
	q := `UPDATE pets SET
                  name = ?, type = ?, breed = ?, age = ?, gender = ?,
                  size = ?, description = ?, image_url = ?`
	args := []interface{}{p.Name, p.Type, p.Breed, p.Age, p.Gender, p.Size, p.Description, p.ImageURL}
	if p.Status != "" {
		q += `, status = ?`
		args = append(args, p.Status)
	}
	q += ` WHERE id = ?`
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero rows can mean a no-op update on an existing row, so
		// confirm before reporting not-found.
		var one int
		if scanErr := r.db.QueryRowContext(ctx, "SELECT 1 FROM pets WHERE id = ?", id).Scan(&one); errors.Is(scanErr, sql.ErrNoRows) {
			return ErrPetNotFound
		}
	}
	return nil
}

// Delete removes a pet.  Dependent adoption requests go with it via the
// foreign key cascade.
func (r *PetRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM pets WHERE id = ?", id)
	return err
}
