package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/model"
	"github.com/pawhaven/shelter-api/internal/repository"
)

// PetStore is the slice of the pet repository the catalog and admin CRUD
// endpoints need.  *repository.PetRepo satisfies it.
type PetStore interface {
	List(ctx context.Context) ([]repository.PetListItem, error)
	GetByID(ctx context.Context, id uint64) (model.Pet, error)
	Create(ctx context.Context, p *model.Pet) error
	Update(ctx context.Context, id uint64, p model.Pet) error
	Delete(ctx context.Context, id uint64) error
}

// PetHandler serves the public pet catalog and the admin-only CRUD over
// pet records.  Role enforcement for the write endpoints happens in the
// routing layer (JWTAuth + RequireRole admin).
type PetHandler struct {
	Pets PetStore
}

func NewPetHandler(pets PetStore) *PetHandler {
	if pets == nil {
		panic("nil store passed to NewPetHandler")
	}
	return &PetHandler{Pets: pets}
}

type petReq struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Type        string  `json:"type" validate:"required,min=1"`
	Breed       *string `json:"breed"`
	Age         *uint32 `json:"age"`
	Gender      *string `json:"gender"`
	Size        *string `json:"size"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Status      string  `json:"status" validate:"omitempty,oneof=available pending adopted"`
}

func (r petReq) toModel() model.Pet {
	return model.Pet{
		Name:        r.Name,
		Type:        r.Type,
		Breed:       r.Breed,
		Age:         r.Age,
		Gender:      r.Gender,
		Size:        r.Size,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Status:      r.Status,
	}
}

// List handles GET /api/pets.  Public; responses are cached briefly by
// the Redis middleware.
func (h *PetHandler) List(c echo.Context) error {
	items, err := h.Pets.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error fetching pets"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": items})
}

// Get handles GET /api/pets/:id.
func (h *PetHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid pet id"})
	}
	p, err := h.Pets.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error fetching pet"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

// Create handles POST /api/pets (admin only).  New pets always start
// 'available'; a status in the payload is ignored on create.
func (h *PetHandler) Create(c echo.Context) error {
	var req petReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, err)
	}
	p := req.toModel()
	if err := h.Pets.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error adding pet"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Pet added successfully", "data": p})
}

// Update handles PUT /api/pets/:id (admin only).
func (h *PetHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid pet id"})
	}
	var req petReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, err)
	}
	if err := h.Pets.Update(c.Request().Context(), id, req.toModel()); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error updating pet"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Pet updated successfully"})
}

// Delete handles DELETE /api/pets/:id (admin only).  Deleting an unknown
// id is not an error, matching the idempotent behavior clients expect.
func (h *PetHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid pet id"})
	}
	if err := h.Pets.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error deleting pet"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Pet deleted successfully"})
}
