package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/auth"
	"github.com/pawhaven/shelter-api/internal/middleware"
	"github.com/pawhaven/shelter-api/internal/model"
	"github.com/pawhaven/shelter-api/internal/queue"
	"github.com/pawhaven/shelter-api/internal/repository"
)

// AdoptionStore is the slice of the adoption repository the workflow
// needs.  Submit must provide the atomic check-and-transition contract:
// exactly one of several concurrent calls for the same available pet may
// return nil; the rest return repository.ErrPetUnavailable with no rows
// written.  *repository.AdoptionRepo satisfies it.
type AdoptionStore interface {
	Submit(ctx context.Context, req *model.AdoptionRequest) error
	ListByUser(ctx context.Context, userID uint64) ([]repository.AdoptionRequestDetail, error)
}

// PetStatusStore provides the fast-path availability read used before
// the transaction is opened.
type PetStatusStore interface {
	GetStatus(ctx context.Context, id uint64) (string, error)
}

// AdoptionHandler coordinates the adoption-request workflow: validate the
// form, authorize the actor against the target user, check availability,
// and run the guarded state transition.  Validation and authorization
// failures short-circuit before any write is attempted.
type AdoptionHandler struct {
	Adoptions AdoptionStore
	Pets      PetStatusStore
	// Notify, when set, is called after a successful commit with the
	// submitted event.  It must not block the request; failures are the
	// publisher's problem, never the client's.
	Notify func(ctx context.Context, ev queue.AdoptionSubmittedEvent)
}

func NewAdoptionHandler(adoptions AdoptionStore, pets PetStatusStore) *AdoptionHandler {
	if adoptions == nil || pets == nil {
		panic("nil store passed to NewAdoptionHandler")
	}
	return &AdoptionHandler{Adoptions: adoptions, Pets: pets}
}

type adoptionReq struct {
	PetID      uint64 `json:"petId" validate:"required"`
	UserID     uint64 `json:"userId" validate:"required"`
	FullName   string `json:"fullName" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,min=5"`
	Experience string `json:"experience"`
	Reason     string `json:"reason" validate:"required,min=10"`
}

// Submit handles POST /api/adoptions.
//
// The status read before the transaction is an optimization only: it
// turns away requests for pets that are already pending without paying
// for a transaction.  The guarantee that two concurrent submissions
// cannot both succeed comes from the re-check inside Submit's
// transaction, not from this read.
func (h *AdoptionHandler) Submit(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "authentication required"})
	}

	var req adoptionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, err)
	}

	if err := auth.RequireOwner(id, req.UserID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"error":   "Unauthorized to submit adoption request for another user",
		})
	}

	ctx := c.Request().Context()

	status, err := h.Pets.GetStatus(ctx, req.PetID)
	if err != nil && !errors.Is(err, repository.ErrPetNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error submitting adoption request"})
	}
	if errors.Is(err, repository.ErrPetNotFound) || status != model.PetStatusAvailable {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Pet is no longer available for adoption",
		})
	}

	ar := model.AdoptionRequest{
		PetID:   req.PetID,
		UserID:  req.UserID,
		Message: req.Reason,
	}
	if err := h.Adoptions.Submit(ctx, &ar); err != nil {
		if errors.Is(err, repository.ErrPetUnavailable) || errors.Is(err, repository.ErrPetNotFound) {
			// Lost the race: someone else's transaction committed first.
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   "Pet is no longer available for adoption",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error submitting adoption request"})
	}

	if h.Notify != nil {
		h.Notify(ctx, queue.AdoptionSubmittedEvent{
			EventID:     uuid.NewString(),
			RequestID:   ar.ID,
			PetID:       ar.PetID,
			UserID:      ar.UserID,
			Message:     ar.Message,
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Adoption request submitted successfully",
	})
}

// ListByUser handles GET /api/adoptions/user/:userId.  Users see only
// their own requests; admins may inspect anyone's.
func (h *AdoptionHandler) ListByUser(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "authentication required"})
	}
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || targetID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid user id"})
	}
	if err := auth.RequireOwner(id, targetID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"error":   "Unauthorized to view another user's adoption requests",
		})
	}

	items, err := h.Adoptions.ListByUser(c.Request().Context(), targetID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Error fetching adoption requests"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": items})
}
