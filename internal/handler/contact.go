package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type contactReq struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=2"`
	Message string `json:"message" validate:"required,min=10"`
}

// Contact handles POST /api/contact.  The form is validated and
// acknowledged; no mail is sent (outbound email was never wired up in
// production and the frontend only needs the acknowledgement).
func Contact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Message sent successfully",
	})
}
