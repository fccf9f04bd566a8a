package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketpass/internal/models"
)

// Closed vocabulary of machine-readable error codes, mirroring the
// engine's error set plus the transport-level failures.
const (
	codeInvalidInput       = "invalid_input"
	codeEventNotFound      = "event_not_found"
	codeTicketNotFound     = "ticket_not_found"
	codeNoTicketsAvailable = "no_tickets_available"
	codeForbidden          = "forbidden"
	codeInvalidQRCode      = "invalid_qr_code"
	codeTicketAlreadyUsed  = "ticket_already_used"
	codeInternalError      = "internal_error"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: code})
}

// respondError maps an engine error onto its HTTP representation. The six
// engine errors each have a fixed status and code; anything else is an
// infrastructure failure and stays opaque to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, models.ErrEventNotFound):
		writeError(c, http.StatusNotFound, codeEventNotFound, models.ErrEventNotFound.Error())
	case errors.Is(err, models.ErrTicketNotFound):
		writeError(c, http.StatusNotFound, codeTicketNotFound, models.ErrTicketNotFound.Error())
	case errors.Is(err, models.ErrNoTicketsAvailable):
		writeError(c, http.StatusConflict, codeNoTicketsAvailable, models.ErrNoTicketsAvailable.Error())
	case errors.Is(err, models.ErrUnauthorized):
		writeError(c, http.StatusForbidden, codeForbidden, models.ErrUnauthorized.Error())
	case errors.Is(err, models.ErrInvalidQRCode):
		writeError(c, http.StatusUnprocessableEntity, codeInvalidQRCode, models.ErrInvalidQRCode.Error())
	case errors.Is(err, models.ErrTicketAlreadyUsed):
		writeError(c, http.StatusConflict, codeTicketAlreadyUsed, models.ErrTicketAlreadyUsed.Error())
	default:
		log.Printf("internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		writeError(c, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
