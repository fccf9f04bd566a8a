package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketpass/internal/identity"
	"ticketpass/internal/models"
	"ticketpass/internal/services"
)

// TicketHandler exposes ticket queries and gate-side redemption
type TicketHandler struct {
	validationService services.ValidationServiceInterface
	queryService      services.QueryServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(validationService services.ValidationServiceInterface, queryService services.QueryServiceInterface) *TicketHandler {
	return &TicketHandler{
		validationService: validationService,
		queryService:      queryService,
	}
}

// MyTickets returns the tickets owned by the calling identity
//
//	@Summary	List the caller's tickets
//	@Tags		tickets
//	@Produce	json
//	@Success	200	{array}	models.Ticket
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/tickets [get]
func (h *TicketHandler) MyTickets(c *gin.Context) {
	caller := identity.FromContext(c.Request.Context())

	tickets, err := h.queryService.MyTickets(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	c.JSON(http.StatusOK, tickets)
}

// GetTicket returns a single ticket
//
//	@Summary	Get a ticket
//	@Tags		tickets
//	@Produce	json
//	@Param		id	path		int	true	"Ticket ID"
//	@Success	200	{object}	models.Ticket
//	@Failure	404	{object}	ErrorResponse
//	@Router		/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidInput, "invalid ticket ID")
		return
	}

	ticket, err := h.queryService.GetTicket(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ValidateTicketResponse is the body returned by a successful redemption.
type ValidateTicketResponse struct {
	Valid bool `json:"valid"`
}

// ValidateTicket redeems a ticket exactly once at the point of entry
//
//	@Summary	Validate and redeem a ticket
//	@Tags		tickets
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Ticket ID"
//	@Param		request	body		models.ValidateTicketRequest	true	"Presented credential"
//	@Success	200		{object}	ValidateTicketResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/tickets/{id}/validate [post]
func (h *TicketHandler) ValidateTicket(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidInput, "invalid ticket ID")
		return
	}

	var req models.ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}

	caller := identity.FromContext(c.Request.Context())

	valid, err := h.validationService.ValidateTicket(caller, id, req.QRCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValidateTicketResponse{Valid: valid})
}
