package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticketpass/internal/identity"
	"ticketpass/internal/models"
	"ticketpass/internal/services"
)

// EventHandler exposes event registration and event queries
type EventHandler struct {
	issuanceService services.IssuanceServiceInterface
	queryService    services.QueryServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(issuanceService services.IssuanceServiceInterface, queryService services.QueryServiceInterface) *EventHandler {
	return &EventHandler{
		issuanceService: issuanceService,
		queryService:    queryService,
	}
}

// CreateEvent registers a new event owned by the calling identity
//
//	@Summary	Register a new event
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Param		event	body		models.EventCreateRequest	true	"Event details"
//	@Success	201		{object}	models.Event
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}

	caller := identity.FromContext(c.Request.Context())

	event, err := h.issuanceService.CreateEvent(caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents returns all events in creation order
//
//	@Summary	List all events
//	@Tags		events
//	@Produce	json
//	@Success	200	{array}	models.Event
//	@Router		/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.queryService.ListEvents()
	if err != nil {
		respondError(c, err)
		return
	}

	if events == nil {
		events = []*models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent returns a single event
//
//	@Summary	Get an event
//	@Tags		events
//	@Produce	json
//	@Param		id	path		int	true	"Event ID"
//	@Success	200	{object}	models.Event
//	@Failure	404	{object}	ErrorResponse
//	@Router		/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidInput, "invalid event ID")
		return
	}

	event, err := h.queryService.GetEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// MintTicket issues one ticket against the event's remaining supply
//
//	@Summary	Mint a ticket for an event
//	@Tags		tickets
//	@Produce	json
//	@Param		id	path		int	true	"Event ID"
//	@Success	201	{object}	models.Ticket
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/events/{id}/tickets [post]
func (h *EventHandler) MintTicket(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidInput, "invalid event ID")
		return
	}

	caller := identity.FromContext(c.Request.Context())

	ticket, err := h.issuanceService.MintTicket(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func parseID(c *gin.Context, param string) (int64, error) {
	return strconv.ParseInt(c.Param(param), 10, 64)
}
