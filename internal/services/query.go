package services

import (
	"ticketpass/internal/identity"
	"ticketpass/internal/models"
)

// QueryService serves read-only projections over the two stores. It never
// mutates state; single-item lookups are the only calls that can fail, and
// only with a not-found error.
type QueryService struct {
	eventRepo  EventRepository
	ticketRepo TicketRepository
}

// NewQueryService creates a new query service
func NewQueryService(eventRepo EventRepository, ticketRepo TicketRepository) *QueryService {
	return &QueryService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
	}
}

// GetEvent retrieves a single event by ID
func (s *QueryService) GetEvent(id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(id)
}

// ListEvents retrieves all events in creation order
func (s *QueryService) ListEvents() ([]*models.Event, error) {
	return s.eventRepo.List()
}

// GetTicket retrieves a single ticket by ID
func (s *QueryService) GetTicket(id int64) (*models.Ticket, error) {
	return s.ticketRepo.GetByID(id)
}

// MyTickets retrieves the tickets owned by the calling identity, in
// creation order. An unknown identity simply owns no tickets.
func (s *QueryService) MyTickets(caller identity.Principal) ([]*models.Ticket, error) {
	if caller.IsAnonymous() {
		return nil, models.ErrUnauthorized
	}
	return s.ticketRepo.ListByOwner(caller)
}
