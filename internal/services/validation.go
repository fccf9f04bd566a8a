package services

import (
	"ticketpass/internal/identity"
	"ticketpass/internal/models"
	"ticketpass/internal/utils"
)

// ValidationService orchestrates gate-side ticket redemption. It is the only
// writer of a ticket's used flag, and it flips that flag through the ticket
// repository's atomic MarkUsed so a ticket is redeemed at most once.
type ValidationService struct {
	eventRepo  EventRepository
	ticketRepo TicketRepository
}

// NewValidationService creates a new validation service
func NewValidationService(eventRepo EventRepository, ticketRepo TicketRepository) *ValidationService {
	return &ValidationService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
	}
}

// ValidateTicket redeems a ticket at the point of entry. Only the organizer
// of the ticket's event may validate it, and the presented credential must
// match the stored one exactly. The checks run in a fixed order so error
// reporting stays consistent: authorization before credential validity,
// credential validity before the used-state check. A wrong code on an
// already-used ticket therefore reports the code mismatch, and never masks
// an authorization failure.
func (s *ValidationService) ValidateTicket(caller identity.Principal, ticketID int64, qrCode string) (bool, error) {
	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		return false, err
	}

	// Integrity guard: a ticket always references the event it was minted
	// against, but a missing record must not panic the validator.
	event, err := s.eventRepo.GetByID(ticket.EventID)
	if err != nil {
		return false, err
	}

	if event.Organizer != caller {
		return false, models.ErrUnauthorized
	}

	if !utils.MatchesCredential(ticket.QRCode, qrCode) {
		return false, models.ErrInvalidQRCode
	}

	// The used check and the transition are a single atomic step; a losing
	// racer gets ErrTicketAlreadyUsed even if it read an unused snapshot.
	if err := s.ticketRepo.MarkUsed(ticket.ID); err != nil {
		return false, err
	}

	return true, nil
}
