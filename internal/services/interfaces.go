package services

import (
	"time"

	"ticketpass/internal/identity"
	"ticketpass/internal/models"
)

// EventRepository interface for event data operations
type EventRepository interface {
	Create(organizer identity.Principal, req *models.EventCreateRequest) (*models.Event, error)
	GetByID(id int64) (*models.Event, error)
	List() ([]*models.Event, error)
	TryReserveSlot(id int64) error
	ReleaseSlot(id int64) error
}

// TicketRepository interface for ticket data operations
type TicketRepository interface {
	Mint(eventID int64, owner identity.Principal, purchaseDate time.Time) (*models.Ticket, error)
	GetByID(id int64) (*models.Ticket, error)
	ListByOwner(owner identity.Principal) ([]*models.Ticket, error)
	MarkUsed(id int64) error
}

// IssuanceServiceInterface defines the interface for event registration and
// ticket minting
type IssuanceServiceInterface interface {
	CreateEvent(caller identity.Principal, req *models.EventCreateRequest) (*models.Event, error)
	MintTicket(caller identity.Principal, eventID int64) (*models.Ticket, error)
}

// ValidationServiceInterface defines the interface for gate-side redemption
type ValidationServiceInterface interface {
	ValidateTicket(caller identity.Principal, ticketID int64, qrCode string) (bool, error)
}

// QueryServiceInterface defines the interface for read-only projections
type QueryServiceInterface interface {
	GetEvent(id int64) (*models.Event, error)
	ListEvents() ([]*models.Event, error)
	GetTicket(id int64) (*models.Ticket, error)
	MyTickets(caller identity.Principal) ([]*models.Ticket, error)
}
