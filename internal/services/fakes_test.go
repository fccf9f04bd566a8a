package services

import (
	"sync"
	"time"

	"ticketpass/internal/identity"
	"ticketpass/internal/models"
	"ticketpass/internal/utils"
)

// In-memory store fakes mirroring the repository contracts, including the
// atomicity of TryReserveSlot and MarkUsed.

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
	order  []int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]*models.Event)}
}

func (r *fakeEventRepo) Create(organizer identity.Principal, req *models.EventCreateRequest) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	event := &models.Event{
		ID:           r.nextID,
		Organizer:    organizer,
		Name:         req.Name,
		Description:  req.Description,
		Venue:        req.Venue,
		Date:         req.Date,
		TicketPrice:  req.TicketPrice,
		TotalTickets: req.TotalTickets,
		TicketsSold:  0,
		ImageURL:     req.ImageURL,
		ARModelURL:   req.ARModelURL,
		CreatedAt:    time.Now().UTC(),
	}
	r.events[event.ID] = event
	r.order = append(r.order, event.ID)
	return event, nil
}

func (r *fakeEventRepo) GetByID(id int64) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) List() ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*models.Event, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.events[id]
		events = append(events, &copied)
	}
	return events, nil
}

func (r *fakeEventRepo) TryReserveSlot(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return models.ErrEventNotFound
	}
	if event.TicketsSold >= event.TotalTickets {
		return models.ErrNoTicketsAvailable
	}
	event.TicketsSold++
	return nil
}

func (r *fakeEventRepo) ReleaseSlot(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return nil
	}
	if event.TicketsSold > 0 {
		event.TicketsSold--
	}
	return nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]*models.Ticket
	order   []int64

	// mintErr, when set, makes Mint fail to exercise the compensation path.
	mintErr error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[int64]*models.Ticket)}
}

func (r *fakeTicketRepo) Mint(eventID int64, owner identity.Principal, purchaseDate time.Time) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mintErr != nil {
		return nil, r.mintErr
	}

	qrCode, err := utils.GenerateTicketCredential(eventID, owner, purchaseDate)
	if err != nil {
		return nil, err
	}

	r.nextID++
	ticket := &models.Ticket{
		ID:           r.nextID,
		EventID:      eventID,
		Owner:        owner,
		PurchaseDate: purchaseDate,
		QRCode:       qrCode,
		IsUsed:       false,
	}
	r.tickets[ticket.ID] = ticket
	r.order = append(r.order, ticket.ID)
	return ticket, nil
}

func (r *fakeTicketRepo) GetByID(id int64) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListByOwner(owner identity.Principal) ([]*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tickets []*models.Ticket
	for _, id := range r.order {
		if r.tickets[id].Owner == owner {
			copied := *r.tickets[id]
			tickets = append(tickets, &copied)
		}
	}
	return tickets, nil
}

func (r *fakeTicketRepo) MarkUsed(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return models.ErrTicketNotFound
	}
	if ticket.IsUsed {
		return models.ErrTicketAlreadyUsed
	}
	ticket.IsUsed = true
	return nil
}
