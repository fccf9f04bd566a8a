package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"ticketpass/internal/identity"
	"ticketpass/internal/models"
)

// EventRepository owns all event records and their capacity bookkeeping.
// No other component touches the events table.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event with zero tickets sold and returns it with its
// allocated identifier. Identifiers are strictly increasing and never reused.
func (r *EventRepository) Create(organizer identity.Principal, req *models.EventCreateRequest) (*models.Event, error) {
	createdAt := time.Now().UTC()

	query := `
		INSERT INTO events (organizer, name, description, venue, date, ticket_price, total_tickets, tickets_sold, image_url, ar_model_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(
		query,
		organizer.String(),
		req.Name,
		req.Description,
		req.Venue,
		req.Date,
		req.TicketPrice,
		req.TotalTickets,
		0, // Initial sold count
		req.ImageURL,
		nullableString(req.ARModelURL),
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get event id: %w", err)
	}

	return &models.Event{
		ID:           id,
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
		CreatedAt:    createdAt,
	}, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int64) (*models.Event, error) {
	query := `
		SELECT id, organizer, name, description, venue, date, ticket_price, total_tickets, tickets_sold, image_url, ar_model_url, created_at
		FROM events
		WHERE id = ?`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// List retrieves all events in creation order
func (r *EventRepository) List() ([]*models.Event, error) {
	query := `
		SELECT id, organizer, name, description, venue, date, ticket_price, total_tickets, tickets_sold, image_url, ar_model_url, created_at
		FROM events
		ORDER BY id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// TryReserveSlot atomically claims one ticket slot on the event. The
// capacity check and the increment happen in a single statement, so two
// concurrent reservations can never oversell. Returns ErrNoTicketsAvailable
// when the event is sold out and ErrEventNotFound when it does not exist.
func (r *EventRepository) TryReserveSlot(id int64) error {
	result, err := r.db.Exec(
		`UPDATE events SET tickets_sold = tickets_sold + 1 WHERE id = ? AND tickets_sold < total_tickets`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve ticket slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: either the event is sold out or it does not exist.
	var exists int
	err = r.db.QueryRow(`SELECT 1 FROM events WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return models.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check event existence: %w", err)
	}

	return models.ErrNoTicketsAvailable
}

// ReleaseSlot returns a previously reserved slot to the event's supply. It
// is the compensating action for a mint that failed after its reservation
// succeeded; tickets_sold never drops below zero.
func (r *EventRepository) ReleaseSlot(id int64) error {
	_, err := r.db.Exec(
		`UPDATE events SET tickets_sold = tickets_sold - 1 WHERE id = ? AND tickets_sold > 0`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to release ticket slot: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var organizer string
	var arModelURL sql.NullString

	err := row.Scan(
		&event.ID,
		&organizer,
		&event.Name,
		&event.Description,
		&event.Venue,
		&event.Date,
		&event.TicketPrice,
		&event.TotalTickets,
		&event.TicketsSold,
		&event.ImageURL,
		&arModelURL,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Organizer = identity.Principal(organizer)
	if arModelURL.Valid {
		event.ARModelURL = &arModelURL.String
	}

	return event, nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
