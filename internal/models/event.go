package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ticketpass/internal/identity"
)

// Event represents an event with a finite ticket supply. All fields except
// TicketsSold are immutable once the event is created; TicketsSold is only
// changed through the atomic slot reservation in the event repository.
type Event struct {
	ID           int64              `json:"id" db:"id"`
	Organizer    identity.Principal `json:"organizer" db:"organizer"`
	Name         string             `json:"name" db:"name"`
	Description  string             `json:"description" db:"description"`
	Venue        string             `json:"venue" db:"venue"`
	Date         string             `json:"date" db:"date"`
	TicketPrice  int64              `json:"ticket_price" db:"ticket_price"`
	TotalTickets int64              `json:"total_tickets" db:"total_tickets"`
	TicketsSold  int64              `json:"tickets_sold" db:"tickets_sold"`
	ImageURL     string             `json:"image_url" db:"image_url"`
	ARModelURL   *string            `json:"ar_model_url,omitempty" db:"ar_model_url"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}

// EventCreateRequest represents the data needed to register a new event
type EventCreateRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Venue        string  `json:"venue"`
	Date         string  `json:"date"`
	TicketPrice  int64   `json:"ticket_price"`
	TotalTickets int64   `json:"total_tickets"`
	ImageURL     string  `json:"image_url"`
	ARModelURL   *string `json:"ar_model_url,omitempty"`
}

// IsSoldOut returns true if all tickets have been sold
func (e *Event) IsSoldOut() bool {
	return e.TicketsSold >= e.TotalTickets
}

// Available returns the number of tickets still mintable
func (e *Event) Available() int64 {
	available := e.TotalTickets - e.TicketsSold
	if available < 0 {
		return 0
	}
	return available
}

// PriceInCurrency returns the ticket price in the main currency as a float
func (e *Event) PriceInCurrency() float64 {
	return float64(e.TicketPrice) / 100.0
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if err := validateEventName(req.Name); err != nil {
		return err
	}

	if err := validateEventVenue(req.Venue); err != nil {
		return err
	}

	if err := validateEventDate(req.Date); err != nil {
		return err
	}

	if err := validateEventDescription(req.Description); err != nil {
		return err
	}

	if err := validateTicketPrice(req.TicketPrice); err != nil {
		return err
	}

	if err := validateTotalTickets(req.TotalTickets); err != nil {
		return err
	}

	if err := validateOptionalURL("image URL", req.ImageURL); err != nil {
		return err
	}

	if req.ARModelURL != nil {
		if err := validateOptionalURL("AR model URL", *req.ARModelURL); err != nil {
			return err
		}
	}

	return nil
}

// validateEventName validates an event name
func validateEventName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("event name is required")
	}

	if len(name) > 200 {
		return errors.New("event name must be less than 200 characters")
	}

	return nil
}

// validateEventVenue validates an event venue
func validateEventVenue(venue string) error {
	if strings.TrimSpace(venue) == "" {
		return errors.New("event venue is required")
	}

	if len(venue) > 200 {
		return errors.New("event venue must be less than 200 characters")
	}

	return nil
}

// validateEventDate validates an event date
func validateEventDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return errors.New("event date is required")
	}

	if len(date) > 100 {
		return errors.New("event date must be less than 100 characters")
	}

	return nil
}

// validateEventDescription validates an event description
func validateEventDescription(description string) error {
	// Description is optional, but if provided, it should not be too long
	if len(description) > 2000 {
		return errors.New("event description must be less than 2000 characters")
	}

	return nil
}

// validateTicketPrice validates a ticket price
func validateTicketPrice(price int64) error {
	if price < 0 {
		return errors.New("ticket price cannot be negative")
	}

	return nil
}

// validateTotalTickets validates the ticket supply
func validateTotalTickets(total int64) error {
	if total <= 0 {
		return errors.New("total tickets must be greater than 0")
	}

	// Maximum supply of 1,000,000 tickets per event
	if total > 1000000 {
		return errors.New("total tickets cannot exceed 1,000,000")
	}

	return nil
}

// validateOptionalURL validates that a URL field, when present, parses
func validateOptionalURL(field, value string) error {
	if value == "" {
		return nil
	}

	if len(value) > 500 {
		return fmt.Errorf("%s must be less than 500 characters", field)
	}

	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be a valid absolute URL", field)
	}

	return nil
}
