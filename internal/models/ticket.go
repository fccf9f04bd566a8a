package models

import (
	"errors"
	"time"

	"ticketpass/internal/identity"
)

// Ticket represents an individual ticket bound to the identity that minted
// it. Owner never changes after creation; there is no transfer path. IsUsed
// transitions false to true exactly once, through the ticket repository's
// MarkUsed, and is never reset.
type Ticket struct {
	ID           int64              `json:"id" db:"id"`
	EventID      int64              `json:"event_id" db:"event_id"`
	Owner        identity.Principal `json:"owner" db:"owner"`
	PurchaseDate time.Time          `json:"purchase_date" db:"purchase_date"`
	QRCode       string             `json:"qr_code" db:"qr_code"`
	IsUsed       bool               `json:"is_used" db:"is_used"`
}

// ValidateTicketRequest represents a gate-side redemption request
type ValidateTicketRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

// Validate validates the ticket data
func (t *Ticket) Validate() error {
	if err := t.validateQRCode(); err != nil {
		return err
	}

	if err := t.validateOwner(); err != nil {
		return err
	}

	if t.EventID <= 0 {
		return errors.New("ticket must reference an event")
	}

	return nil
}

// validateQRCode validates the ticket credential
func (t *Ticket) validateQRCode() error {
	if t.QRCode == "" {
		return errors.New("QR code is required")
	}

	if len(t.QRCode) > 255 {
		return errors.New("QR code must be less than 255 characters")
	}

	return nil
}

// validateOwner validates the ticket owner
func (t *Ticket) validateOwner() error {
	if t.Owner.IsAnonymous() {
		return errors.New("ticket owner is required")
	}

	return nil
}

// CanBeUsed returns true if the ticket can still be redeemed
func (t *Ticket) CanBeUsed() bool {
	return !t.IsUsed
}
