package models

import "errors"

// The closed set of issuance/validation failures. Every operation surfaces
// one of these (possibly wrapped); callers branch on them with errors.Is.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrNoTicketsAvailable = errors.New("no tickets available")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrInvalidQRCode      = errors.New("invalid qr code")
	ErrTicketAlreadyUsed  = errors.New("ticket already used")

	// ErrInvalidInput covers caller-facing request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
