package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"ticketpass/internal/identity"
	"ticketpass/internal/models"
	"ticketpass/internal/utils"
)

// TicketRepository owns all ticket records and the owner index. Minting and
// the one-way used transition are the only mutations it exposes; owner and
// credential are immutable once written.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Mint allocates a new ticket bound to the given event and owner. The
// credential is generated here, never supplied by the caller, and is unique
// among all tickets by construction.
func (r *TicketRepository) Mint(eventID int64, owner identity.Principal, purchaseDate time.Time) (*models.Ticket, error) {
	qrCode, err := utils.GenerateTicketCredential(eventID, owner, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket credential: %w", err)
	}

	query := `
		INSERT INTO tickets (event_id, owner, purchase_date, qr_code, is_used)
		VALUES (?, ?, ?, ?, 0)`

	result, err := r.db.Exec(query, eventID, owner.String(), purchaseDate, qrCode)
	if err != nil {
		return nil, fmt.Errorf("failed to mint ticket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket id: %w", err)
	}

	return &models.Ticket{
		ID:           id,
		EventID:      eventID,
		Owner:        owner,
		PurchaseDate: purchaseDate,
		QRCode:       qrCode,
		IsUsed:       false,
	}, nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(id int64) (*models.Ticket, error) {
	query := `
		SELECT id, event_id, owner, purchase_date, qr_code, is_used
		FROM tickets
		WHERE id = ?`

	ticket, err := scanTicket(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

// ListByOwner retrieves all tickets held by an identity, in creation order
func (r *TicketRepository) ListByOwner(owner identity.Principal) ([]*models.Ticket, error) {
	query := `
		SELECT id, event_id, owner, purchase_date, qr_code, is_used
		FROM tickets
		WHERE owner = ?
		ORDER BY id ASC`

	rows, err := r.db.Query(query, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets by owner: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// MarkUsed atomically transitions a ticket from unused to used. The guard
// and the write are one statement, so a ticket can be redeemed at most once
// no matter how many validators race. The transition is irreversible.
// Returns ErrTicketAlreadyUsed if the ticket was redeemed before and
// ErrTicketNotFound if it does not exist.
func (r *TicketRepository) MarkUsed(id int64) error {
	result, err := r.db.Exec(
		`UPDATE tickets SET is_used = 1 WHERE id = ? AND is_used = 0`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark ticket used: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRow(`SELECT 1 FROM tickets WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return models.ErrTicketNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check ticket existence: %w", err)
	}

	return models.ErrTicketAlreadyUsed
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	var owner string

	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&owner,
		&ticket.PurchaseDate,
		&ticket.QRCode,
		&ticket.IsUsed,
	)
	if err != nil {
		return nil, err
	}

	ticket.Owner = identity.Principal(owner)
	return ticket, nil
}
