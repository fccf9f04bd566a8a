package repositories

import (
	"testing"

	"ticketpass/internal/database"
	"ticketpass/internal/identity"
	"ticketpass/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewConnection(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestEvent(t *testing.T, repo *EventRepository, organizer identity.Principal, total int64) *models.Event {
	t.Helper()

	event, err := repo.Create(organizer, &models.EventCreateRequest{
		Name:         "Test Event",
		Description:  "A test event",
		Venue:        "Test Venue",
		Date:         "2026-06-01",
		TicketPrice:  1000,
		TotalTickets: total,
		ImageURL:     "https://example.com/image.jpg",
	})
	if err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}

	return event
}
