package main

import (
	"log"

	"ticketpass/internal/clock"
	"ticketpass/internal/config"
	"ticketpass/internal/database"
	"ticketpass/internal/identity"
	"ticketpass/internal/models"
	"ticketpass/internal/repositories"
	"ticketpass/internal/services"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)
	issuance := services.NewIssuanceService(eventRepo, ticketRepo, clock.NewSystem())

	organizer := identity.Principal("seed-organizer")

	samples := []*models.EventCreateRequest{
		{
			Name:         "Tech Conference 2026",
			Description:  "Join us for the biggest tech conference of the year featuring industry leaders and cutting-edge innovations.",
			Venue:        "Moscone Center, San Francisco, CA",
			Date:         "2026-10-12",
			TicketPrice:  14900,
			TotalTickets: 2500,
			ImageURL:     "https://images.ticketpass.dev/tech-conf-2026.jpg",
		},
		{
			Name:         "Summer Music Festival",
			Description:  "Experience amazing live music from top artists in a beautiful outdoor setting.",
			Venue:        "Zilker Park, Austin, TX",
			Date:         "2026-07-18",
			TicketPrice:  8900,
			TotalTickets: 10000,
			ImageURL:     "https://images.ticketpass.dev/summer-fest.jpg",
			ARModelURL:   strPtr("https://models.ticketpass.dev/stage-preview.glb"),
		},
		{
			Name:         "Art Gallery Opening",
			Description:  "Discover contemporary art from emerging and established artists in our new gallery space.",
			Venue:        "Chelsea Gallery District, New York, NY",
			Date:         "2026-09-03",
			TicketPrice:  0,
			TotalTickets: 150,
			ImageURL:     "https://images.ticketpass.dev/gallery-opening.jpg",
		},
	}

	for _, req := range samples {
		event, err := issuance.CreateEvent(organizer, req)
		if err != nil {
			log.Fatalf("Failed to seed event %q: %v", req.Name, err)
		}
		log.Printf("Seeded event %d: %s (%d tickets)", event.ID, event.Name, event.TotalTickets)
	}

	log.Println("Seeding complete")
}
