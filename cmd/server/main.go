package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "ticketpass/docs"
	"ticketpass/internal/clock"
	"ticketpass/internal/config"
	"ticketpass/internal/database"
	"ticketpass/internal/handlers"
	"ticketpass/internal/middleware"
	"ticketpass/internal/repositories"
	"ticketpass/internal/services"
)

const shutdownTimeout = 10 * time.Second

//	@title			ticketpass API
//	@version		1.0
//	@description	Issues and validates non-transferable, identity-bound event tickets.
//	@BasePath		/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("Database ready at", cfg.Database.Path)

	// Initialize repositories
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)

	// Initialize services
	issuanceService := services.NewIssuanceService(eventRepo, ticketRepo, clock.NewSystem())
	validationService := services.NewValidationService(eventRepo, ticketRepo)
	queryService := services.NewQueryService(eventRepo, ticketRepo)

	identityMiddleware := middleware.NewIdentityMiddleware([]byte(cfg.Identity.TokenSecret))

	router := handlers.NewRouter(issuanceService, validationService, queryService, identityMiddleware, cfg.CORS.AllowedOrigins)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Println("Server listening on", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown:", err)
	}

	log.Println("Server stopped")
}
