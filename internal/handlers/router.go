package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ticketpass/internal/middleware"
	"ticketpass/internal/services"
)

// NewRouter assembles the HTTP call surface. Identity is resolved once by
// the middleware; mutating routes and the caller-scoped ticket listing
// require a verified principal, plain reads are public.
func NewRouter(
	issuanceService services.IssuanceServiceInterface,
	validationService services.ValidationServiceInterface,
	queryService services.QueryServiceInterface,
	identityMiddleware *middleware.IdentityMiddleware,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = corsOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(identityMiddleware.LoadPrincipal())

	eventHandler := NewEventHandler(issuanceService, queryService)
	ticketHandler := NewTicketHandler(validationService, queryService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.GET("/tickets/:id", ticketHandler.GetTicket)

		authed := api.Group("")
		authed.Use(identityMiddleware.RequirePrincipal())
		{
			authed.POST("/events", eventHandler.CreateEvent)
			authed.POST("/events/:id/tickets", eventHandler.MintTicket)
			authed.GET("/tickets", ticketHandler.MyTickets)
			authed.POST("/tickets/:id/validate", ticketHandler.ValidateTicket)
		}
	}

	return router
}
