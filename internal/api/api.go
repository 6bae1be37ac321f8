// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/api/handlers"
	"github.com/oceanbridge/importflow/internal/api/middleware"
	"github.com/oceanbridge/importflow/internal/service"
	"github.com/oceanbridge/importflow/internal/storage"
)

type Services struct {
	OrderService     *service.OrderService
	ShipmentService  *service.ShipmentService
	ReferenceService *service.ReferenceService
	Documents        storage.DocumentStore
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ReferenceService != nil {
			refHandler := handlers.NewReferenceHandler(services.ReferenceService)
			refGroup := apiGroup.Group("/reference")
			{
				refGroup.GET("/countries", refHandler.GetCountries)
				refGroup.GET("/cities", refHandler.GetCities)
				refGroup.GET("/currencies", refHandler.GetCurrencies)
				refGroup.GET("/customers", refHandler.GetCustomers)
				refGroup.POST("/customers", refHandler.CreateCustomer)
				refGroup.GET("/vendors", refHandler.GetVendors)
				refGroup.POST("/vendors", refHandler.CreateVendor)
				refGroup.GET("/item_types", refHandler.GetItemTypes)
				refGroup.GET("/uoms", refHandler.GetUOMs)
				refGroup.GET("/products", refHandler.GetProducts)
				refGroup.POST("/products", refHandler.CreateProduct)
				refGroup.GET("/shipping_lines", refHandler.GetShippingLines)
				refGroup.GET("/consignees", refHandler.GetConsignees)
				refGroup.GET("/final_destinations", refHandler.GetFinalDestinations)
			}
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			orderGroup := apiGroup.Group("/orders")
			{
				orderGroup.GET("", orderHandler.ListOrders)
				orderGroup.GET("/:id", orderHandler.GetOrder)
			}

			draftGroup := apiGroup.Group("/order-drafts")
			{
				draftGroup.POST("", orderHandler.StartDraft)
				draftGroup.GET("/:session", orderHandler.GetDraft)
				draftGroup.DELETE("/:session", orderHandler.CancelDraft)
				draftGroup.POST("/:session/items", orderHandler.ToggleItem)
				draftGroup.DELETE("/:session/items/:line", orderHandler.RemoveItem)
				draftGroup.PATCH("/:session/items/:line", orderHandler.UpdateItemField)
				draftGroup.PATCH("/:session/adjustments", orderHandler.UpdateAdjustment)
				draftGroup.POST("/:session/submit", orderHandler.Submit)
			}
		}

		if services.ShipmentService != nil {
			shipmentHandler := handlers.NewShipmentHandler(services.ShipmentService)
			shipmentGroup := apiGroup.Group("/shipments")
			{
				shipmentGroup.GET("/orders", shipmentHandler.ListOrders)
				shipmentGroup.GET("/pending", shipmentHandler.PendingOrders)
				shipmentGroup.POST("/selection", shipmentHandler.SelectOrder)
				shipmentGroup.DELETE("/selection", shipmentHandler.ClearSelection)
				shipmentGroup.POST("/update", shipmentHandler.ApplyUpdate)
				shipmentGroup.PATCH("/orders/:id/telex", shipmentHandler.SetTelex)
			}
		}

		if services.Documents != nil {
			docHandler := handlers.NewDocumentHandler(services.Documents)
			docGroup := apiGroup.Group("/orders/:id/documents")
			{
				docGroup.POST("", docHandler.Upload)
				docGroup.GET("", docHandler.List)
				docGroup.GET("/:name", docHandler.Download)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
