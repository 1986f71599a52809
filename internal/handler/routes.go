package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/velobooks/velobooks-backend/internal/middleware"
)

// Handlers bundles every HTTP handler for route registration
type Handlers struct {
	Auth      *AuthHandler
	Customer  *CustomerHandler
	Invoice   *InvoiceHandler
	Payment   *PaymentHandler
	Cashbook  *CashbookHandler
	Inventory *InventoryHandler
	Dashboard *DashboardHandler
	APIToken  *APITokenHandler
	Image     *ImageHandler
	Marketing *MarketingHandler
	Prefs     *PreferenceHandler
	Staff     *StaffHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Business routes accept both Auth0
// JWTs and workspace API tokens; account and token management stay JWT only.
// Rate limiting applies to API token callers.
func RegisterRoutes(e *echo.Echo, dualAuth *middleware.DualAuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	api := e.Group("/api/v1")

	authed := dualAuth.Authenticate()
	rateLimited := middleware.RateLimitMiddleware(rateLimiter)

	// Auth routes (session only)
	auth := api.Group("/auth")
	auth.Use(dualAuth.JWTOnly())
	auth.POST("/callback", h.Auth.Callback)
	auth.GET("/me", h.Auth.Me)
	auth.PATCH("/me", h.Auth.UpdateProfile)

	// API token management (session only)
	tokens := api.Group("/tokens")
	tokens.Use(dualAuth.JWTOnly())
	tokens.POST("", h.APIToken.CreateToken)
	tokens.GET("", h.APIToken.ListTokens)
	tokens.DELETE("/:id", h.APIToken.RevokeToken)

	// Customer routes
	customers := api.Group("/customers")
	customers.Use(authed, rateLimited)
	customers.POST("", h.Customer.CreateCustomer)
	customers.GET("", h.Customer.GetCustomers)
	customers.GET("/:id", h.Customer.GetCustomer)
	customers.PUT("/:id", h.Customer.UpdateCustomer)
	customers.DELETE("/:id", h.Customer.DeleteCustomer)
	customers.GET("/:id/statement", h.Customer.GetStatement)

	// Invoice routes
	invoices := api.Group("/invoices")
	invoices.Use(authed, rateLimited)
	invoices.POST("", h.Invoice.CreateInvoice)
	invoices.GET("", h.Invoice.GetInvoices)
	invoices.GET("/:id", h.Invoice.GetInvoice)
	invoices.DELETE("/:id", h.Invoice.DeleteInvoice)

	// Payment routes
	payments := api.Group("/payments")
	payments.Use(authed, rateLimited)
	payments.POST("", h.Payment.CreatePayment)
	payments.GET("", h.Payment.GetPayments)
	payments.GET("/:id", h.Payment.GetPayment)
	payments.DELETE("/:id", h.Payment.DeletePayment)

	// Cashbook routes
	cashbook := api.Group("/cashbook")
	cashbook.Use(authed, rateLimited)
	cashbook.GET("", h.Cashbook.GetCashbook)

	// Inventory routes
	items := api.Group("/items")
	items.Use(authed, rateLimited)
	items.POST("", h.Inventory.CreateItem)
	items.GET("", h.Inventory.GetItems)
	items.GET("/:id", h.Inventory.GetItem)
	items.PUT("/:id", h.Inventory.UpdateItem)
	items.POST("/:id/adjust", h.Inventory.AdjustStock)
	items.DELETE("/:id", h.Inventory.DeleteItem)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Use(authed, rateLimited)
	dashboard.GET("", h.Dashboard.GetSummary)

	// Image routes
	images := api.Group("/images")
	images.Use(authed, rateLimited)
	images.POST("/:entityType/:entityId", h.Image.UploadImage)
	images.GET("/presign", h.Image.GetPresignedURL)
	images.DELETE("", h.Image.DeleteImage)

	// Marketing routes
	marketing := api.Group("/marketing")
	marketing.Use(authed, rateLimited)
	marketing.POST("/promotions", h.Marketing.DraftPromotion)

	// Preference routes
	prefs := api.Group("/preferences")
	prefs.Use(authed, rateLimited)
	prefs.GET("/:key", h.Prefs.GetPreference)
	prefs.PUT("/:key", h.Prefs.SetPreference)
	prefs.DELETE("/:key", h.Prefs.DeletePreference)

	// Staff location routes
	staff := api.Group("/staff")
	staff.Use(authed, rateLimited)
	staff.POST("/pings", h.Staff.RecordPing)
	staff.GET("/locations", h.Staff.GetLatestLocations)
	staff.GET("/:name/history", h.Staff.GetStaffHistory)

	// WebSocket endpoint authenticates via its token query parameter
	e.GET("/ws", h.WebSocket.HandleWS)
}
