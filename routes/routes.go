package routes

import (
	"net/http"
	"time"

	"randevio/handlers"
	"randevio/middleware"
	"randevio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle bundles the wired handlers for route registration.
type HandlerBundle struct {
	Webhook *handlers.WebhookHandler
	Public  *handlers.PublicHandler
	Admin   *handlers.AdminHandler
}

// RegisterWebhookRoutes registers the messaging provider callback endpoints.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/webhook")
	{
		api.GET("", hb.Webhook.Verify)
		api.POST("", hb.Webhook.Receive)
	}
}

// RegisterPublicRoutes registers the slug-scoped web booking surface.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/public/:slug")
	{
		api.GET("/employees", hb.Public.ListEmployees)
		api.GET("/availability", hb.Public.GetAvailability)
		api.GET("/appointments", hb.Public.ListAppointments)
		api.POST("/appointments", hb.Public.CreateAppointment)
		api.DELETE("/appointments/:id", hb.Public.CancelAppointment)
		api.POST("/queue", hb.Public.JoinQueue)
	}
}

// RegisterAdminRoutes registers the authenticated business portal endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthBusinessMiddleware())
		api.GET("/appointments/pending", hb.Admin.ListPendingAppointments)
		api.POST("/appointments/:id/approve", hb.Admin.ApproveAppointment)
		api.POST("/appointments/:id/reject", hb.Admin.RejectAppointment)
		api.GET("/queue", hb.Admin.ListQueue)
		api.PATCH("/queue/:id", hb.Admin.UpdateQueueEntry)
	}
}

// RegisterHealthRoute exposes the liveness snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWebhookRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
