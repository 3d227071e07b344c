// File: randevio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"randevio/config"
	"randevio/cron"
	"randevio/database"
	appointmentRepo "randevio/database/repository/appointment"
	businessRepo "randevio/database/repository/business"
	employeeRepo "randevio/database/repository/employee"
	identityRepo "randevio/database/repository/identity"
	queueRepo "randevio/database/repository/queue"
	sessionRepo "randevio/database/repository/session"
	"randevio/handlers"
	"randevio/middleware"
	"randevio/routes"
	"randevio/services/availability"
	"randevio/services/booking"
	"randevio/services/conversation"
	"randevio/services/identity"
	"randevio/services/messenger"
	"randevio/services/notification"
	"randevio/services/subscription"
	"randevio/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	businesses := businessRepo.NewMongoBusinessRepo()
	employees := employeeRepo.NewMongoEmployeeRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	queue := queueRepo.NewMongoQueueRepo()
	sessions := sessionRepo.NewMongoSessionRepo()
	identities := identityRepo.NewMongoIdentityRepo()

	// services.
	notifier := &notification.DefaultNotificationService{
		AsynqClient: notification.NewAsynqClient(),
	}

	availabilityEngine := availability.NewEngine(
		employees,
		appointments,
		time.Duration(config.AppConfig.SlotDurationMinutes)*time.Minute,
	)

	transactor := &booking.DefaultTransactor{
		Appointments: appointments,
		Queue:        queue,
		Businesses:   businesses,
		Availability: availabilityEngine,
		Notifier:     notifier,
		CancelNotice: time.Duration(config.AppConfig.CancelNoticeHours) * time.Hour,
	}

	resolver := &identity.DefaultResolver{Repo: identities}
	entitlements := subscription.NewEntitlementService(businesses)

	conversationEngine := &conversation.DefaultConversationEngine{
		Sessions:      sessions,
		Employees:     employees,
		Appointments:  appointments,
		Businesses:    businesses,
		Availability:  availabilityEngine,
		Transactor:    transactor,
		Resolver:      resolver,
		SessionTTL:    time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
		MaxDateOffset: config.AppConfig.MaxDateOffsetDays,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Webhook: &handlers.WebhookHandler{
			Businesses:   businesses,
			Identities:   identities,
			Sessions:     sessions,
			Entitlements: entitlements,
			Engine:       conversationEngine,
			Sender:       messenger.NewLoggingSender(),
			Dedupe:       utils.GetDedupeClient(),
		},
		Public: &handlers.PublicHandler{
			Businesses:   businesses,
			Employees:    employees,
			Appointments: appointments,
			Identities:   identities,
			Resolver:     resolver,
			Availability: availabilityEngine,
			Transactor:   transactor,
			Entitlements: entitlements,
		},
		Admin: &handlers.AdminHandler{
			Appointments: appointments,
			Queue:        queue,
			Notifier:     notifier,
		},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notifier)
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetDedupeClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
