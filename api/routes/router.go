// api/routes/router.go
package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "nexusems/docs"
	"nexusems/internal/bookings"
	"nexusems/internal/discounts"
	"nexusems/internal/events"
	"nexusems/internal/notifications"
	"nexusems/internal/shared/config"
	"nexusems/internal/shared/database"
	"nexusems/internal/shared/middleware"
	"nexusems/internal/tickets"
	"nexusems/internal/waitlist"
	"nexusems/pkg/cache"
	"nexusems/pkg/logger"
	"nexusems/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	mailer waitlist.Mailer
	log    *logger.Logger

	// release transport, one of dispatcher or producer+consumer
	dispatcher *notifications.AsyncDispatcher
	producer   *notifications.KafkaReleasePublisher
	consumer   *notifications.ReleaseConsumer
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, mailer waitlist.Mailer, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		db:     db,
		mailer: mailer,
		log:    log.WithComponent("router"),
	}
}

// SetupRoutes builds every service and registers its routes on engine
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	r.setupHealthRoutes(engine)

	if r.config.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	organizer := []gin.HandlerFunc{middleware.JWTAuth(r.config.JWT.Secret), middleware.RequireOrganizer()}
	pg := r.db.PostgreSQL

	var (
		cacheSvc cache.Service
		locker   = cache.NoopLocker()
	)
	if r.db.Redis != nil {
		cacheSvc = cache.NewService(r.db.Redis, "nexusems:", r.log)
		locker = cache.NewRedisLocker(r.db.Redis, "nexusems:lock")
	}

	eventService := events.NewService(events.NewRepository(pg), r.log)

	ticketRepo := tickets.NewRepository(pg)
	ticketService := tickets.NewService(ticketRepo, eventService, r.log)

	discountCfg := discounts.DefaultServiceConfig()
	discountCfg.CacheTTL = r.config.Redis.CacheTTL
	discountService := discounts.NewService(discounts.NewRepository(pg), cacheSvc, discountCfg, r.log)

	waitlistCfg := waitlist.DefaultServiceConfig()
	waitlistCfg.SweepLockTTL = r.config.Waitlist.SweepLockTTL
	waitlistService := waitlist.NewService(waitlist.NewRepository(pg), eventService, r.mailer, locker, waitlistCfg, r.log)

	releases, err := r.setupReleaseTransport(waitlistService)
	if err != nil {
		return err
	}

	bookingService := bookings.NewService(bookings.NewRepository(pg), eventService, ticketRepo, discountService, releases, r.log)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		events.SetupEventRoutes(api, events.NewController(eventService), organizer...)
		tickets.SetupTicketRoutes(api, tickets.NewController(ticketService), organizer...)
		discounts.SetupDiscountRoutes(api, discounts.NewController(discountService), organizer...)
		bookings.SetupBookingRoutes(api, bookings.NewController(bookingService), organizer...)
		waitlist.SetupWaitlistRoutes(api, waitlist.NewController(waitlistService), organizer...)
	}

	return nil
}

// setupReleaseTransport picks Kafka when enabled, else the in-process dispatcher.
// Either way released seats end in a waitlist sweep for the event.
func (r *Router) setupReleaseTransport(waitlistService waitlist.Service) (bookings.ReleasePublisher, error) {
	handler := notifications.ReleaseHandlerFunc(func(ctx context.Context, msg notifications.SeatsReleased) error {
		result, err := waitlistService.NotifyEvent(ctx, msg.EventID)
		if err != nil {
			return fmt.Errorf("waitlist sweep for %s: %w", msg.EventID, err)
		}
		if result.Failed > 0 {
			r.log.WarnContext(ctx, "Waitlist sweep had failures",
				"event_id", msg.EventID, "booking_id", msg.BookingID, "failed", result.Failed)
		}
		return nil
	})

	kc := r.config.Kafka
	if !kc.Enabled {
		r.dispatcher = notifications.NewAsyncDispatcher(handler, kc.QueueSize, r.log)
		r.log.Info("Seat releases dispatched in-process", "queue_size", kc.QueueSize)
		return r.dispatcher, nil
	}

	producer, err := notifications.NewKafkaReleasePublisher(notifications.KafkaProducerConfig{
		Brokers:  kc.Brokers,
		Topic:    kc.ReleasesTopic,
		RetryMax: kc.RetryMax,
		Timeout:  kc.Timeout,
	}, r.log)
	if err != nil {
		return nil, err
	}

	consumer, err := notifications.NewReleaseConsumer(notifications.ConsumerConfig{
		Brokers: kc.Brokers,
		GroupID: kc.GroupID,
		Topic:   kc.ReleasesTopic,
	}, handler, r.log)
	if err != nil {
		producer.Close()
		return nil, err
	}

	r.producer, r.consumer = producer, consumer
	r.log.Info("Seat releases published to Kafka", "brokers", kc.Brokers, "topic", kc.ReleasesTopic)
	return producer, nil
}

// Start runs the background release worker until ctx is done
func (r *Router) Start(ctx context.Context) {
	if r.dispatcher != nil {
		r.dispatcher.Start(ctx)
	}
	if r.consumer != nil {
		r.consumer.Start(ctx)
	}
}

// Close stops the release transport
func (r *Router) Close() error {
	var errs []error
	if r.dispatcher != nil {
		r.dispatcher.Stop()
	}
	if r.consumer != nil {
		errs = append(errs, r.consumer.Stop())
	}
	if r.producer != nil {
		errs = append(errs, r.producer.Close())
	}
	return errors.Join(errs...)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "nexusems-booking",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "nexusems-booking",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	if r.config.MetricsEnabled {
		engine.GET("/metrics", metrics.Handler())
	}
}
