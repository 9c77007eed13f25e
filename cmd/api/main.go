package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dentwise/dentwise-api/internal/application/booking"
	"github.com/dentwise/dentwise-api/internal/application/cache"
	"github.com/dentwise/dentwise-api/internal/application/ratelimit"
	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/config"
	"github.com/dentwise/dentwise-api/internal/events"
	"github.com/dentwise/dentwise-api/internal/infrastructure/database"
	"github.com/dentwise/dentwise-api/internal/infrastructure/repository"
	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/dentwise/dentwise-api/internal/presentation/http/handler"
	"github.com/dentwise/dentwise-api/internal/presentation/http/routes"
	"github.com/dentwise/dentwise-api/pkg/email"
	"github.com/dentwise/dentwise-api/pkg/identity"
	"github.com/dentwise/dentwise-api/pkg/videohost"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Shared state store (locks, rate limit windows, response cache)
	stateStore := newStateStore(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	videoRepo := repository.NewVideoRepository(db)

	// Event dispatch: in-process by default, mirrored to Kafka when enabled
	dispatcher := events.NewDispatcher(256, 2)
	defer dispatcher.Close()

	var publisher events.Publisher = dispatcher
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer kafkaPublisher.Close()
		publisher = teePublisher{dispatcher, kafkaPublisher}
	}

	// Initialize email + notification services
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		FromName:       cfg.Email.FromName,
		FromEmail:      cfg.Email.FromEmail,
		SendsPerSecond: cfg.Email.SendsPerSecond,
	})
	service.NewNotificationService(emailService).Register(dispatcher)

	// Video host client
	videoHost := videohost.NewClient(videohost.Config{
		TokenID:     cfg.Video.TokenID,
		TokenSecret: cfg.Video.TokenSecret,
		BaseURL:     cfg.Video.BaseURL,
	})

	// Initialize services
	responseCache := cache.New(stateStore)
	bookingLock := booking.NewLock(stateStore)
	conflictDetector := booking.NewConflictDetector(appointmentRepo)

	userService := service.NewUserService(userRepo)
	doctorService := service.NewDoctorService(doctorRepo, responseCache)
	appointmentService := service.NewAppointmentService(
		appointmentRepo, doctorRepo, bookingLock, conflictDetector, responseCache, publisher,
	)
	videoService := service.NewVideoService(videoRepo, videoHost, publisher)
	dashboardService := service.NewDashboardService(appointmentRepo, doctorRepo, userRepo, videoRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Doctor:      handler.NewDoctorHandler(doctorService),
		Video:       handler.NewVideoHandler(videoService, cfg.Video.CORSOrigin),
		User:        handler.NewUserHandler(userService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:         cfg,
		Verifier:    identity.NewVerifier(cfg.Identity.SigningSecret),
		UserService: userService,
		Limiter:     ratelimit.NewLimiter(stateStore),
		StateStore:  stateStore,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// newStateStore selects the shared state backend. Redis is the production
// driver; the in-memory store serves single-instance development.
func newStateStore(cfg *config.Config) state.Store {
	if cfg.State.Driver == "memory" {
		store := state.NewMemoryStore()
		store.StartJanitor(context.Background(), time.Minute)
		return store
	}

	store, err := state.NewRedisStore(state.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	return store
}

// teePublisher fans an event out to the in-process dispatcher and the
// external stream.
type teePublisher struct {
	local  events.Publisher
	remote events.Publisher
}

func (t teePublisher) Publish(ctx context.Context, event events.Event) {
	t.local.Publish(ctx, event)
	t.remote.Publish(ctx, event)
}
