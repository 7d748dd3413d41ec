package container

import (
	"fmt"
	"log/slog"

	"github.com/karnikjan/EasyEvent/internal/config"
	"github.com/karnikjan/EasyEvent/internal/graph"
	"github.com/karnikjan/EasyEvent/internal/helpers"
	"github.com/karnikjan/EasyEvent/internal/models"
	"github.com/karnikjan/EasyEvent/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Tokens helpers.TokenManager

	UserService    *services.UserService
	EventService   *services.EventService
	BookingService *services.BookingService

	GraphQL *graph.Executor
}

// Repos groups the persistence dependencies so tests can swap the Mongo ones.
type Repos struct {
	Users    models.UserRepo
	Events   models.EventRepo
	Bookings models.BookingRepo
}

// MongoRepos backs every repository with the same Mongo database.
func MongoRepos(repo *models.MongodbRepo) Repos {
	return Repos{Users: repo, Events: repo, Bookings: repo}
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, repos Repos) (*Container, error) {
	tokens := helpers.NewJWTManager(helpers.JWTOptions{
		KeyID:           cfg.Auth.KeyID,
		Secret:          cfg.Auth.Secret,
		PreviousSecrets: cfg.Auth.PreviousSecrets,
		Issuer:          cfg.Auth.Issuer,
		TTL:             cfg.Auth.TokenTTL,
	})
	hasher := helpers.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService := services.NewUserService(repos.Users, hasher, tokens, cfg.Auth.StrongPasswords)
	eventService := services.NewEventService(repos.Events, repos.Users)
	bookingService := services.NewBookingService(repos.Bookings, repos.Events, repos.Users, logger)

	schema, err := graph.NewSchema(graph.NewResolver(userService, eventService, bookingService, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Tokens:         tokens,
		UserService:    userService,
		EventService:   eventService,
		BookingService: bookingService,
		GraphQL:        graph.NewExecutor(schema),
	}, nil
}
