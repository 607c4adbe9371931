package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tripscheduler/tripscheduler/internal/domain/attractions"
	"github.com/tripscheduler/tripscheduler/internal/domain/itinerary"
	"github.com/tripscheduler/tripscheduler/internal/domain/weather"
	"github.com/tripscheduler/tripscheduler/internal/suitability"
	"github.com/tripscheduler/tripscheduler/pkg/config"
	"github.com/tripscheduler/tripscheduler/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	AttractionRepo attractions.Repository
	ItineraryRepo  itinerary.Repository

	// Services
	SuitabilityModel *suitability.Model
	AttractionSvc    attractions.Service
	ItinerarySvc     itinerary.Service
	WeatherProvider  weather.Provider

	// Handlers
	ItineraryHandler *itinerary.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	deps.initRepositories()
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

func (d *Dependencies) initRepositories() {
	d.AttractionRepo = attractions.NewRepository(d.DB.Pool, d.Logger)
	d.ItineraryRepo = itinerary.NewRepository(d.DB.Pool, d.Logger)
}

func (d *Dependencies) initServices() {
	// One explicitly owned model per process; parallel deployments may
	// train their own without sharing hidden state.
	d.SuitabilityModel = suitability.NewModel(d.Logger)
	d.AttractionSvc = attractions.NewService(d.AttractionRepo, d.Logger)
	d.ItinerarySvc = itinerary.NewService(d.AttractionSvc, d.SuitabilityModel, d.ItineraryRepo, d.Logger)
	d.WeatherProvider = weather.NewOpenWeatherClient(d.Config.Weather.BaseURL, d.Config.Weather.APIKey, d.Logger)
}

func (d *Dependencies) initHandlers() {
	d.ItineraryHandler = itinerary.NewHandler(d.ItinerarySvc, d.AttractionSvc, d.Logger)
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
