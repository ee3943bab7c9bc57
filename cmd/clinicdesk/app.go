package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/domain/analytics"
	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/medicine"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/seed"
	"github.com/clinicdesk/clinicdesk/internal/domain/task"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

// app holds the repositories and services built over one store.
type app struct {
	store  store.Store
	driver string
	now    func() time.Time

	patientRepo  patient.Repository
	doctorRepo   doctor.Repository
	apptRepo     appointment.AppointmentRepository
	consultRepo  appointment.ConsultationRepository
	taskRepo     task.TaskRepository
	patients     *patient.Service
	doctors      *doctor.Service
	appointments *appointment.Service
	tasks        *task.Service
	analytics    *analytics.Service
	medicines    *medicine.Catalog
}

// newApp wires every domain over s. All services share one clock whose
// location decides calendar days.
func newApp(s store.Store, driver string, cfg *config.Config, now func() time.Time) (*app, error) {
	rate, err := cfg.UnitRate()
	if err != nil {
		return nil, err
	}
	catalog, err := medicine.Builtin()
	if err != nil {
		return nil, fmt.Errorf("load medicine catalog: %w", err)
	}

	a := &app{
		store:       s,
		driver:      driver,
		now:         now,
		patientRepo: patient.NewRepoStore(s),
		doctorRepo:  doctor.NewRepoStore(s),
		apptRepo:    appointment.NewAppointmentRepoStore(s),
		consultRepo: appointment.NewConsultationRepoStore(s),
		taskRepo:    task.NewTaskRepoStore(s),
		medicines:   catalog,
	}

	a.patients = patient.NewService(a.patientRepo)
	a.patients.SetClock(now)
	a.doctors = doctor.NewService(a.doctorRepo)
	a.doctors.SetClock(now)
	a.appointments = appointment.NewService(a.apptRepo, a.consultRepo, a.patientRepo, a.doctorRepo)
	a.appointments.SetClock(now)
	a.tasks = task.NewService(a.taskRepo)
	a.tasks.SetClock(now)
	a.analytics = analytics.NewService(
		analytics.NewRepoSource(a.patientRepo, a.apptRepo, a.consultRepo),
		analytics.WithUnitRate(rate),
	)
	a.analytics.SetClock(now)
	return a, nil
}

func (a *app) seed(ctx context.Context) (*seed.Result, error) {
	return seed.Run(ctx, seed.Repos{Doctors: a.doctorRepo, Tasks: a.taskRepo}, a.now())
}

// clock returns time.Now in loc.
func clock(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}

// openStore opens the backend named by STORE_DRIVER. Postgres gets the
// embedded migrations applied before use.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		n, err := db.NewMigrator(pool, db.EmbeddedMigrations()).Up(ctx, defaultSchema)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info().Int("applied", n).Msg("connected to postgres")
		return store.NewPostgresStore(pool), nil
	case config.DriverMySQL:
		s, err := store.OpenMySQL(ctx, cfg.DatabaseURL, int(cfg.DBMaxConns))
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("connected to mysql")
		return s, nil
	default:
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}
}

// newServer builds the echo instance with the middleware chain and every
// route mounted.
func (a *app) newServer(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/store", store.HealthHandler(a.store, a.driver))

	api := e.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	patient.NewHandler(a.patients).RegisterRoutes(api)
	doctor.NewHandler(a.doctors).RegisterRoutes(api)
	appointment.NewHandler(a.appointments).RegisterRoutes(api)
	task.NewHandler(a.tasks).RegisterRoutes(api)
	medicine.NewHandler(a.medicines).RegisterRoutes(api)
	analytics.NewHandler(a.analytics).RegisterRoutes(api)

	return e
}
