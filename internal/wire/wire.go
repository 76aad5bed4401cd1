// Package wire provides dependency injection for the cardioplan application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"log"
	"sync"

	"go.uber.org/zap"

	"github.com/example/cardioplan/internal/adapters/pyproc"
	"github.com/example/cardioplan/internal/adapters/sqlite"
	"github.com/example/cardioplan/internal/app"
	"github.com/example/cardioplan/internal/config"
	"github.com/example/cardioplan/internal/db"
	"github.com/example/cardioplan/internal/logging"
	"github.com/example/cardioplan/internal/ports/primary"
)

var (
	cfg              *config.Config
	logger           *zap.Logger
	database         *sql.DB
	treatmentService primary.TreatmentService
	patientService   primary.PatientService
	once             sync.Once
)

// TreatmentService returns the singleton TreatmentService instance.
func TreatmentService() primary.TreatmentService {
	once.Do(initServices)
	return treatmentService
}

// PatientService returns the singleton PatientService instance.
func PatientService() primary.PatientService {
	once.Do(initServices)
	return patientService
}

// Config returns the loaded application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the application logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// Database returns the clinical store handle. Exposed for maintenance
// commands (seeding) that operate below the service layer.
func Database() *sql.DB {
	once.Do(initServices)
	return database
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error

	cfg, err = config.Load("")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err = logging.New(cfg.Logging.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	database, err = db.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open clinical store: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	patientRepo := sqlite.NewPatientRepository(database)
	treatmentRepo := sqlite.NewTreatmentRecordRepository(database)

	// Optimizer subprocess gateway
	gateway := pyproc.New(cfg.Optimizer.Python, cfg.Optimizer.ScriptsDir,
		cfg.Optimizer.Timeout, logger)

	// Services (primary port implementations)
	treatmentService = app.NewTreatmentService(patientRepo, gateway, treatmentRepo, logger)
	patientService = app.NewPatientService(patientRepo)
}
