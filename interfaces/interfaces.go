// Package interfaces defines core abstractions for the medrisk API
// to improve testability and separation of concerns.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/pipeline"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// DataStore defines the contract for snapshot storage.
// It provides thread-safe access to the reference snapshot with atomic
// swaps for zero-downtime reloads.
type DataStore interface {
	// Data retrieval methods
	GetSnapshot() *data.Snapshot
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateSnapshot(s *data.Snapshot)
	BeginUpdate() bool
	EndUpdate()
}

// Loader reads the reference tables from their source.
type Loader interface {
	Load() (*entities.Tables, error)
}

// Analyzer is the set of operations served over HTTP and the CLI.
type Analyzer interface {
	CheckInteractions(req pipeline.InteractionRequest) (*pipeline.InteractionReport, error)
	AnalyzeSymptoms(req pipeline.SymptomRequest) (*pipeline.SymptomReport, error)
	ValidateSymptoms(inputs []string) (*pipeline.SymptomValidation, error)
	ValidateMedicine(name string) (*pipeline.MedicineValidation, error)
	SearchMedicines(query string, limit int) (*pipeline.SearchResult, error)
	PopularMedicines(limit int) []pipeline.PopularGeneric
	MedicineByID(id int) (entities.Medicine, error)
	PredictSideEffects(req pipeline.SideEffectRequest) (*pipeline.SideEffectReport, error)
}

// Scheduler defines the contract for snapshot reload scheduling.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	SearchMedicines(w http.ResponseWriter, r *http.Request)
	PopularMedicines(w http.ResponseWriter, r *http.Request)
	MedicineByID(w http.ResponseWriter, r *http.Request)
	ValidateMedicine(w http.ResponseWriter, r *http.Request)
	CheckInteractions(w http.ResponseWriter, r *http.Request)
	PredictSideEffects(w http.ResponseWriter, r *http.Request)
	ValidateSymptoms(w http.ResponseWriter, r *http.Request)
	AnalyzeSymptoms(w http.ResponseWriter, r *http.Request)
	// This will stay in all versions
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the current status, its details and the HTTP
	// status to answer with.
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled reload time
	CalculateNextUpdate() time.Time
}

// DataValidator defines the contract for reference data validation.
type DataValidator interface {
	// ValidateMedicine checks if a catalog entry is valid
	ValidateMedicine(m *entities.Medicine) error

	// ValidateDataIntegrity rejects tables that cannot be served
	ValidateDataIntegrity(tables *entities.Tables) error

	// ReportDataQuality counts tolerated anomalies
	ReportDataQuality(tables *entities.Tables) *entities.DataQualityReport
}
