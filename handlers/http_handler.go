package handlers

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/medrisk-api/interfaces"
	"github.com/giygas/medrisk-api/logging"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	maxPopularLimit    = 100
	maxListInputs      = 20
)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	analyzer  interfaces.Analyzer
	dataStore interfaces.DataStore
	health    interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(analyzer interfaces.Analyzer, dataStore interfaces.DataStore, health interfaces.HealthChecker) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		analyzer:  analyzer,
		dataStore: dataStore,
		health:    health,
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string         `json:"status"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// SearchMedicines handles GET /v1/medicines?search=&limit=
func (h *HTTPHandlerImpl) SearchMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	if query == "" {
		h.PopularMedicines(w, r)
		return
	}

	limit, ok := parseLimit(w, r, defaultSearchLimit, maxSearchLimit)
	if !ok {
		return
	}

	result, err := h.analyzer.SearchMedicines(query, limit)
	if err != nil {
		logging.Warn("Unusual user input", "search", query, "error", err)
		respondWithPipelineError(w, err)
		return
	}

	// Always return 200 with results array (empty if no matches)
	RespondWithJSON(w, http.StatusOK, result)
}

// PopularMedicines handles GET /v1/medicines/popular?limit=
func (h *HTTPHandlerImpl) PopularMedicines(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 0, maxPopularLimit)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"medicines": h.analyzer.PopularMedicines(limit),
	})
}

// MedicineByID handles GET /v1/medicines/{id}
func (h *HTTPHandlerImpl) MedicineByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		logging.Warn("Unusual user input", "id", idStr)
		RespondWithError(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	med, err := h.analyzer.MedicineByID(id)
	if err != nil {
		respondWithPipelineError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, med)
}

// ValidateMedicine handles POST /v1/medicines/validate
func (h *HTTPHandlerImpl) ValidateMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.analyzer.ValidateMedicine(req.Medicine)
	if err != nil {
		respondWithPipelineError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, result)
}

// CheckInteractions handles POST /v1/interactions/check
func (h *HTTPHandlerImpl) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req interactionCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Medicines) > maxListInputs {
		RespondWithError(w, http.StatusBadRequest, "too many medicines: maximum "+strconv.Itoa(maxListInputs))
		return
	}

	report, err := h.analyzer.CheckInteractions(toInteractionRequest(req))
	if err != nil {
		respondWithPipelineError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, report)
}

// PredictSideEffects handles POST /v1/side-effects/predict
func (h *HTTPHandlerImpl) PredictSideEffects(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.analyzer.PredictSideEffects(toSideEffectRequest(req))
	if err != nil {
		respondWithPipelineError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, report)
}

// ValidateSymptoms handles POST /v1/symptoms/validate
func (h *HTTPHandlerImpl) ValidateSymptoms(w http.ResponseWriter, r *http.Request) {
	var req symptomsRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Symptoms) > maxListInputs {
		RespondWithError(w, http.StatusBadRequest, "too many symptoms: maximum "+strconv.Itoa(maxListInputs))
		return
	}

	result, err := h.analyzer.ValidateSymptoms(req.Symptoms)
	if err != nil {
		respondWithPipelineError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, result)
}

// AnalyzeSymptoms handles POST /v1/symptoms/analyze
func (h *HTTPHandlerImpl) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req symptomsRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Symptoms) > maxListInputs {
		RespondWithError(w, http.StatusBadRequest, "too many symptoms: maximum "+strconv.Itoa(maxListInputs))
		return
	}

	report, err := h.analyzer.AnalyzeSymptoms(toSymptomRequest(req))
	if err != nil {
		respondWithPipelineError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, report)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, details, httpStatus := h.health.HealthCheck()
	uptime := time.Since(h.dataStore.GetServerStartTime())

	response := HealthResponse{
		Status:        status,
		Uptime:        formatUptimeHuman(uptime),
		UptimeSeconds: uptime.Seconds(),
		Data:          details,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	RespondWithJSON(w, httpStatus, response)
}

// parseLimit reads ?limit=. An absent value gives def; values above
// ceiling are clamped. It answers 400 itself and returns false on bad input.
func parseLimit(w http.ResponseWriter, r *http.Request, def, ceiling int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		logging.Warn("Unusual user input", "limit", raw)
		RespondWithError(w, http.StatusBadRequest, "Invalid limit")
		return 0, false
	}
	return min(limit, ceiling), true
}
