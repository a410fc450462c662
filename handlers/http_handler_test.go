package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/health"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/pipeline"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

func testTables() *entities.Tables {
	return &entities.Tables{
		Medicines: []entities.Medicine{
			{ID: 1, Name: "Disprin", GenericName: "Aspirin", Price: 10, SearchText: "disprin aspirin"},
			{ID: 2, Name: "Brufen", GenericName: "Ibuprofen", Price: 30, SearchText: "brufen ibuprofen"},
			{ID: 3, Name: "Ecosprin", GenericName: "Aspirin", Price: 5, SearchText: "ecosprin aspirin"},
		},
		Interactions: []entities.Interaction{
			{DrugA: "Aspirin", DrugB: "Ibuprofen", HasInteraction: true, Severity: entities.SeverityMajor, Effect: "Increased bleeding risk"},
		},
		SideEffects: []entities.SideEffectProfile{
			{GenericName: "Aspirin", SideEffects: []string{"Stomach upset", "Nausea"}},
		},
		Symptoms: []entities.Symptom{
			{Key: "fever", MedicalName: "Fever"},
			{Key: "chest_pain", MedicalName: "Chest Pain", Emergency: true},
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logging.InitLogger("")

	dc := data.NewDataContainer()
	dc.SetServerStartTime(time.Now().Add(-90 * time.Second))
	dc.UpdateSnapshot(data.NewSnapshot(testTables()))

	h := NewHTTPHandler(pipeline.New(dc, pipeline.DefaultOptions()), dc, health.NewHealthChecker(dc))

	r := chi.NewRouter()
	r.Get("/v1/medicines", h.SearchMedicines)
	r.Get("/v1/medicines/popular", h.PopularMedicines)
	r.Get("/v1/medicines/{id}", h.MedicineByID)
	r.Post("/v1/medicines/validate", h.ValidateMedicine)
	r.Post("/v1/interactions/check", h.CheckInteractions)
	r.Post("/v1/side-effects/predict", h.PredictSideEffects)
	r.Post("/v1/symptoms/validate", h.ValidateSymptoms)
	r.Post("/v1/symptoms/analyze", h.AnalyzeSymptoms)
	r.Get("/health", h.HealthCheck)
	return r
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func TestRespondWithError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondWithError(rr, http.StatusBadRequest, "bad things")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}

	var body ErrorResponse
	decodeBody(t, rr, &body)
	if body.Error != "Bad Request" || body.Message != "bad things" || body.Code != 400 {
		t.Errorf("Unexpected error body: %+v", body)
	}
}

func TestSearchMedicines(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
	}{
		{"exact", "/v1/medicines?search=aspirin", http.StatusOK, 2},
		{"limited", "/v1/medicines?search=aspirin&limit=1", http.StatusOK, 1},
		{"no match", "/v1/medicines?search=omeprazole", http.StatusOK, 0},
		{"dangerous", "/v1/medicines?search=%3Cscript%3E", http.StatusBadRequest, -1},
		{"bad limit", "/v1/medicines?search=aspirin&limit=abc", http.StatusBadRequest, -1},
		{"zero limit", "/v1/medicines?search=aspirin&limit=0", http.StatusBadRequest, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodGet, tt.target, "")
			if rr.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantCount < 0 {
				return
			}
			var body pipeline.SearchResult
			decodeBody(t, rr, &body)
			if len(body.Results) != tt.wantCount {
				t.Errorf("Expected %d results, got %d", tt.wantCount, len(body.Results))
			}
		})
	}
}

func TestPopularMedicines(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{"/v1/medicines/popular", "/v1/medicines"} {
		rr := do(t, router, http.MethodGet, target, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rr.Code)
		}
		var body struct {
			Medicines []pipeline.PopularGeneric `json:"medicines"`
		}
		decodeBody(t, rr, &body)
		if len(body.Medicines) != 2 {
			t.Fatalf("%s: expected 2 generics, got %d", target, len(body.Medicines))
		}
		if body.Medicines[0].Generic != "Aspirin" || body.Medicines[0].Brands != 2 {
			t.Errorf("%s: unexpected first generic %+v", target, body.Medicines[0])
		}
	}
}

func TestMedicineByID(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/v1/medicines/2", http.StatusOK},
		{"/v1/medicines/99", http.StatusNotFound},
		{"/v1/medicines/abc", http.StatusBadRequest},
		{"/v1/medicines/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		rr := do(t, router, http.MethodGet, tt.target, "")
		if rr.Code != tt.wantStatus {
			t.Errorf("%s: expected status %d, got %d", tt.target, tt.wantStatus, rr.Code)
		}
	}
}

func TestCheckInteractions(t *testing.T) {
	router := newTestRouter(t)

	t.Run("major interaction", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/v1/interactions/check", `{"medicines":["Disprin","Brufen"],"age":45}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var body map[string]any
		decodeBody(t, rr, &body)
		if body["has_interactions"] != true {
			t.Errorf("Expected has_interactions, got %v", body["has_interactions"])
		}
		if findings, _ := body["interactions"].([]any); len(findings) != 1 {
			t.Errorf("Expected 1 finding, got %v", body["interactions"])
		}
	})

	tests := []struct {
		name            string
		body            string
		wantStatus      int
		wantSuggestions bool
	}{
		{"one medicine", `{"medicines":["Disprin"]}`, http.StatusBadRequest, false},
		{"gibberish", `{"medicines":["xzqwrtp","Brufen"]}`, http.StatusBadRequest, true},
		{"not found", `{"medicines":["Metformin","Brufen"]}`, http.StatusNotFound, true},
		{"invalid json", `{"medicines":`, http.StatusBadRequest, false},
		{"empty body", ``, http.StatusBadRequest, false},
		{"negative age", `{"medicines":["Disprin","Brufen"],"age":-1}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodPost, "/v1/interactions/check", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			var body ErrorResponse
			decodeBody(t, rr, &body)
			if body.Code != tt.wantStatus {
				t.Errorf("Expected code %d in body, got %d", tt.wantStatus, body.Code)
			}
			if (len(body.Suggestions) > 0) != tt.wantSuggestions {
				t.Errorf("Suggestions = %v, want present: %v", body.Suggestions, tt.wantSuggestions)
			}
		})
	}
}

func TestValidateMedicine(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/v1/medicines/validate", `{"medicine":"aspirn"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body pipeline.MedicineValidation
	decodeBody(t, rr, &body)
	if body.Medicine.GenericName != "Aspirin" {
		t.Errorf("Expected Aspirin, got %s", body.Medicine.GenericName)
	}

	rr = do(t, router, http.MethodPost, "/v1/medicines/validate", `{"medicine":"Omeprazole"}`)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestPredictSideEffects(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/v1/side-effects/predict", `{"medicine":"Disprin","current_medications":["Brufen"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body pipeline.SideEffectReport
	decodeBody(t, rr, &body)
	if !body.KnownProfile || len(body.SideEffects) != 2 {
		t.Errorf("Unexpected side effects: %+v", body.SideEffects)
	}
	if len(body.Interactions) != 1 {
		t.Errorf("Expected 1 interaction with current medications, got %d", len(body.Interactions))
	}
	if body.AgeGroup != "adult" {
		t.Errorf("Expected default adult age group, got %s", body.AgeGroup)
	}
}

func TestSymptomEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/v1/symptoms/analyze", `{"symptoms":["fever","chest pain"],"age":40}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var report map[string]any
	decodeBody(t, rr, &report)
	if report["emergency_detected"] != true {
		t.Errorf("Expected emergency_detected, got %v", report["emergency_detected"])
	}
	assessment, _ := report["risk_assessment"].(map[string]any)
	if assessment["risk_score"] != float64(95) {
		t.Errorf("Expected risk_score 95, got %v", assessment["risk_score"])
	}
	if assessment["tier"] != "emergency" {
		t.Errorf("Expected emergency tier, got %v", assessment["tier"])
	}

	rr = do(t, router, http.MethodPost, "/v1/symptoms/analyze", `{"symptoms":["zzzzzz"]}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}

	rr = do(t, router, http.MethodPost, "/v1/symptoms/validate", `{"symptoms":["fever","zzzzzz"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var validation pipeline.SymptomValidation
	decodeBody(t, rr, &validation)
	if len(validation.Symptoms) != 1 || len(validation.Unresolved) != 1 {
		t.Errorf("Unexpected validation result: %+v", validation)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var body HealthResponse
	decodeBody(t, rr, &body)
	if body.Status != "healthy" {
		t.Errorf("Expected healthy, got %s", body.Status)
	}
	if body.UptimeSeconds < 90 {
		t.Errorf("Expected uptime of at least 90s, got %v", body.UptimeSeconds)
	}
	if body.Data["medicines"] != float64(3) {
		t.Errorf("Expected 3 medicines, got %v", body.Data["medicines"])
	}
}

func TestPatientFields(t *testing.T) {
	var p PatientFields
	profile := p.Profile()
	if profile.Age != entities.DefaultAge || profile.Weight != entities.DefaultWeight {
		t.Errorf("Expected defaults, got %+v", profile)
	}
	if profile.Gender != entities.GenderUnknown {
		t.Errorf("Expected unknown gender, got %s", profile.Gender)
	}

	age, weight := 0, 0.0
	p = PatientFields{Age: &age, Weight: &weight, Gender: "F"}
	profile = p.Profile()
	if profile.Age != 0 || profile.Weight != 0 || profile.Gender != entities.GenderFemale {
		t.Errorf("Explicit zero values must be kept, got %+v", profile)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Zero age and weight should be valid: %v", err)
	}

	tooOld := 151
	if err := (PatientFields{Age: &tooOld}).Validate(); err == nil {
		t.Error("Expected age 151 to be rejected")
	}
}

func TestFormatUptimeHuman(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{2*time.Minute + 5*time.Second, "2m 5s"},
		{3*time.Hour + 7*time.Second, "3h 0m 7s"},
		{50*time.Hour + 10*time.Minute, "2d 2h 10m 0s"},
	}

	for _, tt := range tests {
		if got := formatUptimeHuman(tt.d); got != tt.want {
			t.Errorf("formatUptimeHuman(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
