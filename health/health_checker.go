// Package health reports the health of the reference snapshot.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/medrisk-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
	reloadAt  []string
}

// NewHealthChecker creates a health checker. reloadAt lists the daily
// HH:MM reload times; none means reloads are disabled.
func NewHealthChecker(dataStore interfaces.DataStore, reloadAt ...string) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore: dataStore,
		reloadAt:  reloadAt,
	}
}

// HealthCheck returns HTTP-specific health data.
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	snap := h.dataStore.GetSnapshot()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)
	reloads := len(h.reloadAt) > 0

	switch {
	case snap.IsEmpty() || snap.Symptoms.Len() == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case reloads && dataAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case reloads && dataAge > 24*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	case isUpdating && reloads && dataAge > 6*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":      lastUpdate.Format(time.RFC3339),
		"data_age_hours":   math.Round(dataAge.Hours()*10) / 10,
		"snapshot_version": snap.Version,
		"medicines":        snap.Medicines.Len(),
		"symptoms":         snap.Symptoms.Len(),
		"interactions":     snap.Interactions.Len(),
		"is_updating":      isUpdating,
	}
	if reloads {
		data["next_update"] = h.CalculateNextUpdate().Format(time.RFC3339)
	}

	return status, data, httpStatus
}

// CalculateNextUpdate returns the next scheduled reload time, or the zero
// time when reloads are disabled.
func (h *HealthCheckerImpl) CalculateNextUpdate() time.Time {
	return nextReload(time.Now(), h.reloadAt)
}

func nextReload(now time.Time, reloadAt []string) time.Time {
	var next time.Time
	for _, at := range reloadAt {
		t, err := time.Parse("15:04", at)
		if err != nil {
			continue
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next
}
