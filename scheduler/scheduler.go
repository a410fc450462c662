// Package scheduler loads the reference snapshot at startup and reloads it
// on a gocron schedule. A reload that fails validation leaves the
// current snapshot in place.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/interfaces"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/metrics"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleAfter is how old a snapshot may get before the monitor warns.
const staleAfter = 25 * time.Hour

// Scheduler handles snapshot reloads and staleness monitoring
type Scheduler struct {
	dataStore interfaces.DataStore
	loader    interfaces.Loader
	validator interfaces.DataValidator
	reloadAt  string
	scheduler *gocron.Scheduler

	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler creates a scheduler. reloadAt is a gocron "HH:MM;HH:MM"
// list; an empty value loads once and never reloads.
func NewScheduler(dataStore interfaces.DataStore, loader interfaces.Loader, validator interfaces.DataValidator, reloadAt string) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		validator: validator,
		reloadAt:  reloadAt,
		scheduler: gocron.NewScheduler(time.Local),
		done:      make(chan struct{}),
	}
}

// Start performs the initial load and schedules reloads
func (s *Scheduler) Start() error {
	if err := s.Reload(); err != nil {
		logging.Error("Failed to perform initial snapshot load", "error", err)
		return fmt.Errorf("initial snapshot load failed: %w", err)
	}

	if s.reloadAt == "" {
		logging.Info("Snapshot reloads disabled")
		return nil
	}

	_, err := s.scheduler.Every(1).Days().At(s.reloadAt).Do(func() {
		if err := s.Reload(); err != nil {
			logging.Error("Failed to reload snapshot", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	logging.Info("Snapshot reloads scheduled", "at", s.reloadAt)
	return nil
}

// Stop stops the scheduler and the monitor
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.scheduler.Stop()
		close(s.done)
	})
}

// Reload loads, validates and publishes a new snapshot. Concurrent calls
// are skipped while one is running.
func (s *Scheduler) Reload() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting snapshot reload")
	start := time.Now()

	tables, err := s.loader.Load()
	if err != nil {
		metrics.SnapshotLoadsTotal.WithLabelValues("load_error").Inc()
		return fmt.Errorf("failed to load reference tables: %w", err)
	}

	if err := s.validator.ValidateDataIntegrity(tables); err != nil {
		metrics.SnapshotLoadsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("reference tables rejected: %w", err)
	}

	report := s.validator.ReportDataQuality(tables)
	logQuality(report)

	snap := data.NewSnapshot(tables)
	snap.Quality = report
	s.dataStore.UpdateSnapshot(snap)

	elapsed := time.Since(start)
	metrics.SnapshotLoadsTotal.WithLabelValues("success").Inc()
	metrics.SnapshotLoadDuration.Observe(elapsed.Seconds())
	observeEntries(tables)

	logging.Info("Snapshot reload completed",
		"duration", elapsed.String(),
		"version", snap.Version,
		"medicines", len(tables.Medicines),
		"symptoms", len(tables.Symptoms),
		"interactions", len(tables.Interactions),
		"side_effects", len(tables.SideEffects))

	return nil
}

func logQuality(report *entities.DataQualityReport) {
	if report.DuplicateMedicineIDs > 0 {
		logging.Warn("Duplicate medicine ids detected",
			"total", report.DuplicateMedicineIDs,
			"id_list", report.DuplicateMedicineIDList,
		)
	}
	if report.DuplicateSymptomTerms > 0 {
		logging.Warn("Symptom terms claimed by more than one symptom",
			"count", report.DuplicateSymptomTerms,
		)
	}
	if report.DuplicateInteractions > 0 || report.SelfInteractions > 0 {
		logging.Warn("Redundant interaction rows",
			"duplicates", report.DuplicateInteractions,
			"self", report.SelfInteractions,
		)
	}
	if report.UnknownSeverities > 0 {
		logging.Warn("Interactions with unknown severity",
			"count", report.UnknownSeverities,
			"severities", report.UnknownSeverityList,
		)
	}
	if report.OrphanSideEffects > 0 {
		logging.Info("Side-effect profiles without a catalog generic", "count", report.OrphanSideEffects)
	}
	if report.MedicinesWithoutGeneric > 0 {
		logging.Debug("Medicines without a distinct generic", "count", report.MedicinesWithoutGeneric)
	}
}

func observeEntries(tables *entities.Tables) {
	metrics.SnapshotEntries.WithLabelValues("medicines").Set(float64(len(tables.Medicines)))
	metrics.SnapshotEntries.WithLabelValues("symptoms").Set(float64(len(tables.Symptoms)))
	metrics.SnapshotEntries.WithLabelValues("interactions").Set(float64(len(tables.Interactions)))
	metrics.SnapshotEntries.WithLabelValues("side_effects").Set(float64(len(tables.SideEffects)))
}

// startHealthMonitoring warns when reloads stop happening
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > staleAfter {
					logging.Warn("Snapshot hasn't been reloaded in over 25 hours")
				}
			}
		}
	}()
}
