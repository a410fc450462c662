package scheduler

import (
	"errors"
	"testing"

	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/validation"
)

// mockLoader returns fixed tables, or an error when shouldFail is set
type mockLoader struct {
	tables     *entities.Tables
	shouldFail bool
	loadCount  int
}

func (m *mockLoader) Load() (*entities.Tables, error) {
	m.loadCount++
	if m.shouldFail {
		return nil, errors.New("load failed")
	}
	return m.tables, nil
}

func validTables() *entities.Tables {
	return &entities.Tables{
		Medicines: []entities.Medicine{
			{ID: 1, Name: "Crocin", GenericName: "Paracetamol", SearchText: "crocin paracetamol"},
			{ID: 2, Name: "Brufen", GenericName: "Ibuprofen", SearchText: "brufen ibuprofen"},
		},
		Interactions: []entities.Interaction{
			{DrugA: "Paracetamol", DrugB: "Ibuprofen", HasInteraction: true, Severity: entities.SeverityMinor},
			{DrugA: "Ibuprofen", DrugB: "Paracetamol", HasInteraction: true, Severity: entities.SeverityMinor},
		},
		Symptoms: []entities.Symptom{
			{Key: "fever", MedicalName: "Fever"},
		},
	}
}

func newTestScheduler(loader *mockLoader, reloadAt string) (*Scheduler, *data.DataContainer) {
	logging.InitLogger("")
	dc := data.NewDataContainer()
	return NewScheduler(dc, loader, validation.NewDataValidator(), reloadAt), dc
}

func TestReloadPublishesSnapshot(t *testing.T) {
	loader := &mockLoader{tables: validTables()}
	s, dc := newTestScheduler(loader, "")

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	snap := dc.GetSnapshot()
	if snap.Medicines.Len() != 2 {
		t.Errorf("Expected 2 medicines, got %d", snap.Medicines.Len())
	}
	if snap.Version == "" {
		t.Error("Expected a snapshot version")
	}
	if snap.Quality == nil || snap.Quality.DuplicateInteractions != 1 {
		t.Errorf("Expected quality report with 1 duplicate interaction, got %+v", snap.Quality)
	}
	if dc.IsUpdating() {
		t.Error("Update flag should be released after reload")
	}
}

func TestReloadLoadErrorKeepsSnapshot(t *testing.T) {
	loader := &mockLoader{tables: validTables()}
	s, dc := newTestScheduler(loader, "")

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	before := dc.GetSnapshot().Version

	loader.shouldFail = true
	if err := s.Reload(); err == nil {
		t.Fatal("Expected an error from a failing loader")
	}
	if got := dc.GetSnapshot().Version; got != before {
		t.Errorf("Snapshot changed after failed reload: %s -> %s", before, got)
	}
}

func TestReloadRejectsInvalidTables(t *testing.T) {
	tables := validTables()
	tables.Medicines = append(tables.Medicines, tables.Medicines[0])
	s, dc := newTestScheduler(&mockLoader{tables: tables}, "")

	if err := s.Reload(); err == nil {
		t.Fatal("Expected duplicate ids to be rejected")
	}
	if !dc.GetSnapshot().IsEmpty() {
		t.Error("Rejected tables must not be published")
	}
}

func TestReloadSkippedWhileUpdating(t *testing.T) {
	loader := &mockLoader{tables: validTables()}
	s, dc := newTestScheduler(loader, "")

	if !dc.BeginUpdate() {
		t.Fatal("BeginUpdate should succeed")
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Skipped reload should not fail: %v", err)
	}
	dc.EndUpdate()

	if loader.loadCount != 0 {
		t.Errorf("Expected no load while updating, got %d", loader.loadCount)
	}
}

func TestStartWithoutReloads(t *testing.T) {
	loader := &mockLoader{tables: validTables()}
	s, dc := newTestScheduler(loader, "")

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if loader.loadCount != 1 {
		t.Errorf("Expected 1 initial load, got %d", loader.loadCount)
	}
	if dc.GetSnapshot().IsEmpty() {
		t.Error("Expected initial snapshot to be published")
	}
}

func TestStartWithSchedule(t *testing.T) {
	loader := &mockLoader{tables: validTables()}
	s, _ := newTestScheduler(loader, "06:00;18:00")

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
	s.Stop()
}

func TestStartFailsOnInitialLoad(t *testing.T) {
	s, _ := newTestScheduler(&mockLoader{shouldFail: true}, "06:00")

	if err := s.Start(); err == nil {
		t.Fatal("Expected Start to fail when the initial load fails")
	}
}
