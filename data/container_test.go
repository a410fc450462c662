package data

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

func testTables() *entities.Tables {
	return &entities.Tables{
		Medicines: []entities.Medicine{
			{ID: 1, Name: "Crocin", GenericName: "Paracetamol", SearchText: "crocin paracetamol"},
			{ID: 2, Name: "Brufen", GenericName: "Ibuprofen", SearchText: "brufen ibuprofen"},
		},
		Interactions: []entities.Interaction{
			{DrugA: "Paracetamol", DrugB: "Ibuprofen", HasInteraction: true, Severity: entities.SeverityMinor},
		},
		SideEffects: []entities.SideEffectProfile{
			{GenericName: "Paracetamol", SideEffects: []string{"Nausea"}},
			{GenericName: "paracetamol", SideEffects: []string{"Duplicate"}},
		},
		Symptoms: []entities.Symptom{
			{Key: "fever", MedicalName: "Fever"},
		},
	}
}

func TestNewDataContainer(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()

	if dc == nil {
		t.Fatal("NewDataContainer returned nil")
	}

	if dc.IsUpdating() {
		t.Error("NewDataContainer should not be updating")
	}

	if !dc.GetLastUpdated().IsZero() {
		t.Error("NewDataContainer should have zero lastUpdated time")
	}

	s := dc.GetSnapshot()
	if s == nil {
		t.Fatal("GetSnapshot returned nil")
	}
	if !s.IsEmpty() || s.Symptoms.Len() != 0 || s.Interactions.Len() != 0 {
		t.Error("NewDataContainer should serve an empty snapshot")
	}
	if s.Version != "" {
		t.Errorf("empty snapshot should have no version, got %q", s.Version)
	}
}

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot(testTables())

	if s.Medicines.Len() != 2 {
		t.Errorf("Expected 2 medicines, got %d", s.Medicines.Len())
	}
	if s.Symptoms.Len() != 1 {
		t.Errorf("Expected 1 symptom, got %d", s.Symptoms.Len())
	}
	if s.Interactions.Len() != 1 {
		t.Errorf("Expected 1 interaction pair, got %d", s.Interactions.Len())
	}
	if s.Version == "" || s.LoadedAt.IsZero() {
		t.Error("snapshot should carry a version and a load time")
	}

	p, ok := s.SideEffectsFor(" PARACETAMOL ")
	if !ok {
		t.Fatal("side effects for paracetamol not found")
	}
	if p.SideEffects[0] != "Nausea" {
		t.Errorf("first profile should win, got %v", p.SideEffects)
	}
	if _, ok := s.SideEffectsFor("aspirin"); ok {
		t.Error("unexpected side effects for aspirin")
	}

	if other := NewSnapshot(testTables()); other.Version == s.Version {
		t.Error("two snapshots share a version")
	}
}

func TestNewSnapshotNil(t *testing.T) {
	s := NewSnapshot(nil)
	if !s.IsEmpty() {
		t.Error("nil tables should give an empty snapshot")
	}
}

func TestUpdateSnapshot(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()
	s := NewSnapshot(testTables())
	dc.UpdateSnapshot(s)

	if dc.GetSnapshot() != s {
		t.Error("GetSnapshot should return the published snapshot")
	}
	if dc.GetLastUpdated() != s.LoadedAt {
		t.Error("LastUpdated should follow the snapshot")
	}
	if time.Since(dc.GetLastUpdated()) > time.Second {
		t.Errorf("Last updated time too old: %v", dc.GetLastUpdated())
	}

	dc.UpdateSnapshot(nil)
	if dc.GetSnapshot() != s {
		t.Error("nil update should be ignored")
	}
}

func TestBeginUpdateEndUpdate(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Error("BeginUpdate should return true first time")
	}

	if !dc.IsUpdating() {
		t.Error("Should be updating after BeginUpdate")
	}

	if dc.BeginUpdate() {
		t.Error("BeginUpdate should return false when already updating")
	}

	dc.EndUpdate()

	if dc.IsUpdating() {
		t.Error("Should not be updating after EndUpdate")
	}

	if !dc.BeginUpdate() {
		t.Error("BeginUpdate should return true after EndUpdate")
	}

	dc.EndUpdate()
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()

	if !dc.GetServerStartTime().IsZero() {
		t.Error("start time should initially be zero")
	}

	now := time.Now()
	dc.SetServerStartTime(now)
	if !dc.GetServerStartTime().Equal(now) {
		t.Errorf("start time = %v, want %v", dc.GetServerStartTime(), now)
	}
}

func TestConcurrentReadsDuringUpdate(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()
	dc.UpdateSnapshot(NewSnapshot(testTables()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s := dc.GetSnapshot()
			// A reader always sees a complete generation.
			if s.Medicines.Len() != 2 {
				t.Errorf("reader saw %d medicines", s.Medicines.Len())
			}
			_ = s.Medicines.Resolve("paracetamol", 0.65, 0)
			_ = s.Symptoms.Resolve("fevr", 0.65)
		}()
		go func() {
			defer wg.Done()
			if !dc.BeginUpdate() {
				return
			}
			defer dc.EndUpdate()
			dc.UpdateSnapshot(NewSnapshot(testTables()))
		}()
	}

	wg.Wait()

	if dc.IsUpdating() {
		t.Error("updating flag left set")
	}
}
