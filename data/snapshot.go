package data

import (
	"time"

	"github.com/google/uuid"

	"github.com/giygas/medrisk-api/interactions"
	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/resolver"
)

// Snapshot is one immutable generation of the reference store. Every
// index is built in NewSnapshot and never written again, so a Snapshot
// can be read from any number of goroutines.
type Snapshot struct {
	Version      string
	LoadedAt     time.Time
	Medicines    *resolver.MedicineIndex
	Symptoms     *resolver.SymptomIndex
	Interactions *interactions.Table
	Quality      *entities.DataQualityReport

	sideEffects map[string]entities.SideEffectProfile
}

// NewSnapshot indexes tables. A nil tables value gives an empty snapshot.
func NewSnapshot(tables *entities.Tables) *Snapshot {
	if tables == nil {
		tables = &entities.Tables{}
	}

	s := &Snapshot{
		Version:      uuid.NewString(),
		LoadedAt:     time.Now(),
		Medicines:    resolver.NewMedicineIndex(tables.Medicines),
		Symptoms:     resolver.NewSymptomIndex(tables.Symptoms),
		Interactions: interactions.NewTable(tables.Interactions),
		Quality:      &entities.DataQualityReport{},
		sideEffects:  make(map[string]entities.SideEffectProfile, len(tables.SideEffects)),
	}
	for _, p := range tables.SideEffects {
		k := normalize.Text(p.GenericName)
		if _, dup := s.sideEffects[k]; !dup {
			s.sideEffects[k] = p
		}
	}
	return s
}

// emptySnapshot is served before the first load.
func emptySnapshot() *Snapshot {
	s := NewSnapshot(nil)
	s.Version = ""
	s.LoadedAt = time.Time{}
	return s
}

// SideEffectsFor returns the side-effect profile of a generic.
func (s *Snapshot) SideEffectsFor(generic string) (entities.SideEffectProfile, bool) {
	p, ok := s.sideEffects[normalize.Text(generic)]
	return p, ok
}

// IsEmpty reports whether no medicines were loaded.
func (s *Snapshot) IsEmpty() bool {
	return s.Medicines.Len() == 0
}
