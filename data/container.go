// Package data holds the current reference snapshot and swaps it
// atomically on reload.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/medrisk-api/logging"
)

// DataContainer publishes the current Snapshot. Readers never block;
// a reload swaps the pointer and in-flight readers keep the generation
// they started with.
type DataContainer struct {
	snapshot        atomic.Pointer[Snapshot]
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a container serving an empty snapshot.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.snapshot.Store(emptySnapshot())
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetSnapshot returns the current snapshot. It is never nil.
func (dc *DataContainer) GetSnapshot() *Snapshot {
	if s := dc.snapshot.Load(); s != nil {
		return s
	}
	logging.Warn("Snapshot is missing, serving an empty one")
	return emptySnapshot()
}

// UpdateSnapshot atomically replaces the current snapshot. A nil
// snapshot is ignored.
func (dc *DataContainer) UpdateSnapshot(s *Snapshot) {
	if s == nil {
		logging.Warn("Ignoring nil snapshot update")
		return
	}
	dc.snapshot.Store(s)
}

// GetLastUpdated returns the load time of the current snapshot.
func (dc *DataContainer) GetLastUpdated() time.Time {
	return dc.GetSnapshot().LoadedAt
}

// IsUpdating returns true if a reload is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// BeginUpdate marks the start of a reload.
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reload.
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}

func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
