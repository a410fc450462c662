// Package referenceloader reads a reference snapshot directory (medicines,
// interactions, side effects and symptoms) into entity tables.
package referenceloader

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/giygas/medrisk-api/interfaces"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// File names inside a reference directory.
const (
	MedicinesFile    = "medicines.csv"
	InteractionsFile = "interactions.csv"
	SideEffectsFile  = "side_effects.csv"
	SymptomsFile     = "symptoms.json"
)

// Compile-time check to ensure Loader implements the Loader interface
var _ interfaces.Loader = (*Loader)(nil)

// Loader reads the four reference files of a directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads all files concurrently. Any missing or malformed file fails
// the whole load; individual bad rows are skipped and logged.
func (l *Loader) Load() (*entities.Tables, error) {
	start := time.Now()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errs   []error
		tables entities.Tables
	)

	run := func(name string, parse func(io.Reader) error) {
		defer wg.Done()
		r, err := openDecoded(l.dir, name)
		if err == nil {
			err = parse(r)
		}
		if err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
		}
	}

	wg.Add(4)
	go run(MedicinesFile, func(r io.Reader) (err error) {
		tables.Medicines, err = parseMedicines(r)
		return err
	})
	go run(InteractionsFile, func(r io.Reader) (err error) {
		tables.Interactions, err = parseInteractions(r)
		return err
	})
	go run(SideEffectsFile, func(r io.Reader) (err error) {
		tables.SideEffects, err = parseSideEffects(r)
		return err
	})
	go run(SymptomsFile, func(r io.Reader) (err error) {
		tables.Symptoms, err = parseSymptoms(r)
		return err
	})
	wg.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load reference data from %s: %w", l.dir, errors.Join(errs...))
	}

	tables.Medicines = appendGenericEntries(tables.Medicines)

	logging.Info("Reference tables loaded",
		"dir", l.dir,
		"medicines", len(tables.Medicines),
		"interactions", len(tables.Interactions),
		"side_effects", len(tables.SideEffects),
		"symptoms", len(tables.Symptoms),
		"duration", time.Since(start))

	return &tables, nil
}
