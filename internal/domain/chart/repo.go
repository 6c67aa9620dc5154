package chart

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested patient or encounter does not
// exist.
var ErrNotFound = errors.New("record not found")

// Repository loads chart and encounter detail rows from the backing store.
type Repository interface {
	// GetChart returns one patient's demographics plus all encounters,
	// newest first.
	GetChart(ctx context.Context, patientNum int64) (*ChartRow, error)

	// GetEncounterDetail returns the demographics plus the five clinical
	// sections for one encounter of one patient.
	GetEncounterDetail(ctx context.Context, patientNum, encounterNum int64) (*EncounterDetailRow, error)
}
