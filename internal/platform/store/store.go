// Package store persists whole collections as JSON documents under string
// keys. Every backend offers the same contract: a Load returns the last value
// saved under a key, and a Save replaces it entirely.
package store

import (
	"context"
	"errors"
)

// Collection keys used by the clinic domains.
const (
	KeyPatients      = "clinic_patients"
	KeyDoctors       = "clinic_doctors"
	KeyAppointments  = "clinic_appointments"
	KeyConsultations = "clinic_consultations"
	KeyTasks         = "clinic_tasks"
)

var ErrClosed = errors.New("store: closed")

// Store is a key-value store of JSON documents.
type Store interface {
	// Load decodes the value stored under key into dst. found is false when
	// the key has never been saved; dst is left untouched in that case.
	Load(ctx context.Context, key string, dst any) (found bool, err error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
