// internal/store/store.go

// Package store provides the persistence adapter the engine mirrors its
// state into. The store holds a serialized copy with no independent
// authority: on load it seeds the engine, on every mutation it is
// overwritten wholesale.
package store

import (
	"context"
	"errors"
)

// Fixed keys for the persisted blobs.
const (
	KeyApplications       = "lp-applications"
	KeyOnboardingComplete = "lp-onboarding-complete"
	KeyUserProfile        = "lp-user-profile"
)

// ErrNotFound is returned by Load when no blob exists under the key.
var ErrNotFound = errors.New("store: key not found")

// Store is the persistence adapter contract.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
