// internal/lifecycle/snapshot.go
package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/errors"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/store"
)

// Snapshot is the full serializable engine state. Round trip holds:
// Hydrate(Snapshot()) reproduces the collection element-wise, modulo
// timestamp precision.
type Snapshot struct {
	Applications         []*models.Application `json:"applications"`
	CurrentApplicationID string                `json:"currentApplicationId,omitempty"`
	Notifications        []models.Notification `json:"notifications"`
	Profile              *models.UserProfile   `json:"profile,omitempty"`
	OnboardingComplete   bool                  `json:"onboardingComplete"`
}

// snapshotSchema guards hydration against corrupted or foreign blobs in
// the store. Field-level detail beyond identity and state is left to the
// JSON decoder.
const snapshotSchema = `{
	"type": "object",
	"required": ["applications"],
	"properties": {
		"applications": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "state", "loanType", "employmentType"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"state": {
						"type": "string",
						"enum": [
							"draft", "submitted", "verification-in-progress",
							"action-required", "verification-resumed",
							"review-in-progress", "approved",
							"conditional-approval", "rejected",
							"disbursement-initiated", "completed",
							"closed-incomplete"
						]
					},
					"loanType": {"type": "string", "enum": ["personal", "business", "auto"]},
					"employmentType": {"type": "string", "enum": ["salaried", "self-employed", "gig-msme"]}
				}
			}
		},
		"currentApplicationId": {"type": "string"},
		"notifications": {"type": "array"}
	}
}`

// Snapshot returns a deep copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Applications:         make([]*models.Application, len(e.apps)),
		CurrentApplicationID: e.currentID,
		Notifications:        make([]models.Notification, len(e.notifications)),
		OnboardingComplete:   e.onboarded,
	}
	for i, app := range e.apps {
		snap.Applications[i] = app.Clone()
	}
	copy(snap.Notifications, e.notifications)
	if e.profile != nil {
		p := *e.profile
		snap.Profile = &p
	}
	return snap
}

// Hydrate replaces engine state with a snapshot, typically one loaded
// from the store at startup.
func (e *Engine) Hydrate(snap Snapshot) error {
	seen := make(map[string]bool, len(snap.Applications))
	for _, app := range snap.Applications {
		if app == nil || app.ID == "" {
			return errors.NewSnapshotInvalidError("application with empty id")
		}
		if seen[app.ID] {
			return errors.NewSnapshotInvalidError(fmt.Sprintf("duplicate application id %s", app.ID))
		}
		seen[app.ID] = true
		if !app.State.IsValid() {
			return errors.NewSnapshotInvalidError(fmt.Sprintf("unknown state %q on %s", app.State, app.ID))
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.apps = make([]*models.Application, len(snap.Applications))
	e.index = make(map[string]*models.Application, len(snap.Applications))
	for i, app := range snap.Applications {
		cp := app.Clone()
		e.apps[i] = cp
		e.index[cp.ID] = cp
	}
	e.notifications = make([]models.Notification, len(snap.Notifications))
	copy(e.notifications, snap.Notifications)
	e.currentID = snap.CurrentApplicationID
	if _, ok := e.index[e.currentID]; !ok {
		e.currentID = ""
	}
	e.profile = nil
	if snap.Profile != nil {
		p := *snap.Profile
		e.profile = &p
	}
	e.onboarded = snap.OnboardingComplete
	return nil
}

// collectionBlob is the shape persisted under store.KeyApplications.
type collectionBlob struct {
	Applications         []*models.Application `json:"applications"`
	CurrentApplicationID string                `json:"currentApplicationId,omitempty"`
	Notifications        []models.Notification `json:"notifications"`
}

// saveSnapshot mirrors a snapshot into the store under the fixed keys.
func saveSnapshot(ctx context.Context, s store.Store, snap Snapshot) error {
	blob, err := json.Marshal(collectionBlob{
		Applications:         snap.Applications,
		CurrentApplicationID: snap.CurrentApplicationID,
		Notifications:        snap.Notifications,
	})
	if err != nil {
		return fmt.Errorf("marshal applications: %w", err)
	}
	if err := s.Save(ctx, store.KeyApplications, blob); err != nil {
		return err
	}

	if err := s.Save(ctx, store.KeyOnboardingComplete, []byte(fmt.Sprintf("%t", snap.OnboardingComplete))); err != nil {
		return err
	}

	if snap.Profile == nil {
		return s.Delete(ctx, store.KeyUserProfile)
	}
	profileBlob, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.Save(ctx, store.KeyUserProfile, profileBlob)
}

// LoadSnapshot reads the persisted keys back into a Snapshot, validating
// the application blob against the snapshot schema first. Missing keys
// hydrate to an empty engine.
func LoadSnapshot(ctx context.Context, s store.Store) (Snapshot, error) {
	var snap Snapshot

	blob, err := s.Load(ctx, store.KeyApplications)
	switch {
	case err == store.ErrNotFound:
		// first run, nothing persisted yet
	case err != nil:
		return snap, errors.NewStoreUnavailableError(err)
	default:
		result, err := gojsonschema.Validate(
			gojsonschema.NewStringLoader(snapshotSchema),
			gojsonschema.NewBytesLoader(blob),
		)
		if err != nil {
			return snap, errors.NewSnapshotInvalidError(err.Error())
		}
		if !result.Valid() {
			details := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				details = append(details, desc.String())
			}
			return snap, errors.NewSnapshotInvalidError(strings.Join(details, "; "))
		}

		var collection collectionBlob
		if err := json.Unmarshal(blob, &collection); err != nil {
			return snap, errors.NewSnapshotInvalidError(err.Error())
		}
		snap.Applications = collection.Applications
		snap.CurrentApplicationID = collection.CurrentApplicationID
		snap.Notifications = collection.Notifications
	}

	if flag, err := s.Load(ctx, store.KeyOnboardingComplete); err == nil {
		snap.OnboardingComplete = string(flag) == "true"
	} else if err != store.ErrNotFound {
		return snap, errors.NewStoreUnavailableError(err)
	}

	if profileBlob, err := s.Load(ctx, store.KeyUserProfile); err == nil {
		var profile models.UserProfile
		if err := json.Unmarshal(profileBlob, &profile); err != nil {
			return snap, errors.NewSnapshotInvalidError(err.Error())
		}
		snap.Profile = &profile
	} else if err != store.ErrNotFound {
		return snap, errors.NewStoreUnavailableError(err)
	}

	return snap, nil
}
