// internal/lifecycle/engine.go

// Package lifecycle implements the loan application lifecycle engine:
// the application collection, the transition table enforcement, the
// per-state derived fields and the notification log.
package lifecycle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/errors"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/metrics"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/store"
)

// mirrorTimeout bounds the fire-and-forget persistence write so a slow
// store cannot stall a transition.
const mirrorTimeout = 3 * time.Second

// Engine owns the application collection, notification log, user
// profile and current-application selection for the process. Every
// operation runs to completion under one mutex; readers observe either
// the pre- or post-transition record, never a partial one.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	log logger.Logger

	now               func() time.Time
	newNotificationID func() string

	mirror store.Store
	sink   func(models.Notification)

	apps          []*models.Application
	index         map[string]*models.Application
	notifications []models.Notification // most-recent-first
	currentID     string
	profile       *models.UserProfile
	onboarded     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNotificationIDs injects the notification id generator.
func WithNotificationIDs(gen func() string) Option {
	return func(e *Engine) { e.newNotificationID = gen }
}

// WithConfig replaces the default lifecycle configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger injects the logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithStore attaches a persistence mirror. Writes are fire-and-forget:
// failures are logged and never fail the operation.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.mirror = s }
}

// WithNotificationSink hands every appended notification to fn, used to
// fan lifecycle events out to delivery channels. fn runs on its own
// goroutine so slow delivery never blocks a transition; it must not
// call back into the engine.
func WithNotificationSink(fn func(models.Notification)) Option {
	return func(e *Engine) { e.sink = fn }
}

// New constructs an engine. Construct one per process or session; there
// are no package-level singletons.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:               DefaultConfig(),
		log:               logger.NewNoOpLogger(),
		now:               time.Now,
		newNotificationID: func() string { return "notif-" + uuid.New().String() },
		index:             make(map[string]*models.Application),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithFields(map[string]interface{}{"component": "lifecycle-engine"})
	return e
}

// CreateOptions carries the optional creation inputs.
type CreateOptions struct {
	Amount   float64
	Scenario string
}

// CreateApplication allocates a new draft application, seeds its
// document checklist, emits the "Application Started" notification and
// marks the new id as the current selection.
func (e *Engine) CreateApplication(loanType models.LoanType, employmentType models.EmploymentType, opts *CreateOptions) (string, error) {
	if !loanType.IsValid() {
		return "", errors.NewValidationFailedError(fmt.Sprintf("unknown loan type %q", loanType))
	}
	if !employmentType.IsValid() {
		return "", errors.NewValidationFailedError(fmt.Sprintf("unknown employment type %q", employmentType))
	}
	if opts != nil && opts.Amount < 0 {
		return "", errors.NewValidationFailedError(fmt.Sprintf("negative amount %v", opts.Amount))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	app := &models.Application{
		ID:                e.nextApplicationID(now),
		State:             models.StateDraft,
		LoanType:          loanType,
		EmploymentType:    employmentType,
		CreatedAt:         now,
		UpdatedAt:         now,
		Documents:         RequiredDocuments(loanType, employmentType),
		VerificationSteps: []models.VerificationStep{},
	}
	if opts != nil {
		app.Amount = opts.Amount
		app.Scenario = opts.Scenario
	}

	e.apps = append(e.apps, app)
	e.index[app.ID] = app
	e.currentID = app.ID

	e.appendNotification(models.Notification{
		Type:          models.NotificationInfo,
		Title:         "Application Started",
		Message:       fmt.Sprintf("Your %s loan application has been created.", loanType),
		ApplicationID: app.ID,
	})

	metrics.ApplicationsCreated.WithLabelValues(string(loanType), string(employmentType)).Inc()
	e.log.Info("application created", map[string]interface{}{
		"applicationId":  app.ID,
		"loanType":       loanType,
		"employmentType": employmentType,
	})

	e.persistLocked()
	return app.ID, nil
}

// nextApplicationID allocates an LP-<base36-timestamp> id, suffixed when
// two applications land on the same millisecond.
func (e *Engine) nextApplicationID(now time.Time) string {
	id := "LP-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	if _, taken := e.index[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, taken := e.index[candidate]; !taken {
			return candidate
		}
	}
}

// Transition moves an application to target per the transition table,
// applying the target state's derived fields and appending a
// state-change notification. A failed call leaves the application
// unchanged.
func (e *Engine) Transition(applicationID string, target models.ApplicationState) error {
	return e.transition(applicationID, target, nil)
}

// TransitionWithIssue is Transition with a caller-supplied outstanding
// issue, used when entering action-required with a specific problem
// instead of the configured default.
func (e *Engine) TransitionWithIssue(applicationID string, target models.ApplicationState, issue *models.ActionRequired) error {
	return e.transition(applicationID, target, issue)
}

func (e *Engine) transition(applicationID string, target models.ApplicationState, issue *models.ActionRequired) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	app, ok := e.index[applicationID]
	if !ok {
		metrics.TransitionsRejected.WithLabelValues(string(errors.ErrCodeApplicationNotFound)).Inc()
		return errors.NewApplicationNotFoundError(applicationID)
	}

	if !target.IsValid() || !app.State.CanTransitionTo(target) {
		metrics.TransitionsRejected.WithLabelValues(string(errors.ErrCodeIllegalTransition)).Inc()
		e.log.Warn("illegal transition rejected", map[string]interface{}{
			"applicationId": applicationID,
			"from":          app.State,
			"to":            target,
		})
		return errors.NewIllegalTransitionError(applicationID, string(app.State), string(target))
	}

	from := app.State
	app.State = target
	app.UpdatedAt = e.now()

	if hook, ok := enterHooks[target]; ok {
		hook(e, app, issue)
	}

	sc := e.cfg.StateCopy[target]
	e.appendNotification(models.Notification{
		Type:          models.NotificationStateChange,
		Title:         sc.Title,
		Message:       sc.Message,
		ApplicationID: app.ID,
	})

	metrics.TransitionsApplied.WithLabelValues(string(from), string(target)).Inc()
	e.log.Info("transition applied", map[string]interface{}{
		"applicationId": app.ID,
		"from":          from,
		"to":            target,
	})

	e.persistLocked()
	return nil
}

// enterHooks dispatches the per-state derived-field computation. Adding
// a state with side effects is a table change, not a conditional change.
var enterHooks = map[models.ApplicationState]func(e *Engine, app *models.Application, issue *models.ActionRequired){
	models.StateRejected:              (*Engine).enterRejected,
	models.StateDisbursementInitiated: (*Engine).enterDisbursementInitiated,
	models.StateActionRequired:        (*Engine).enterActionRequired,
}

func (e *Engine) enterRejected(app *models.Application, _ *models.ActionRequired) {
	app.Rejection = &models.Rejection{
		Reason:   e.cfg.RejectionReason,
		Guidance: e.cfg.RejectionGuidance,
	}
}

func (e *Engine) enterDisbursementInitiated(app *models.Application, _ *models.ActionRequired) {
	amount := app.Amount
	if amount == 0 {
		amount = e.cfg.DisbursementDefaultAmount
	}
	app.Disbursement = &models.Disbursement{
		Amount:       amount,
		BankAccount:  e.cfg.DisbursementBankAccount,
		ExpectedDate: app.UpdatedAt.Add(e.cfg.DisbursementLeadTime),
	}
}

func (e *Engine) enterActionRequired(app *models.Application, issue *models.ActionRequired) {
	if issue == nil {
		issue = &models.ActionRequired{
			Issue:      e.cfg.ActionIssue,
			Resolution: e.cfg.ActionResolution,
			Example:    e.cfg.ActionExample,
		}
	}
	app.VerificationSteps = []models.VerificationStep{{
		ID:             "doc-issue",
		Category:       models.CategoryDocuments,
		Title:          "Document Issue",
		Description:    "A document needs your attention",
		Status:         "action-required",
		ActionRequired: issue,
	}}
}

// Classification partitions the collection for home-screen sectioning.
// Active holds every application outside a terminal bucket; Completed
// holds the terminal bucket (completed, rejected, closed-incomplete),
// which is wider than the completed state itself.
type Classification struct {
	Active    []*models.Application
	Completed []*models.Application
}

// Classify recomputes the active/completed partition. Results are deep
// copies; never cache them across mutations.
func (e *Engine) Classify() Classification {
	e.mu.Lock()
	defer e.mu.Unlock()

	var c Classification
	for _, app := range e.apps {
		if inTerminalBucket(app.State) {
			c.Completed = append(c.Completed, app.Clone())
		} else {
			c.Active = append(c.Active, app.Clone())
		}
	}
	metrics.ApplicationsActive.Set(float64(len(c.Active)))
	return c
}

func inTerminalBucket(s models.ApplicationState) bool {
	switch s {
	case models.StateCompleted, models.StateRejected, models.StateClosedIncomplete:
		return true
	}
	return false
}

// GetByID returns a copy of one application.
func (e *Engine) GetByID(applicationID string) (*models.Application, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	app, ok := e.index[applicationID]
	if !ok {
		return nil, errors.NewApplicationNotFoundError(applicationID)
	}
	return app.Clone(), nil
}

// Applications returns a copy of the whole collection in creation order.
func (e *Engine) Applications() []*models.Application {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*models.Application, len(e.apps))
	for i, app := range e.apps {
		out[i] = app.Clone()
	}
	return out
}

// Current returns the current application id, empty when none is
// selected.
func (e *Engine) Current() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentID
}

// SetCurrent marks an application as the current selection. An empty id
// clears the selection.
func (e *Engine) SetCurrent(applicationID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if applicationID != "" {
		if _, ok := e.index[applicationID]; !ok {
			return errors.NewApplicationNotFoundError(applicationID)
		}
	}
	e.currentID = applicationID
	return nil
}

// UpdateDocument lets the upload collaborator mutate one document in
// place under the engine lock. Document changes do not touch the
// application's state or updatedAt.
func (e *Engine) UpdateDocument(applicationID, documentID string, update func(*models.Document)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	app, ok := e.index[applicationID]
	if !ok {
		return errors.NewApplicationNotFoundError(applicationID)
	}
	for i := range app.Documents {
		if app.Documents[i].ID == documentID {
			update(&app.Documents[i])
			e.persistLocked()
			return nil
		}
	}
	return errors.NewDocumentNotFoundError(applicationID, documentID)
}

// CompleteOnboarding records the onboarding result. The profile is
// read-only afterwards.
func (e *Engine) CompleteOnboarding(profile models.UserProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := profile
	e.profile = &p
	e.onboarded = true
	e.persistLocked()
}

// Profile returns a copy of the user profile, nil before onboarding.
func (e *Engine) Profile() *models.UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profile == nil {
		return nil
	}
	p := *e.profile
	return &p
}

// HasCompletedOnboarding reports whether onboarding finished.
func (e *Engine) HasCompletedOnboarding() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onboarded
}

// Clear drops all applications and the current selection. Irreversible;
// used by the edge-case explorer. The notification log survives.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.apps = nil
	e.index = make(map[string]*models.Application)
	e.currentID = ""

	e.log.Info("all applications cleared", nil)
	e.persistLocked()
}

// persistLocked mirrors engine state into the store. Callers hold the
// mutex. Persistence is outside the transactional boundary: a failed
// write is logged and the mutation stands.
func (e *Engine) persistLocked() {
	if e.mirror == nil {
		return
	}

	snap := e.snapshotLocked()
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := saveSnapshot(ctx, e.mirror, snap); err != nil {
		e.log.Error("persistence mirror write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
