// internal/uploads/simulator.go

// Package uploads simulates the document verification collaborator. It
// mutates documents through the engine; it never touches lifecycle
// state. Randomness is injected so tests can fix the seed and assert
// both outcomes deterministically.
package uploads

import (
	"math/rand"
	"time"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/lifecycle"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

// acceptanceRate matches the production simulator's 80% draw.
const acceptanceRate = 0.8

var rejectionReasons = []string{
	"Blurry image detected",
	"Incorrect information",
}

// Simulator runs the accept/reject draw for uploaded documents.
type Simulator struct {
	engine *lifecycle.Engine
	rng    *rand.Rand
	now    func() time.Time
	log    logger.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRand injects the randomness source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) { s.rng = rng }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithLogger injects the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Simulator) { s.log = log }
}

func New(engine *lifecycle.Engine, opts ...Option) *Simulator {
	s := &Simulator{
		engine: engine,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		log:    logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload marks a document uploaded and draws its verification outcome:
// verified at the acceptance rate, otherwise rejected with a reason.
// Returns the status the document ended up with.
func (s *Simulator) Upload(applicationID, documentID string) (models.DocumentStatus, error) {
	status := models.DocumentVerified
	reason := ""
	if s.rng.Float64() >= acceptanceRate {
		status = models.DocumentRejected
		reason = rejectionReasons[s.rng.Intn(len(rejectionReasons))]
	}

	uploadedAt := s.now()
	err := s.engine.UpdateDocument(applicationID, documentID, func(doc *models.Document) {
		doc.Uploaded = true
		doc.Status = status
		doc.Reason = reason
		doc.UploadedAt = &uploadedAt
	})
	if err != nil {
		return "", err
	}

	s.log.Info("document upload processed", map[string]interface{}{
		"applicationId": applicationID,
		"documentId":    documentID,
		"status":        status,
	})
	return status, nil
}
