// internal/uploads/simulator_test.go
package uploads

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/errors"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/lifecycle"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

func newTestSetup(t *testing.T, seed int64) (*lifecycle.Engine, *Simulator, string, time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	engine := lifecycle.New(
		lifecycle.WithClock(func() time.Time { return now }),
		lifecycle.WithLogger(logger.NewTestLogger(t)),
	)
	id, err := engine.CreateApplication(models.LoanTypePersonal, models.EmploymentSalaried, nil)
	require.NoError(t, err)

	sim := New(engine,
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return now }),
		WithLogger(logger.NewTestLogger(t)),
	)
	return engine, sim, id, now
}

func TestUpload_BothOutcomesWellFormed(t *testing.T) {
	engine, sim, id, now := newTestSetup(t, 1)

	app, err := engine.GetByID(id)
	require.NoError(t, err)
	docID := app.Documents[0].ID

	sawVerified, sawRejected := false, false
	for i := 0; i < 200 && !(sawVerified && sawRejected); i++ {
		status, err := sim.Upload(id, docID)
		require.NoError(t, err)

		app, err := engine.GetByID(id)
		require.NoError(t, err)
		doc := app.Documents[0]
		assert.True(t, doc.Uploaded)
		assert.Equal(t, status, doc.Status)
		require.NotNil(t, doc.UploadedAt)
		assert.Equal(t, now, *doc.UploadedAt)

		switch status {
		case models.DocumentVerified:
			sawVerified = true
			assert.Empty(t, doc.Reason)
		case models.DocumentRejected:
			sawRejected = true
			assert.Contains(t, rejectionReasons, doc.Reason)
		default:
			t.Fatalf("unexpected status %q", status)
		}
	}
	assert.True(t, sawVerified, "acceptance branch never taken")
	assert.True(t, sawRejected, "rejection branch never taken")
}

func TestUpload_AcceptanceRateIsRoughly80Percent(t *testing.T) {
	_, sim, id, _ := newTestSetup(t, 42)

	verified := 0
	const draws = 2000
	for i := 0; i < draws; i++ {
		status, err := sim.Upload(id, "aadhaar")
		require.NoError(t, err)
		if status == models.DocumentVerified {
			verified++
		}
	}

	rate := float64(verified) / draws
	assert.InDelta(t, acceptanceRate, rate, 0.05)
}

func TestUpload_DoesNotTouchLifecycleState(t *testing.T) {
	engine, sim, id, _ := newTestSetup(t, 7)

	before, err := engine.GetByID(id)
	require.NoError(t, err)

	_, err = sim.Upload(id, "pan")
	require.NoError(t, err)

	after, err := engine.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestUpload_UnknownApplication(t *testing.T) {
	_, sim, _, _ := newTestSetup(t, 1)

	_, err := sim.Upload("LP-NOPE", "aadhaar")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUpload_UnknownDocument(t *testing.T) {
	_, sim, id, _ := newTestSetup(t, 1)

	_, err := sim.Upload(id, "passport")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDocumentNotFound, errors.CodeOf(err))
}
