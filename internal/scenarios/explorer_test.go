// internal/scenarios/explorer_test.go
package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/lifecycle"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

func newTestRunner(t *testing.T) (*lifecycle.Engine, *Runner) {
	t.Helper()
	engine := lifecycle.New(lifecycle.WithLogger(logger.NewTestLogger(t)))
	return engine, NewRunner(engine, logger.NewTestLogger(t))
}

func TestPathTo(t *testing.T) {
	tests := []struct {
		target models.ApplicationState
		want   []models.ApplicationState
	}{
		{models.StateDraft, nil},
		{models.StateSubmitted, []models.ApplicationState{models.StateSubmitted}},
		{models.StateClosedIncomplete, []models.ApplicationState{models.StateClosedIncomplete}},
		{
			models.StateCompleted,
			[]models.ApplicationState{
				models.StateSubmitted,
				models.StateVerificationInProgress,
				models.StateReviewInProgress,
				models.StateApproved,
				models.StateDisbursementInitiated,
				models.StateCompleted,
			},
		},
		{
			models.StateVerificationResumed,
			[]models.ApplicationState{
				models.StateSubmitted,
				models.StateVerificationInProgress,
				models.StateActionRequired,
				models.StateVerificationResumed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			path, ok := PathTo(tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestPathTo_EveryStateReachable(t *testing.T) {
	for _, state := range models.AllStates {
		path, ok := PathTo(state)
		require.True(t, ok, "state %s unreachable from draft", state)

		// the returned path is legal step by step
		cur := models.StateDraft
		for _, next := range path {
			assert.True(t, cur.CanTransitionTo(next), "%s -> %s in path to %s", cur, next, state)
			cur = next
		}
		assert.Equal(t, state, cur, "path to %s ends elsewhere", state)
	}
}

func TestPathTo_NoRouteIntoUnknownState(t *testing.T) {
	_, ok := PathTo("limbo")
	assert.False(t, ok)
}

func TestRun(t *testing.T) {
	engine, runner := newTestRunner(t)

	id, err := runner.Run(Catalog[0], models.LoanTypePersonal, models.EmploymentSalaried)
	require.NoError(t, err)

	app, err := engine.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, app.State)
	assert.Equal(t, "happy-path", app.Scenario)
	assert.NotNil(t, app.Disbursement, "happy path passes through disbursement")
}

func TestRunAll(t *testing.T) {
	engine, runner := newTestRunner(t)

	ids, err := runner.RunAll()
	require.NoError(t, err)
	require.Len(t, ids, len(Catalog))

	for i, s := range Catalog {
		app, err := engine.GetByID(ids[i])
		require.NoError(t, err)
		assert.Equal(t, s.TargetState, app.State, "scenario %s", s.Name)
		assert.Equal(t, s.Name, app.Scenario)
	}

	c := engine.Classify()
	assert.Len(t, c.Active, 3)    // document-issue, conditional-approval, disbursement-pending
	assert.Len(t, c.Completed, 3) // happy-path, rejection, abandoned
}

func TestReset(t *testing.T) {
	engine, runner := newTestRunner(t)

	_, err := runner.RunAll()
	require.NoError(t, err)
	require.NotEmpty(t, engine.Applications())

	runner.Reset()
	assert.Empty(t, engine.Applications())
}
