// internal/models/state_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationState_IsValid(t *testing.T) {
	for _, s := range AllStates {
		assert.True(t, s.IsValid(), "state %s", s)
	}
	assert.False(t, ApplicationState("limbo").IsValid())
	assert.False(t, ApplicationState("").IsValid())
}

func TestApplicationState_IsTerminal(t *testing.T) {
	terminal := map[ApplicationState]bool{
		StateRejected:         true,
		StateCompleted:        true,
		StateClosedIncomplete: true,
	}

	for _, s := range AllStates {
		assert.Equal(t, terminal[s], s.IsTerminal(), "state %s", s)
	}
}

func TestTransitionTable_TargetsAreKnownStates(t *testing.T) {
	assert.Len(t, AllowedTransitions, len(AllStates))
	for from, targets := range AllowedTransitions {
		for _, to := range targets {
			assert.True(t, to.IsValid(), "%s -> %s names an unknown state", from, to)
			assert.NotEqual(t, from, to, "%s lists a self-transition", from)
		}
	}
}

func TestLoanType_IsValid(t *testing.T) {
	assert.True(t, LoanTypePersonal.IsValid())
	assert.True(t, LoanTypeBusiness.IsValid())
	assert.True(t, LoanTypeAuto.IsValid())
	assert.False(t, LoanType("mortgage").IsValid())
}

func TestEmploymentType_IsValid(t *testing.T) {
	assert.True(t, EmploymentSalaried.IsValid())
	assert.True(t, EmploymentSelfEmployed.IsValid())
	assert.True(t, EmploymentGigMSME.IsValid())
	assert.False(t, EmploymentType("retired").IsValid())
}
