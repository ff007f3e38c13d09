// internal/models/state.go
package models

// ApplicationState is one of the twelve lifecycle states an application
// can be in. State is only ever mutated through the lifecycle engine.
type ApplicationState string

const (
	StateDraft                  ApplicationState = "draft"
	StateSubmitted              ApplicationState = "submitted"
	StateVerificationInProgress ApplicationState = "verification-in-progress"
	StateActionRequired         ApplicationState = "action-required"
	StateVerificationResumed    ApplicationState = "verification-resumed"
	StateReviewInProgress       ApplicationState = "review-in-progress"
	StateApproved               ApplicationState = "approved"
	StateConditionalApproval    ApplicationState = "conditional-approval"
	StateRejected               ApplicationState = "rejected"
	StateDisbursementInitiated  ApplicationState = "disbursement-initiated"
	StateCompleted              ApplicationState = "completed"
	StateClosedIncomplete       ApplicationState = "closed-incomplete"
)

// AllowedTransitions is the authoritative transition table. A state maps
// to the full set of states it may move to; terminal states map to an
// empty slice. Self-transitions are not allowed unless listed.
var AllowedTransitions = map[ApplicationState][]ApplicationState{
	StateDraft:                  {StateSubmitted, StateClosedIncomplete},
	StateSubmitted:              {StateVerificationInProgress, StateClosedIncomplete},
	StateVerificationInProgress: {StateActionRequired, StateReviewInProgress, StateClosedIncomplete},
	StateActionRequired:         {StateVerificationResumed, StateClosedIncomplete},
	StateVerificationResumed:    {StateVerificationInProgress, StateClosedIncomplete},
	StateReviewInProgress:       {StateApproved, StateConditionalApproval, StateRejected},
	StateApproved:               {StateDisbursementInitiated},
	StateConditionalApproval:    {StateActionRequired, StateApproved, StateClosedIncomplete},
	StateRejected:               {},
	StateDisbursementInitiated:  {StateCompleted},
	StateCompleted:              {},
	StateClosedIncomplete:       {},
}

// AllStates lists every lifecycle state in rough progression order.
var AllStates = []ApplicationState{
	StateDraft,
	StateSubmitted,
	StateVerificationInProgress,
	StateActionRequired,
	StateVerificationResumed,
	StateReviewInProgress,
	StateApproved,
	StateConditionalApproval,
	StateRejected,
	StateDisbursementInitiated,
	StateCompleted,
	StateClosedIncomplete,
}

// IsValid reports whether s is a known lifecycle state.
func (s ApplicationState) IsValid() bool {
	_, ok := AllowedTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func (s ApplicationState) IsTerminal() bool {
	targets, ok := AllowedTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the transition table permits s → target.
func (s ApplicationState) CanTransitionTo(target ApplicationState) bool {
	for _, t := range AllowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// LoanType is the product category chosen at application creation.
type LoanType string

const (
	LoanTypePersonal LoanType = "personal"
	LoanTypeBusiness LoanType = "business"
	LoanTypeAuto     LoanType = "auto"
)

func (t LoanType) IsValid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeBusiness, LoanTypeAuto:
		return true
	}
	return false
}

// EmploymentType drives which documents the applicant must provide.
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self-employed"
	EmploymentGigMSME      EmploymentType = "gig-msme"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentGigMSME:
		return true
	}
	return false
}
