// internal/lifecycle/config.go
package lifecycle

import (
	"time"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/config"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

// StateCopy is the notification title/message pair emitted when an
// application enters a state.
type StateCopy struct {
	Title   string
	Message string
}

// Config carries the copy and derived-field values the engine applies on
// state entry. These are deployment configuration, not engine behavior:
// in a real system the rejection reason and disbursement terms would come
// from upstream decision services.
type Config struct {
	StateCopy map[models.ApplicationState]StateCopy

	DisbursementDefaultAmount float64
	DisbursementBankAccount   string
	DisbursementLeadTime      time.Duration

	RejectionReason   string
	RejectionGuidance string

	ActionIssue      string
	ActionResolution string
	ActionExample    string
}

// DefaultConfig returns the stock copy and defaults.
func DefaultConfig() Config {
	return Config{
		StateCopy: map[models.ApplicationState]StateCopy{
			models.StateDraft:                  {"Application Created", "Complete your application to submit."},
			models.StateSubmitted:              {"Application Submitted", "Your application is being processed."},
			models.StateVerificationInProgress: {"Verification Started", "We are verifying your documents and details."},
			models.StateActionRequired:         {"Action Required", "We need some information from you."},
			models.StateVerificationResumed:    {"Verification Resumed", "Verification has resumed after your update."},
			models.StateReviewInProgress:       {"Under Review", "Your application is under final review."},
			models.StateApproved:               {"Loan Approved", "Congratulations! Your loan has been approved."},
			models.StateConditionalApproval:    {"Conditionally Approved", "Your loan is approved with some conditions."},
			models.StateRejected:               {"Application Update", "We could not approve your application at this time."},
			models.StateDisbursementInitiated:  {"Disbursement Started", "Your loan amount is being transferred."},
			models.StateCompleted:              {"Loan Completed", "Your loan has been successfully disbursed."},
			models.StateClosedIncomplete:       {"Application Closed", "Your application has been closed."},
		},

		DisbursementDefaultAmount: 250000,
		DisbursementBankAccount:   "XXXX-XXXX-1234",
		DisbursementLeadTime:      2 * 24 * time.Hour,

		RejectionReason:   "Credit assessment criteria not met",
		RejectionGuidance: "You can reapply after 6 months with improved credit history.",

		ActionIssue:      "The uploaded bank statement is unclear or incomplete.",
		ActionResolution: "Please upload a clear, complete bank statement for the last 6 months.",
		ActionExample:    "Ensure all pages are visible and text is readable.",
	}
}

// ConfigFromApp maps the loaded application configuration onto an engine
// Config, keeping the stock per-state copy.
func ConfigFromApp(lc config.LifecycleConfig) Config {
	cfg := DefaultConfig()

	if lc.Disbursement.DefaultAmount > 0 {
		cfg.DisbursementDefaultAmount = lc.Disbursement.DefaultAmount
	}
	if lc.Disbursement.BankAccount != "" {
		cfg.DisbursementBankAccount = lc.Disbursement.BankAccount
	}
	if lc.Disbursement.LeadTimeDays > 0 {
		cfg.DisbursementLeadTime = time.Duration(lc.Disbursement.LeadTimeDays) * 24 * time.Hour
	}
	if lc.Rejection.Reason != "" {
		cfg.RejectionReason = lc.Rejection.Reason
	}
	if lc.Rejection.Guidance != "" {
		cfg.RejectionGuidance = lc.Rejection.Guidance
	}
	if lc.ActionIssue.Issue != "" {
		cfg.ActionIssue = lc.ActionIssue.Issue
	}
	if lc.ActionIssue.Resolution != "" {
		cfg.ActionResolution = lc.ActionIssue.Resolution
	}
	if lc.ActionIssue.Example != "" {
		cfg.ActionExample = lc.ActionIssue.Example
	}

	return cfg
}
