// internal/models/application.go
package models

import "time"

// Application is one loan request's lifecycle record. The lifecycle
// engine owns every field except Documents, which the upload
// collaborator mutates in place.
type Application struct {
	ID                string             `json:"id"`
	State             ApplicationState   `json:"state"`
	LoanType          LoanType           `json:"loanType"`
	EmploymentType    EmploymentType     `json:"employmentType"`
	Amount            float64            `json:"amount,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	Documents         []Document         `json:"documents"`
	VerificationSteps []VerificationStep `json:"verificationSteps"`
	Disbursement      *Disbursement      `json:"disbursement,omitempty"`
	Rejection         *Rejection         `json:"rejection,omitempty"`
	Scenario          string             `json:"scenario,omitempty"`
}

// Disbursement is populated once on entering disbursement-initiated and
// persists through completed.
type Disbursement struct {
	Amount       float64   `json:"amount"`
	BankAccount  string    `json:"bankAccount"`
	ExpectedDate time.Time `json:"expectedDate"`
}

// Rejection is populated once on entering rejected and never cleared.
type Rejection struct {
	Reason   string `json:"reason"`
	Guidance string `json:"guidance"`
}

// DocumentStatus is the verification outcome for a single document.
type DocumentStatus string

const (
	DocumentPending     DocumentStatus = "pending"
	DocumentVerified    DocumentStatus = "verified"
	DocumentRejected    DocumentStatus = "rejected"
	DocumentNeedsReview DocumentStatus = "needs-review"
)

// Document is one required or optional piece of evidence, created with
// the application and mutated only by the upload collaborator.
type Document struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Required   bool           `json:"required"`
	Uploaded   bool           `json:"uploaded"`
	Status     DocumentStatus `json:"status"`
	Reason     string         `json:"reason,omitempty"`
	UploadedAt *time.Time     `json:"uploadedAt,omitempty"`
}

// VerificationCategory partitions verification work by concern.
type VerificationCategory string

const (
	CategoryDocuments   VerificationCategory = "documents"
	CategoryKYC         VerificationCategory = "kyc"
	CategoryCreditCheck VerificationCategory = "credit-check"
)

// VerificationStep is one unit of work blocking progress, primarily an
// actionable issue surfaced when an application enters action-required.
type VerificationStep struct {
	ID             string               `json:"id"`
	Category       VerificationCategory `json:"category"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         string               `json:"status"`
	ActionRequired *ActionRequired      `json:"actionRequired,omitempty"`
}

// ActionRequired describes what the applicant must do to unblock a step.
type ActionRequired struct {
	Issue      string `json:"issue"`
	Resolution string `json:"resolution"`
	Example    string `json:"example,omitempty"`
}

// Clone returns a deep copy so callers can't mutate engine-owned state.
func (a *Application) Clone() *Application {
	cp := *a
	cp.Documents = make([]Document, len(a.Documents))
	copy(cp.Documents, a.Documents)
	cp.VerificationSteps = make([]VerificationStep, len(a.VerificationSteps))
	for i, s := range a.VerificationSteps {
		cp.VerificationSteps[i] = s
		if s.ActionRequired != nil {
			ar := *s.ActionRequired
			cp.VerificationSteps[i].ActionRequired = &ar
		}
	}
	if a.Disbursement != nil {
		d := *a.Disbursement
		cp.Disbursement = &d
	}
	if a.Rejection != nil {
		r := *a.Rejection
		cp.Rejection = &r
	}
	return &cp
}
