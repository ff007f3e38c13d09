// internal/lifecycle/documents_test.go
package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

func TestRequiredDocuments(t *testing.T) {
	tests := []struct {
		name           string
		loanType       models.LoanType
		employmentType models.EmploymentType
		wantIDs        []string
	}{
		{
			name:           "salaried gets payslip track",
			loanType:       models.LoanTypePersonal,
			employmentType: models.EmploymentSalaried,
			wantIDs:        []string{"aadhaar", "pan", "bank-details", "salary-slips", "bank-statements"},
		},
		{
			name:           "self-employed gets business track",
			loanType:       models.LoanTypeBusiness,
			employmentType: models.EmploymentSelfEmployed,
			wantIDs:        []string{"aadhaar", "pan", "bank-details", "business-proof", "gst", "income-proof", "bank-statements"},
		},
		{
			name:           "gig-msme gets business track",
			loanType:       models.LoanTypePersonal,
			employmentType: models.EmploymentGigMSME,
			wantIDs:        []string{"aadhaar", "pan", "bank-details", "business-proof", "gst", "income-proof", "bank-statements"},
		},
		{
			name:           "checklist does not vary with loan type",
			loanType:       models.LoanTypeAuto,
			employmentType: models.EmploymentSalaried,
			wantIDs:        []string{"aadhaar", "pan", "bank-details", "salary-slips", "bank-statements"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := RequiredDocuments(tt.loanType, tt.employmentType)

			var ids []string
			for _, d := range docs {
				ids = append(ids, d.ID)
				assert.False(t, d.Uploaded)
				assert.Equal(t, models.DocumentPending, d.Status)
				assert.NotEmpty(t, d.Name)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestRequiredDocuments_OnlyGSTOptional(t *testing.T) {
	docs := RequiredDocuments(models.LoanTypeBusiness, models.EmploymentSelfEmployed)
	for _, d := range docs {
		if d.ID == "gst" {
			assert.False(t, d.Required)
			continue
		}
		assert.True(t, d.Required, "%s should be required", d.ID)
	}
}
