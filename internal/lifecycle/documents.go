// internal/lifecycle/documents.go
package lifecycle

import "github.com/vaibhavProductCode/loan-progress-hub/internal/models"

// RequiredDocuments produces the document checklist seeded into a new
// application. The set varies by employment type only; loanType is
// accepted because the product forms pass it, but all three loan types
// currently share one checklist.
func RequiredDocuments(loanType models.LoanType, employmentType models.EmploymentType) []models.Document {
	common := []models.Document{
		{ID: "aadhaar", Type: "identity", Name: "Aadhaar Card", Required: true, Status: models.DocumentPending},
		{ID: "pan", Type: "identity", Name: "PAN Card", Required: true, Status: models.DocumentPending},
		{ID: "bank-details", Type: "financial", Name: "Bank Account Details", Required: true, Status: models.DocumentPending},
	}

	if employmentType == models.EmploymentSalaried {
		return append(common,
			models.Document{ID: "salary-slips", Type: "income", Name: "Last 3 Salary Slips", Required: true, Status: models.DocumentPending},
			models.Document{ID: "bank-statements", Type: "financial", Name: "Bank Statements (6 months)", Required: true, Status: models.DocumentPending},
		)
	}

	// self-employed and gig-msme share the business checklist
	return append(common,
		models.Document{ID: "business-proof", Type: "business", Name: "Business Registration", Required: true, Status: models.DocumentPending},
		models.Document{ID: "gst", Type: "business", Name: "GST Certificate", Required: false, Status: models.DocumentPending},
		models.Document{ID: "income-proof", Type: "income", Name: "Income Proof", Required: true, Status: models.DocumentPending},
		models.Document{ID: "bank-statements", Type: "financial", Name: "Bank Statements (6 months)", Required: true, Status: models.DocumentPending},
	)
}
