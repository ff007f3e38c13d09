// internal/models/user.go
package models

// UserProfile is the onboarding result. It is set once when onboarding
// completes and read-only afterwards.
type UserProfile struct {
	Name          string `json:"name"`
	IdentityLast4 string `json:"identityLast4"`
	BankName      string `json:"bankName"`
	BankBranch    string `json:"bankBranch"`
	IsVerified    bool   `json:"isVerified"`
}
