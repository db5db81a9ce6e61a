package preapproval

import (
	"strings"

	"github.com/google/uuid"
)

// Agent is the loan officer profile attached to reports.
type Agent struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	IsActive    bool      `json:"isActive"`
	JobTitle    string    `json:"jobTitle,omitempty"`
	Address     string    `json:"address,omitempty"`
	Profile     string    `json:"profile,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	NMLS        string    `json:"nmls,omitempty"`
}

// FullName joins the first and last name, skipping blanks.
func (a Agent) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}
