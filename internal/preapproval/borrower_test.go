package preapproval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorrowerInfoValidate(t *testing.T) {
	valid := BorrowerInfo{
		BorrowerName:         "Jordan Lee",
		FicoScore:            intPtr(720),
		CoBorrowerFicoScore:  intPtr(680),
		BorrowerCellNumber:   "15551234567",
		CoBorrowerCellNumber: "15557654321",
		BorrowerEmail:        "jordan@example.com",
	}
	assert.Empty(t, valid.Validate())

	invalid := valid
	invalid.FicoScore = intPtr(200)
	invalid.CoBorrowerFicoScore = intPtr(900)
	invalid.BorrowerCellNumber = "5551234567"
	invalid.CoBorrowerCellNumber = ""
	invalid.BorrowerEmail = "jordan.example.com"

	errs := invalid.Validate()
	assert.Len(t, errs, 5)
	assert.Equal(t, "FICO score must be between 300 and 850", errs["ficoScore"])
	assert.Contains(t, errs, "coBorrowerFicoScore")
	assert.Contains(t, errs, "borrowerCellNumber")
	assert.Contains(t, errs, "coBorrowerCellNumber")
	assert.Equal(t, "Valid email is required", errs["borrowerEmail"])
}

func TestBorrowerInfoValidateMissingScores(t *testing.T) {
	info := BorrowerInfo{
		BorrowerCellNumber:   "15551234567",
		CoBorrowerCellNumber: "15557654321",
		BorrowerEmail:        "a@b",
	}
	assert.Empty(t, info.Validate())
}

func TestAgentFullName(t *testing.T) {
	assert.Equal(t, "Avery Stone", Agent{FirstName: "Avery", LastName: "Stone"}.FullName())
	assert.Equal(t, "Avery", Agent{FirstName: "Avery"}.FullName())
	assert.Equal(t, "", Agent{}.FullName())
}
