package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/testutil"
)

var (
	d  = testutil.D
	nd = testutil.ND
)

var testNow = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func fhaScenario() preapproval.Scenario { return testutil.FHAScenario() }

func fhaDocument() *preapproval.Document {
	return &preapproval.Document{
		ID:        uuid.MustParse("6f1c1c38-3b8a-4d6e-9a51-0c6a8a3f2b11"),
		UserID:    uuid.MustParse("a3a9f0c4-95a4-4e0b-8d0d-5c1e0f7b9e01"),
		CreatedAt: testNow.Add(-48 * time.Hour),
		UpdatedAt: testNow.Add(-48 * time.Hour),
		Status:    preapproval.StatusTBD,
		Scenarios: []preapproval.Scenario{fhaScenario()},
	}
}
