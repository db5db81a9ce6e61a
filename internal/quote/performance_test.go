package quote

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
)

func portfolio(size int) []preapproval.Document {
	docs := make([]preapproval.Document, size)
	for i := range docs {
		docs[i] = preapproval.Document{
			ID:        uuid.New(),
			CreatedAt: testNow.Add(-time.Duration(i%97) * time.Hour),
			Status:    preapproval.ApplicationStatus(i%4 + 1),
			Scenarios: []preapproval.Scenario{fhaScenario(), fhaScenario()},
		}
	}
	return docs
}

func TestListLargePortfolio(t *testing.T) {
	docs := portfolio(2000)

	start := time.Now()
	rows := List(docs, 0)
	elapsed := time.Since(start)

	if len(rows) != len(docs) {
		t.Fatalf("expected %d rows, got %d", len(docs), len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CreatedAt.After(rows[i-1].CreatedAt) {
			t.Fatalf("rows out of order at %d: %v after %v", i, rows[i].CreatedAt, rows[i-1].CreatedAt)
		}
	}
	if escrow := List(docs, preapproval.StatusInEscrow); len(escrow) != 500 {
		t.Errorf("expected 500 in-escrow rows, got %d", len(escrow))
	}
	t.Logf("listed %d documents in %v", len(docs), elapsed)
}

func BenchmarkBuildQuickQuote(b *testing.B) {
	doc := fhaDocument()
	scenarioID := doc.Scenarios[0].ID
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildQuickQuote(doc, scenarioID); err != nil {
			b.Fatalf("BuildQuickQuote() error = %v", err)
		}
	}
}

func BenchmarkBuildFHAReport(b *testing.B) {
	doc := fhaDocument()
	scenarioID := doc.Scenarios[0].ID
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildFHAReport(doc, scenarioID, testNow); err != nil {
			b.Fatalf("BuildFHAReport() error = %v", err)
		}
	}
}

func BenchmarkList(b *testing.B) {
	docs := portfolio(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		List(docs, 0)
	}
}
