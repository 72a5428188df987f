package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/guttosm/graindesk/internal/domain/models"
)

func sample() []models.BuyerRecord {
	return []models.BuyerRecord{
		{ID: "b001", Name: "A", Type: models.BuyerElevator, State: "CA", CashPrice: 6.0, FreightCost: -0.25, NetPrice: 5.75, ContactPhone: "555-100-1000", Website: "https://a.com"},
		{ID: "b002", Name: "B", Type: models.BuyerFeedlot, State: "CA", CashPrice: 6.0, FreightCost: -0.25, NetPrice: 5.80, ContactPhone: "(209) 555-1000", Verified: true},
		{ID: "b003", Name: "C", Type: models.BuyerElevator, State: "IA", CashPrice: 4.6, FreightCost: -0.1, NetPrice: 4.5, ContactPhone: "(515) 232-1010", Website: "https://c.com", Verified: true},
	}
}

func TestBuild(t *testing.T) {
	rep := Build(sample())

	if rep.Total != 3 || rep.Verified != 2 || rep.PlaceholderPhones != 1 || rep.MissingWebsite != 1 {
		t.Fatalf("unexpected totals: %+v", rep)
	}
	if diff := cmp.Diff([]Count{{"CA", 2}, {"IA", 1}}, rep.ByState); diff != "" {
		t.Fatalf("by state:\n%s", diff)
	}
	if diff := cmp.Diff([]Count{{"elevator", 2}, {"feedlot", 1}}, rep.ByType); diff != "" {
		t.Fatalf("by type:\n%s", diff)
	}
	if len(rep.NetViolations) != 1 || rep.NetViolations[0].ID != "b002" || rep.NetViolations[0].Expected != 5.75 {
		t.Fatalf("violations: %+v", rep.NetViolations)
	}
}

func TestBuild_Empty(t *testing.T) {
	rep := Build(nil)
	if rep.Total != 0 || len(rep.ByState) != 0 || len(rep.NetViolations) != 0 {
		t.Fatalf("unexpected report for empty dataset: %+v", rep)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(sample()).Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Buyers: 3 (verified 2)", "Placeholder phones: 1", "Net price mismatches (1):", "b002 B: stored 5.80, expected 5.75"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
