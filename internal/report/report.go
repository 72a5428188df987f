// Package report summarizes the quality of a buyer dataset.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/generator"
	"github.com/guttosm/graindesk/internal/pricing"
)

// Count is a label with the number of records carrying it.
type Count struct {
	Label string
	N     int
}

// Violation names a record whose stored net price disagrees with its cash and freight.
type Violation struct {
	ID       string
	Name     string
	Stored   float64
	Expected float64
}

// Report is a snapshot of dataset health.
type Report struct {
	Total             int
	Verified          int
	PlaceholderPhones int
	MissingWebsite    int
	ByState           []Count
	ByType            []Count
	NetViolations     []Violation
}

// Build computes a Report over records. Counts are sorted by descending
// frequency, ties broken by label.
func Build(records []models.BuyerRecord) Report {
	rep := Report{Total: len(records)}
	states := map[string]int{}
	types := map[string]int{}

	for _, r := range records {
		if r.Verified {
			rep.Verified++
		}
		if generator.IsPlaceholderPhone(r.ContactPhone) {
			rep.PlaceholderPhones++
		}
		if r.Website == "" {
			rep.MissingWebsite++
		}
		states[r.State]++
		types[string(r.Type)]++
		if !pricing.Consistent(r) {
			rep.NetViolations = append(rep.NetViolations, Violation{
				ID:       r.ID,
				Name:     r.Name,
				Stored:   r.NetPrice,
				Expected: pricing.Net(r.CashPrice, r.FreightCost),
			})
		}
	}

	rep.ByState = sorted(states)
	rep.ByType = sorted(types)
	return rep
}

func sorted(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Label: k, N: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Print renders the report to w.
func (r Report) Print(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Buyers: %d (verified %d)\n", r.Total, r.Verified)
	fmt.Fprintf(&b, "Placeholder phones: %d\n", r.PlaceholderPhones)
	fmt.Fprintf(&b, "Missing websites: %d\n", r.MissingWebsite)

	b.WriteString("\nBy state:\n")
	for _, c := range r.ByState {
		fmt.Fprintf(&b, "  %-4s %3d\n", c.Label, c.N)
	}
	b.WriteString("\nBy type:\n")
	for _, c := range r.ByType {
		fmt.Fprintf(&b, "  %-10s %3d\n", c.Label, c.N)
	}

	if len(r.NetViolations) > 0 {
		fmt.Fprintf(&b, "\nNet price mismatches (%d):\n", len(r.NetViolations))
		for _, v := range r.NetViolations {
			fmt.Fprintf(&b, "  ! %s %s: stored %.2f, expected %.2f\n", v.ID, v.Name, v.Stored, v.Expected)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
