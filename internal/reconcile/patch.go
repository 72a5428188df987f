package reconcile

import (
	"strconv"

	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/pricing"
)

// applyPatch overwrites the fields set in p and returns the fields whose value
// actually changed. When cash or freight is patched the net price is recomputed
// so the net price invariant keeps holding. Basis is left alone: it is either
// patched explicitly or owned by the market profile step.
func applyPatch(rec *models.BuyerRecord, p models.Patch) []models.FieldChange {
	name := rec.Name
	var changes []models.FieldChange
	note := func(field, old, updated string) {
		if old != updated {
			changes = append(changes, models.FieldChange{Record: name, Field: field, Old: old, New: updated})
		}
	}

	setString := func(field string, dst *string, v *string) {
		if v == nil {
			return
		}
		note(field, *dst, *v)
		*dst = *v
	}
	setFloat := func(field string, dst *float64, v *float64) {
		if v == nil {
			return
		}
		note(field, formatFloat(*dst), formatFloat(*v))
		*dst = *v
	}
	setBool := func(field string, dst *bool, v *bool) {
		if v == nil {
			return
		}
		note(field, strconv.FormatBool(*dst), strconv.FormatBool(*v))
		*dst = *v
	}

	setString("name", &rec.Name, p.Name)
	if p.Type != nil {
		note("type", string(rec.Type), string(*p.Type))
		rec.Type = *p.Type
	}
	setString("city", &rec.City, p.City)
	setString("state", &rec.State, p.State)
	setString("region", &rec.Region, p.Region)
	setFloat("lat", &rec.Lat, p.Lat)
	setFloat("lng", &rec.Lng, p.Lng)
	setFloat("cashPrice", &rec.CashPrice, p.CashPrice)
	setFloat("basis", &rec.Basis, p.Basis)
	setFloat("freightCost", &rec.FreightCost, p.FreightCost)
	setBool("railAccessible", &rec.RailAccessible, p.RailAccessible)
	setBool("nearTransload", &rec.NearTransload, p.NearTransload)
	setString("contactName", &rec.ContactName, p.ContactName)
	setString("contactPhone", &rec.ContactPhone, p.ContactPhone)
	setString("website", &rec.Website, p.Website)
	if p.ConfidenceScore != nil {
		note("confidenceScore", strconv.Itoa(rec.ConfidenceScore), strconv.Itoa(*p.ConfidenceScore))
		rec.ConfidenceScore = *p.ConfidenceScore
	}
	setString("dataSource", &rec.DataSource, p.DataSource)

	if p.CashPrice != nil || p.FreightCost != nil {
		net := pricing.Net(rec.CashPrice, rec.FreightCost)
		note("netPrice", formatFloat(rec.NetPrice), formatFloat(net))
		rec.NetPrice = net
	}
	return changes
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
