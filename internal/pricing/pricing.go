// Package pricing holds the small market model shared by the generator and
// the reconciler: rounding conventions and the basis/freight arithmetic.
package pricing

import (
	"math"

	"github.com/guttosm/graindesk/internal/domain/models"
)

const (
	// PricePlaces is the precision of cash, freight and net prices.
	PricePlaces = 2
	// BasisPlaces is the precision of a derived basis.
	BasisPlaces = 4
)

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Net returns cash + freight at price precision. Freight is negative for a cost.
func Net(cash, freight float64) float64 {
	return Round(cash+freight, PricePlaces)
}

// Basis returns cash - futures at basis precision.
func Basis(cash, futures float64) float64 {
	return Round(cash-futures, BasisPlaces)
}

// ApplyProfile overwrites the pricing of rec from an authoritative market profile.
//
// Behavior:
//   - Basis is taken from the profile as-is.
//   - FreightCost becomes -profile.Freight.
//   - CashPrice is recomputed as futures + basis so it agrees with the overriding basis.
//   - NetPrice is recomputed as CashPrice - profile.Freight.
func ApplyProfile(rec *models.BuyerRecord, profile models.MarketProfile, futures float64) {
	rec.Basis = profile.Basis
	rec.FreightCost = -profile.Freight
	rec.CashPrice = Round(futures+profile.Basis, PricePlaces)
	rec.NetPrice = Round(rec.CashPrice-profile.Freight, PricePlaces)
}

// Consistent reports whether rec satisfies the net price invariant.
func Consistent(rec models.BuyerRecord) bool {
	return math.Abs(rec.NetPrice-Net(rec.CashPrice, rec.FreightCost)) < 0.005
}
