package quote_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/pricing/pkg/quote"
)

func TestResolveTransport_DecisionTable(t *testing.T) {
	tests := []struct {
		distanceKM float64
		speed      quote.DeliverySpeed
		mode       quote.TransportMode
		multiplier float64
		etaDays    int
	}{
		// Distance tiers at standard speed.
		{50, quote.SpeedStandard, quote.ModeMiniVan, 3, 2},
		{250, quote.SpeedStandard, quote.ModeTruck, 2, 4},
		{600, quote.SpeedStandard, quote.ModeAeroplane, 1, 1},

		// Tier boundaries are inclusive on the low side.
		{0, quote.SpeedStandard, quote.ModeMiniVan, 3, 2},
		{100, quote.SpeedStandard, quote.ModeMiniVan, 3, 2},
		{100.01, quote.SpeedStandard, quote.ModeTruck, 2, 4},
		{500, quote.SpeedStandard, quote.ModeTruck, 2, 4},
		{500.01, quote.SpeedStandard, quote.ModeAeroplane, 1, 1},

		// Express override fires only above 300 km.
		{400, quote.SpeedExpress, quote.ModeAeroplane, 1, 1},
		{301, quote.SpeedExpress, quote.ModeAeroplane, 1, 1},
		{300, quote.SpeedExpress, quote.ModeTruck, 2, 4},
		{50, quote.SpeedExpress, quote.ModeMiniVan, 3, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2fkm_%s", tt.distanceKM, tt.speed), func(t *testing.T) {
			tr := quote.ResolveTransport(tt.distanceKM, tt.speed)
			assert.Equal(t, tt.mode, tr.Mode)
			assert.Equal(t, tt.multiplier, tr.Multiplier)
			assert.Equal(t, tt.etaDays, tr.ETADays)
		})
	}
}

func TestResolveTransport_MultiplierOrdering(t *testing.T) {
	// Per-unit rates: Mini Van > Truck > Aeroplane.
	miniVan := quote.ResolveTransport(50, quote.SpeedStandard)
	truck := quote.ResolveTransport(250, quote.SpeedStandard)
	aeroplane := quote.ResolveTransport(600, quote.SpeedStandard)

	assert.Greater(t, miniVan.Multiplier, truck.Multiplier)
	assert.Greater(t, truck.Multiplier, aeroplane.Multiplier)
}

func TestTransport_Cost(t *testing.T) {
	tr := quote.Transport{Mode: quote.ModeTruck, Multiplier: 2, ETADays: 4}
	assert.Equal(t, 2000.0, tr.Cost(100, 10))
	assert.Equal(t, 0.0, tr.Cost(0, 10))
}

func TestTransport_CostMonotonicInMultiplier(t *testing.T) {
	const distance, weight = 123.0, 7.5
	var prev float64
	for _, mult := range []float64{1, 2, 3} {
		tr := quote.Transport{Multiplier: mult}
		cost := tr.Cost(distance, weight)
		assert.GreaterOrEqual(t, cost, prev)
		prev = cost
	}
}
