package quote

import (
	"github.com/shopspring/decimal"
)

// Fixed domain constants of the tariff. The volumetric divisor is the
// industry-standard dimensional weight divisor.
const (
	volumetricDivisor = 5000.0
	courierCharge     = 10.0
	expressRate       = 1.2
)

// Pricing is the charge breakdown produced by the pricing engine before
// it is assembled into a Result.
type Pricing struct {
	ChargeableWeight float64
	BaseCost         float64
	CourierCharge    float64
	ExpressCharge    float64
	FinalCost        float64
}

// ChargeableWeight returns the billing weight for a product at the given
// quantity: the greater of actual and volumetric weight.
func ChargeableWeight(p Product, quantity int64) float64 {
	qty := float64(quantity)
	actual := p.Weight * qty
	volumetric := (p.Length * p.Width * p.Height / volumetricDivisor) * qty
	if volumetric > actual {
		return volumetric
	}
	return actual
}

// Price computes the full charge breakdown for shipping quantity units of
// a product over the given distance with the resolved transport option.
// The final cost is rounded half-up to two decimal places; the other
// amounts are reported unrounded.
func Price(distanceKM float64, p Product, quantity int64, speed DeliverySpeed, t Transport) Pricing {
	weight := ChargeableWeight(p, quantity)
	baseCost := t.Cost(distanceKM, weight)

	expressCharge := 0.0
	if speed == SpeedExpress {
		expressCharge = expressRate * weight
	}

	return Pricing{
		ChargeableWeight: weight,
		BaseCost:         baseCost,
		CourierCharge:    courierCharge,
		ExpressCharge:    expressCharge,
		FinalCost:        roundMoney(baseCost + courierCharge + expressCharge),
	}
}

// roundMoney rounds to two decimal places, half away from zero.
func roundMoney(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}
