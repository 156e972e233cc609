package quote

// Transport is the resolved carriage option for a shipment leg: a mode,
// a per-(distance·weight) cost multiplier and a fixed delivery estimate.
type Transport struct {
	Mode       TransportMode
	Multiplier float64
	ETADays    int
}

// Cost returns the base carriage cost for the given distance and
// chargeable weight.
func (t Transport) Cost(distanceKM, weight float64) float64 {
	return distanceKM * weight * t.Multiplier
}

// transportRule is one guarded row of the mode decision table.
type transportRule struct {
	matches   func(distanceKM float64, speed DeliverySpeed) bool
	transport Transport
}

// transportRules is evaluated top to bottom, first match wins. The
// express override outranks the plain distance tiers, and the final rule
// catches every remaining distance, so the table is total over
// distance >= 0 and both delivery speeds.
var transportRules = []transportRule{
	{
		matches: func(d float64, speed DeliverySpeed) bool {
			return speed == SpeedExpress && d > 300
		},
		transport: Transport{Mode: ModeAeroplane, Multiplier: 1, ETADays: 1},
	},
	{
		matches:   func(d float64, _ DeliverySpeed) bool { return d <= 100 },
		transport: Transport{Mode: ModeMiniVan, Multiplier: 3, ETADays: 2},
	},
	{
		matches:   func(d float64, _ DeliverySpeed) bool { return d <= 500 },
		transport: Transport{Mode: ModeTruck, Multiplier: 2, ETADays: 4},
	},
	{
		matches:   func(float64, DeliverySpeed) bool { return true },
		transport: Transport{Mode: ModeAeroplane, Multiplier: 1, ETADays: 1},
	},
}

// ResolveTransport maps a distance and delivery speed to a transport
// option via the ordered rule table.
func ResolveTransport(distanceKM float64, speed DeliverySpeed) Transport {
	for _, rule := range transportRules {
		if rule.matches(distanceKM, speed) {
			return rule.transport
		}
	}
	// Unreachable: the last rule matches everything.
	return Transport{Mode: ModeAeroplane, Multiplier: 1, ETADays: 1}
}
