package quote

import (
	"time"
)

// DeliverySpeed governs the express surcharge and the transport-mode
// override for long distances.
type DeliverySpeed string

const (
	SpeedStandard DeliverySpeed = "standard"
	SpeedExpress  DeliverySpeed = "express"
)

// ParseDeliverySpeed validates a raw delivery-speed string.
func ParseDeliverySpeed(s string) (DeliverySpeed, bool) {
	switch DeliverySpeed(s) {
	case SpeedStandard, SpeedExpress:
		return DeliverySpeed(s), true
	}
	return "", false
}

// TransportMode is the vehicle class chosen for a shipment leg.
type TransportMode string

const (
	ModeMiniVan   TransportMode = "Mini Van"
	ModeTruck     TransportMode = "Truck"
	ModeAeroplane TransportMode = "Aeroplane"
)

// Location is a point on the globe in decimal degrees.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

// Seller owns products and ships from its own location.
type Seller struct {
	ID       int64
	Name     string
	Location Location
}

// Customer is the delivery destination.
type Customer struct {
	ID       int64
	Name     string
	Location Location
}

// Warehouse holds stock. Capacity is the maximum number of units the
// warehouse can hold or ship, an informational upper bound.
type Warehouse struct {
	ID       int64
	Name     string
	Location Location
	Capacity int64
}

// Product is a sellable item with the physical attributes that drive
// chargeable weight.
type Product struct {
	ID       int64
	SellerID int64
	Name     string
	Weight   float64
	Length   float64
	Width    float64
	Height   float64
}

// InventoryRecord is the stock level of one product at one warehouse.
// At most one record exists per (warehouse, product) pair; absence means
// zero stock.
type InventoryRecord struct {
	WarehouseID    int64
	ProductID      int64
	AvailableUnits int64
}

// Request is a seller-wide quote request: the warehouse is chosen by the
// selector.
type Request struct {
	SellerID      int64
	CustomerID    int64
	ProductID     int64
	Quantity      int64
	DeliverySpeed DeliverySpeed
}

// WarehouseRequest is a direct-warehouse quote request: the caller pins
// the warehouse and no selection happens.
type WarehouseRequest struct {
	WarehouseID   int64
	CustomerID    int64
	ProductID     int64
	Quantity      int64
	DeliverySpeed DeliverySpeed
}

// Result is the full quote breakdown for one request. It lives for the
// duration of the request, plus the cache TTL when cached.
type Result struct {
	WarehouseID       int64         `json:"warehouseId"`
	WarehouseLocation Location      `json:"warehouseLocation"`
	DistanceKM        float64       `json:"distance"`
	TransportMode     TransportMode `json:"transportMode"`
	BaseCost          float64       `json:"baseCost"`
	CourierCharge     float64       `json:"courierCharge"`
	ExpressCharge     float64       `json:"expressCharge"`
	FinalCost         float64       `json:"finalCost"`
	EstimatedDays     int           `json:"estimatedDays"`
}

// CacheTTL is how long a computed quote stays valid in the read-through
// cache.
const CacheTTL = 1800 * time.Second
