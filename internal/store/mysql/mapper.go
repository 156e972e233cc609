package mysql

import (
	"github.com/tournevent/pricing/pkg/quote"
)

func toDomainSeller(m *sellerModel) *quote.Seller {
	return &quote.Seller{
		ID:       m.ID,
		Name:     m.Name,
		Location: quote.Location{Latitude: m.Latitude, Longitude: m.Longitude},
	}
}

func toDomainCustomer(m *customerModel) *quote.Customer {
	return &quote.Customer{
		ID:       m.ID,
		Name:     m.Name,
		Location: quote.Location{Latitude: m.Latitude, Longitude: m.Longitude},
	}
}

func toDomainWarehouse(m *warehouseModel) quote.Warehouse {
	return quote.Warehouse{
		ID:       m.ID,
		Name:     m.Name,
		Location: quote.Location{Latitude: m.Latitude, Longitude: m.Longitude},
		Capacity: m.Capacity,
	}
}

func toDomainProduct(m *productModel) *quote.Product {
	return &quote.Product{
		ID:       m.ID,
		SellerID: m.SellerID,
		Name:     m.Name,
		Weight:   m.Weight,
		Length:   m.Length,
		Width:    m.Width,
		Height:   m.Height,
	}
}

func toDomainInventory(m *inventoryModel) *quote.InventoryRecord {
	return &quote.InventoryRecord{
		WarehouseID:    m.WarehouseID,
		ProductID:      m.ProductID,
		AvailableUnits: m.AvailableUnits,
	}
}
