package mysql

// Database models mirror the reference-data tables. The service only
// reads them; table lifecycle and data entry live elsewhere.

type sellerModel struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Latitude  float64
	Longitude float64
}

func (sellerModel) TableName() string { return "sellers" }

type customerModel struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Latitude  float64
	Longitude float64
}

func (customerModel) TableName() string { return "customers" }

type warehouseModel struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Latitude  float64
	Longitude float64
	Capacity  int64
}

func (warehouseModel) TableName() string { return "warehouses" }

type productModel struct {
	ID       int64 `gorm:"primaryKey"`
	SellerID int64
	Name     string
	Weight   float64
	Length   float64
	Width    float64
	Height   float64
}

func (productModel) TableName() string { return "products" }

type inventoryModel struct {
	ID             int64 `gorm:"primaryKey"`
	WarehouseID    int64
	ProductID      int64
	AvailableUnits int64
}

func (inventoryModel) TableName() string { return "warehouse_inventory" }
