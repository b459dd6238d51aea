package entity

// InventoryLevel representa el stock actual de un producto y su punto de reorden.
// Hay un único registro por producto; ante duplicados gana el último.
type InventoryLevel struct {
	ProductID    string
	CurrentStock float64
	ReorderLevel float64
}
