package entity

import "time"

// SaleEvent representa una venta (o interacción de compra) de un producto en una fecha.
// Puede haber varios eventos por producto y fecha.
type SaleEvent struct {
	ProductID    string
	SaleDate     time.Time
	QuantitySold int
}
