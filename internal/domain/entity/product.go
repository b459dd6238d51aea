package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo que participa en el análisis.
// Price <= 0 excluye el producto de las recomendaciones de precio.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal // precio de venta vigente
}

// HasPrice indica si el producto tiene un precio de venta positivo.
func (p Product) HasPrice() bool {
	return p.Price.IsPositive()
}
