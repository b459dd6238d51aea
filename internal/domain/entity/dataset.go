package entity

// Dataset agrupa las tablas de entrada de un cálculo de insights.
// Es inmutable durante el cálculo: ningún componente lo modifica.
type Dataset struct {
	Products  []Product
	Inventory []InventoryLevel
	Sales     []SaleEvent
	Seasonal  []SeasonalContext
	Feedback  []FeedbackSignal
	Trends    []TrendOverride
}
