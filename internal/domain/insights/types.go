// Package insights contiene el pipeline puro de inteligencia de inventario:
// estadísticas de ventas, salud de stock, tendencia, clusters de demanda,
// contexto (sentimiento y estacionalidad) y el motor de recomendaciones.
//
// Todas las funciones son puras: reciben entidades inmutables y devuelven
// estructuras nuevas, sin I/O ni estado compartido.
package insights

// Estados de salud de stock.
const (
	StockCritical    = "CRITICAL"
	StockWatch       = "WATCH"
	StockHealthy     = "HEALTHY"
	StockNoSalesData = "NO_SALES_DATA"
)

// Etiquetas de tendencia. POSITIVE/NEGATIVE solo llegan vía overrides externos.
const (
	TrendIncreasing       = "INCREASING"
	TrendDecreasing       = "DECREASING"
	TrendStable           = "STABLE"
	TrendInsufficientData = "INSUFFICIENT_DATA"
	TrendPositive         = "POSITIVE"
	TrendNegative         = "NEGATIVE"
)

// Acciones de surtido.
const (
	ActionReorder           = "REORDER"
	ActionPlanReplenishment = "PLAN_REPLENISHMENT"
	ActionPromote           = "PROMOTE"
)

// SalesStat agregado de ventas por producto.
type SalesStat struct {
	ProductID     string
	TotalSales    int
	AvgDailySales float64 // media de quantity_sold por evento, sin considerar huecos de calendario
}

// StockHealth clasificación de un registro de inventario.
type StockHealth struct {
	ProductID         string
	CurrentStock      float64
	DaysUntilStockOut *float64 // nil si no hay ventas promedio positivas
	Status            string
}

// ProductTrend tendencia calculada para un producto.
type ProductTrend struct {
	ProductID string
	Label     string
}

// DemandCluster asignación de cluster de demanda. Cluster es un id opaco, sin orden.
type DemandCluster struct {
	ProductID  string
	TotalSales float64
	Cluster    int
}

// FeedbackSummary conteos agregados de opiniones de un producto.
type FeedbackSummary struct {
	Positive int
	Negative int
	Neutral  int
}

// SeasonalSnapshot contexto estacional vigente.
type SeasonalSnapshot struct {
	Modifier float64
	Weather  *string
	Festival *string
}

// PriceRecommendation ajuste de precio sugerido para un producto.
type PriceRecommendation struct {
	ProductID        string
	CurrentPrice     float64
	RecommendedPrice float64
	Adjustment       float64 // siempre dentro de [-0.15, 0.15]
	ExpectedImpact   string
	Rationale        string
}

// AssortmentRecommendation acción de surtido sugerida para un producto.
type AssortmentRecommendation struct {
	ProductID  string
	Action     string
	Reason     string
	Confidence float64
}

// DiscountRecommendation descuento sugerido para un producto.
type DiscountRecommendation struct {
	ProductID         string
	SuggestedDiscount float64
	TriggerWindow     string
	Notes             string
}
