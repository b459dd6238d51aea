package dto

import (
	"encoding/json"
	"math"
)

// ── Request ───────────────────────────────────────────────────────────────────

// InventoryInsightsRequest cuerpo de POST /api/inventory-insights.
// Las filas llegan como mapas columna → JSON crudo; el tipado y la validación se hacen
// en la frontera (application/insights). Una sección ausente o null queda en nil.
type InventoryInsightsRequest struct {
	Products        []map[string]json.RawMessage `json:"products"`         // product_id, product_name, price
	Inventory       []map[string]json.RawMessage `json:"inventory"`        // product_id, current_stock, reorder_level
	Sales           []map[string]json.RawMessage `json:"sales"`            // product_id, sale_date, quantity_sold
	SeasonalContext []map[string]json.RawMessage `json:"seasonal_context"` // month, demand_modifier, weather, festival
	FeedbackSignals []map[string]json.RawMessage `json:"feedback_signals"` // product_id, positive, negative, neutral
	TrendSignals    []map[string]json.RawMessage `json:"trend_signals"`    // product_id, trend_label
}

// IsEmpty indica que no llegó ninguna de las tablas principales: se usa el dataset demo.
func (r *InventoryInsightsRequest) IsEmpty() bool {
	return r == nil || (r.Products == nil && r.Inventory == nil && r.Sales == nil)
}

// ── Response ──────────────────────────────────────────────────────────────────

// InventoryInsightsDTO respuesta completa del reporte de inteligencia de inventario.
type InventoryInsightsDTO struct {
	SalesStats                []SalesStatDTO                `json:"sales_stats"`
	StockStatus               []StockStatusDTO              `json:"stock_status"`
	BestSellingProduct        *BestSellingProductDTO        `json:"best_selling_product"` // null sin ventas
	SalesTrends               []SalesTrendDTO               `json:"sales_trends"`
	DemandClusters            []DemandClusterDTO            `json:"demand_clusters"`
	PriceRecommendations      []PriceRecommendationDTO      `json:"price_recommendations"`
	AssortmentRecommendations []AssortmentRecommendationDTO `json:"assortment_recommendations"`
	DiscountRecommendations   []DiscountRecommendationDTO   `json:"discount_recommendations"`
	GeneratedAt               string                        `json:"generated_at"` // RFC 3339, UTC
}

// SalesStatDTO ventas agregadas de un producto.
type SalesStatDTO struct {
	ProductID     string    `json:"product_id"`
	TotalSales    int       `json:"total_sales"`
	AvgDailySales JSONFloat `json:"avg_daily_sales"`
}

// StockStatusDTO salud de stock; days_until_stock_out es null sin ventas promedio.
type StockStatusDTO struct {
	ProductID         string     `json:"product_id"`
	CurrentStock      JSONFloat  `json:"current_stock"`
	DaysUntilStockOut *JSONFloat `json:"days_until_stock_out"`
	StockStatus       string     `json:"stock_status"` // CRITICAL | WATCH | HEALTHY | NO_SALES_DATA
}

// BestSellingProductDTO producto con mayor total de ventas.
type BestSellingProductDTO struct {
	ProductID     string    `json:"product_id"`
	TotalSales    JSONFloat `json:"total_sales"`
	AvgDailySales JSONFloat `json:"avg_daily_sales"`
}

// SalesTrendDTO etiqueta de tendencia reportada (calculada u override).
type SalesTrendDTO struct {
	ProductID string `json:"product_id"`
	Trend     string `json:"trend"`
}

// DemandClusterDTO asignación de cluster. El id es opaco.
type DemandClusterDTO struct {
	ProductID  string    `json:"product_id"`
	TotalSales JSONFloat `json:"total_sales"`
	Cluster    int       `json:"cluster"`
}

// PriceRecommendationDTO ajuste de precio sugerido.
type PriceRecommendationDTO struct {
	ProductID        string    `json:"product_id"`
	CurrentPrice     JSONFloat `json:"current_price"`
	RecommendedPrice JSONFloat `json:"recommended_price"`
	Adjustment       JSONFloat `json:"adjustment"` // fracción en [-0.15, 0.15]
	ExpectedImpact   string    `json:"expected_impact"`
	Rationale        string    `json:"rationale"`
}

// AssortmentRecommendationDTO acción de surtido.
type AssortmentRecommendationDTO struct {
	ProductID  string    `json:"product_id"`
	Action     string    `json:"action"` // REORDER | PLAN_REPLENISHMENT | PROMOTE
	Reason     string    `json:"reason"`
	Confidence JSONFloat `json:"confidence"`
}

// DiscountRecommendationDTO descuento sugerido (porcentaje).
type DiscountRecommendationDTO struct {
	ProductID         string    `json:"product_id"`
	SuggestedDiscount JSONFloat `json:"suggested_discount"`
	TriggerWindow     string    `json:"trigger_window"`
	Notes             string    `json:"notes"`
}

// ── Narrativa IA ──────────────────────────────────────────────────────────────

// InsightsNarrativeDTO resumen en lenguaje natural generado por el LLM sobre un reporte.
type InsightsNarrativeDTO struct {
	Headline   string   `json:"headline"`
	Highlights []string `json:"highlights"`
	RiskLevel  string   `json:"risk_level"` // low | medium | high
}

// ── Codificación de flotantes ─────────────────────────────────────────────────

// JSONFloat float64 que serializa ±Inf como "Infinity"/"-Infinity" y NaN como null.
// encoding/json rechaza esos valores con error.
type JSONFloat float64

// MarshalJSON implementa json.Marshaler.
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON acepta números y las cadenas "Infinity"/"-Infinity".
func (f *JSONFloat) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"Infinity"`:
		*f = JSONFloat(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*f = JSONFloat(math.Inf(-1))
		return nil
	case "null":
		*f = JSONFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

// Float64 valor nativo.
func (f JSONFloat) Float64() float64 { return float64(f) }
