package insights_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/insights"
)

func product(id string, price float64) entity.Product {
	return entity.Product{ID: id, Name: "P" + id, Price: decimal.NewFromFloat(price)}
}

func neutralContext() insights.RecommendationContext {
	return insights.RecommendationContext{
		Trends:   insights.MergeTrends(nil, nil),
		Seasonal: insights.NeutralSeasonalSnapshot(),
	}
}

func withTrend(rc insights.RecommendationContext, id, label string) insights.RecommendationContext {
	rc.Trends = insights.MergeTrends([]insights.ProductTrend{{ProductID: id, Label: label}}, nil)
	return rc
}

// ──────────────────────────────────────────────────────────────────────────────
// Precios
// ──────────────────────────────────────────────────────────────────────────────

func TestRecommendPricing_TendenciaAlAlza(t *testing.T) {
	rc := withTrend(neutralContext(), "1", insights.TrendIncreasing)
	recs := insights.RecommendPricing([]entity.Product{product("1", 30)}, rc)

	require.Len(t, recs, 1)
	assert.InDelta(t, 0.04, recs[0].Adjustment, 1e-12)
	assert.Equal(t, 31.2, recs[0].RecommendedPrice)
	assert.Equal(t, 30.0, recs[0].CurrentPrice)
	assert.Equal(t, "Demand trending up", recs[0].Rationale)
	assert.Equal(t, "Targeting +/-4% revenue shift", recs[0].ExpectedImpact)
}

func TestRecommendPricing_SinSenalesMantienePrecio(t *testing.T) {
	recs := insights.RecommendPricing([]entity.Product{product("1", 59.99)}, neutralContext())
	require.Len(t, recs, 1)
	assert.Equal(t, 0.0, recs[0].Adjustment)
	assert.Equal(t, "Stable demand", recs[0].Rationale)
	assert.Equal(t, "Maintain price", recs[0].ExpectedImpact)
	assert.Equal(t, 59.99, recs[0].RecommendedPrice)
}

func TestRecommendPricing_ExcluyePrecioNoPositivo(t *testing.T) {
	recs := insights.RecommendPricing([]entity.Product{product("1", 0), product("2", -5), product("3", 10)}, neutralContext())
	require.Len(t, recs, 1)
	assert.Equal(t, "3", recs[0].ProductID)
}

func TestRecommendPricing_AjusteAcotado(t *testing.T) {
	up := neutralContext()
	up.Seasonal = insights.SeasonalSnapshot{Modifier: 5}
	up.Sentiment = map[string]float64{"1": 0.9}
	up = withTrend(up, "1", insights.TrendPositive)

	down := neutralContext()
	down.Seasonal = insights.SeasonalSnapshot{Modifier: 0}
	down.Sentiment = map[string]float64{"1": -0.9}
	down = withTrend(down, "1", insights.TrendNegative)

	hi := insights.RecommendPricing([]entity.Product{product("1", 100)}, up)
	lo := insights.RecommendPricing([]entity.Product{product("1", 100)}, down)
	require.Len(t, hi, 1)
	require.Len(t, lo, 1)

	assert.InDelta(t, 0.15, hi[0].Adjustment, 1e-12)
	assert.Equal(t, 115.0, hi[0].RecommendedPrice)
	assert.Equal(t, "Demand trending up, Positive feedback, Seasonal uplift", hi[0].Rationale)

	assert.InDelta(t, -0.15, lo[0].Adjustment, 1e-12)
	assert.Equal(t, 85.0, lo[0].RecommendedPrice)
	assert.Equal(t, "Demand trending down, Negative feedback, Seasonal softness", lo[0].Rationale)
	assert.Contains(t, lo[0].ExpectedImpact, "Targeting +/-")
}

func TestRecommendPricing_ComponenteEstacional(t *testing.T) {
	rc := neutralContext()
	rc.Seasonal = insights.SeasonalSnapshot{Modifier: 1.2}
	recs := insights.RecommendPricing([]entity.Product{product("1", 100)}, rc)
	require.Len(t, recs, 1)
	assert.InDelta(t, 0.01, recs[0].Adjustment, 1e-12, "0.05 * (1.2 - 1)")
	assert.Equal(t, 101.0, recs[0].RecommendedPrice)

	rc.Seasonal = insights.SeasonalSnapshot{Modifier: 1.0}
	recs = insights.RecommendPricing([]entity.Product{product("1", 100)}, rc)
	assert.Equal(t, "Stable demand", recs[0].Rationale, "modificador dentro de la banda neutra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Surtido
// ──────────────────────────────────────────────────────────────────────────────

func TestRecommendAssortment_EstadoTienePrioridad(t *testing.T) {
	days := func(v float64) *float64 { return &v }
	stock := []insights.StockHealth{
		{ProductID: "c", Status: insights.StockCritical, DaysUntilStockOut: days(3.25)},
		{ProductID: "z", Status: insights.StockCritical, DaysUntilStockOut: days(0)},
		{ProductID: "w", Status: insights.StockWatch, DaysUntilStockOut: days(12)},
		{ProductID: "h", Status: insights.StockHealthy, DaysUntilStockOut: days(40)},
		{ProductID: "n", Status: insights.StockNoSalesData},
	}
	rc := neutralContext()
	rc.Trends = insights.MergeTrends([]insights.ProductTrend{
		{ProductID: "c", Label: insights.TrendIncreasing},
		{ProductID: "w", Label: insights.TrendIncreasing},
		{ProductID: "h", Label: insights.TrendIncreasing},
		{ProductID: "n", Label: insights.TrendDecreasing},
	}, nil)

	recs := insights.RecommendAssortment(stock, rc)
	require.Len(t, recs, 4)

	assert.Equal(t, insights.AssortmentRecommendation{
		ProductID: "c", Action: insights.ActionReorder, Reason: "Projected stockout in 3.2 days", Confidence: 0.92,
	}, recs[0])
	assert.Equal(t, "Stockout risk", recs[1].Reason)
	assert.Equal(t, insights.ActionPlanReplenishment, recs[2].Action)
	assert.Equal(t, 0.84, recs[2].Confidence)
	assert.Equal(t, insights.ActionPromote, recs[3].Action)
	assert.Equal(t, "h", recs[3].ProductID)
	assert.Equal(t, 0.78, recs[3].Confidence)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuentos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecommendDiscounts_SentimientoYTendencia(t *testing.T) {
	festival := "diwali festival"
	rc := neutralContext()
	rc.Seasonal = insights.SeasonalSnapshot{Modifier: 1, Festival: &festival}
	rc.Sentiment = map[string]float64{"1": -0.5, "2": -0.2, "3": 0.4}
	rc = withTrend(rc, "4", insights.TrendDecreasing)

	recs := insights.RecommendDiscounts([]entity.Product{
		product("1", 10), product("2", 10), product("3", 10), product("4", 10),
	}, rc)
	require.Len(t, recs, 3)

	assert.Equal(t, insights.DiscountRecommendation{
		ProductID: "1", SuggestedDiscount: 15.0, TriggerWindow: "Diwali Festival", Notes: "Counter negative sentiment",
	}, recs[0])
	assert.Equal(t, 10.0, recs[1].SuggestedDiscount)
	assert.Equal(t, "Counter negative sentiment", recs[1].Notes)
	assert.Equal(t, "4", recs[2].ProductID)
	assert.Equal(t, "Stimulate demand", recs[2].Notes)
}

func TestRecommendDiscounts_VentanaPorDefecto(t *testing.T) {
	rc := withTrend(neutralContext(), "1", insights.TrendNegative)
	recs := insights.RecommendDiscounts([]entity.Product{product("1", 10)}, rc)
	require.Len(t, recs, 1)
	assert.Equal(t, "Upcoming Cycle", recs[0].TriggerWindow)

	weather := "MONSOON"
	rc.Seasonal.Weather = &weather
	recs = insights.RecommendDiscounts([]entity.Product{product("1", 10)}, rc)
	assert.Equal(t, "Monsoon", recs[0].TriggerWindow, "sin festividad se usa el clima")
}

func TestRecommendDiscounts_SinProductos(t *testing.T) {
	recs := insights.RecommendDiscounts(nil, neutralContext())
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}
