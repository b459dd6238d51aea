package insights_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/insights"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var day0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func sale(id string, offsetDays, qty int) entity.SaleEvent {
	return entity.SaleEvent{ProductID: id, SaleDate: day0.AddDate(0, 0, offsetDays), QuantitySold: qty}
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrS(v string) *string   { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Agregador
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateSales_ConservaTotal(t *testing.T) {
	sales := []entity.SaleEvent{
		sale("2", 0, 4), sale("1", 0, 5), sale("2", 1, 6), sale("1", 1, 15), sale("3", 0, 0),
	}
	stats := insights.AggregateSales(sales)

	var inputTotal, statsTotal int
	for _, s := range sales {
		inputTotal += s.QuantitySold
	}
	for _, s := range stats {
		statsTotal += s.TotalSales
	}
	assert.Equal(t, inputTotal, statsTotal, "la suma de total_sales debe conservar las unidades vendidas")

	require.Len(t, stats, 3)
	assert.Equal(t, "1", stats[0].ProductID, "ordenado por product_id")
	assert.Equal(t, 20, stats[0].TotalSales)
	assert.InDelta(t, 10.0, stats[0].AvgDailySales, 1e-9)
	assert.InDelta(t, 5.0, stats[1].AvgDailySales, 1e-9)
}

func TestAggregateSales_SinVentasDevuelveVacio(t *testing.T) {
	stats := insights.AggregateSales(nil)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestAggregateSales_PromedioIgnoraHuecosDeCalendario(t *testing.T) {
	stats := insights.AggregateSales([]entity.SaleEvent{sale("1", 0, 4), sale("1", 20, 8)})
	require.Len(t, stats, 1)
	assert.InDelta(t, 6.0, stats[0].AvgDailySales, 1e-9, "media por evento, no por día")
}

func TestBestSeller_PrimerMaximoGana(t *testing.T) {
	stats := []insights.SalesStat{
		{ProductID: "a", TotalSales: 10},
		{ProductID: "b", TotalSales: 30},
		{ProductID: "c", TotalSales: 30},
	}
	best := insights.BestSeller(stats)
	require.NotNil(t, best)
	assert.Equal(t, "b", best.ProductID)

	assert.Nil(t, insights.BestSeller(nil), "sin estadísticas no hay más vendido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockStatus_LimitesInclusivos(t *testing.T) {
	cases := []struct {
		stock float64
		want  string
	}{
		{70, insights.StockCritical},    // 7.0 días
		{140, insights.StockWatch},      // 14.0 días
		{150.01, insights.StockHealthy}, // 15.001 días
	}
	for _, tc := range cases {
		days := insights.DaysUntilStockOut(tc.stock, 10)
		require.NotNil(t, days)
		assert.Equal(t, tc.want, insights.StockStatus(days), "stock=%v", tc.stock)
	}
}

func TestClassifyStockHealth_LeftJoinDesdeInventario(t *testing.T) {
	inventory := []entity.InventoryLevel{
		{ProductID: "1", CurrentStock: 120, ReorderLevel: 40},
		{ProductID: "9", CurrentStock: 5, ReorderLevel: 1}, // sin ventas
	}
	stats := []insights.SalesStat{
		{ProductID: "1", TotalSales: 20, AvgDailySales: 10},
		{ProductID: "7", TotalSales: 99, AvgDailySales: 3}, // sin inventario: se descarta
	}

	rows := insights.ClassifyStockHealth(inventory, stats)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0].ProductID)
	require.NotNil(t, rows[0].DaysUntilStockOut)
	assert.InDelta(t, 12.0, *rows[0].DaysUntilStockOut, 1e-9)
	assert.Equal(t, insights.StockWatch, rows[0].Status)

	assert.Equal(t, "9", rows[1].ProductID)
	assert.Nil(t, rows[1].DaysUntilStockOut)
	assert.Equal(t, insights.StockNoSalesData, rows[1].Status)
}

func TestClassifyStockHealth_DuplicadoGanaElUltimo(t *testing.T) {
	inventory := []entity.InventoryLevel{
		{ProductID: "1", CurrentStock: 500},
		{ProductID: "2", CurrentStock: 10},
		{ProductID: "1", CurrentStock: 30},
	}
	rows := insights.ClassifyStockHealth(inventory, []insights.SalesStat{{ProductID: "1", AvgDailySales: 10}})
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ProductID)
	assert.Equal(t, 30.0, rows[0].CurrentStock)
	assert.Equal(t, insights.StockCritical, rows[0].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tendencias
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectTrends_Clasificacion(t *testing.T) {
	sales := []entity.SaleEvent{
		// "up" llega desordenado: se ordena por fecha antes del ajuste
		sale("up", 2, 9), sale("up", 0, 1), sale("up", 1, 5),
		sale("down", 0, 9), sale("down", 1, 5), sale("down", 2, 1),
		sale("flat", 0, 4), sale("flat", 1, 4), sale("flat", 2, 4),
		sale("solo", 0, 7),
	}
	trends := insights.DetectTrends(sales)
	byID := map[string]string{}
	for _, tr := range trends {
		byID[tr.ProductID] = tr.Label
	}
	assert.Equal(t, insights.TrendIncreasing, byID["up"])
	assert.Equal(t, insights.TrendDecreasing, byID["down"])
	assert.Equal(t, insights.TrendStable, byID["flat"])
	assert.Equal(t, insights.TrendInsufficientData, byID["solo"])
}

func TestDetectTrends_MismoDiaCuentaComoEventosDistintos(t *testing.T) {
	// Dos ventas el mismo día siguen separadas por una unidad del índice.
	trends := insights.DetectTrends([]entity.SaleEvent{sale("1", 0, 2), sale("1", 0, 6)})
	require.Len(t, trends, 1)
	assert.Equal(t, insights.TrendIncreasing, trends[0].Label)
}

func TestClassifySlope_Umbrales(t *testing.T) {
	assert.Equal(t, insights.TrendStable, insights.ClassifySlope(0.1))
	assert.Equal(t, insights.TrendStable, insights.ClassifySlope(-0.1))
	assert.Equal(t, insights.TrendIncreasing, insights.ClassifySlope(0.11))
	assert.Equal(t, insights.TrendDecreasing, insights.ClassifySlope(-0.11))
}

func TestMergeTrends_OverrideReemplazaYAgrega(t *testing.T) {
	computed := []insights.ProductTrend{
		{ProductID: "1", Label: insights.TrendInsufficientData},
		{ProductID: "2", Label: insights.TrendStable},
	}
	overrides := []entity.TrendOverride{
		{ProductID: "1", TrendLabel: "positive"},
		{ProductID: "99", TrendLabel: "Negative"},
		{ProductID: "", TrendLabel: "increasing"}, // ignorado
		{ProductID: "2", TrendLabel: "  "},        // ignorado
	}

	merged := insights.MergeTrends(computed, overrides)
	assert.Equal(t, insights.TrendPositive, merged.Label("1"))
	assert.Equal(t, insights.TrendStable, merged.Label("2"))
	assert.Equal(t, insights.TrendNegative, merged.Label("99"), "override sin tendencia calculada se agrega")
	assert.Equal(t, insights.TrendStable, merged.Label("desconocido"))
	assert.Equal(t, 3, merged.Len())

	reported := merged.Reported(computed)
	assert.Equal(t, []insights.ProductTrend{
		{ProductID: "1", Label: insights.TrendPositive},
		{ProductID: "2", Label: insights.TrendStable},
		{ProductID: "99", Label: insights.TrendNegative},
	}, reported)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clusters de demanda
// ──────────────────────────────────────────────────────────────────────────────

func TestClusterDemand_CasosBorde(t *testing.T) {
	assert.Empty(t, insights.ClusterDemand(nil, insights.DefaultClusterSeed))

	single := insights.ClusterDemand([]insights.SalesStat{{ProductID: "1", TotalSales: 12}}, insights.DefaultClusterSeed)
	require.Len(t, single, 1)
	assert.Equal(t, 0, single[0].Cluster)
	assert.Equal(t, 12.0, single[0].TotalSales)
}

func TestClusterDemand_SeparaGruposYEsDeterminista(t *testing.T) {
	stats := []insights.SalesStat{
		{ProductID: "a", TotalSales: 10},
		{ProductID: "b", TotalSales: 12},
		{ProductID: "c", TotalSales: 500},
		{ProductID: "d", TotalSales: 510},
		{ProductID: "e", TotalSales: 2000},
	}
	first := insights.ClusterDemand(stats, insights.DefaultClusterSeed)
	second := insights.ClusterDemand(stats, insights.DefaultClusterSeed)
	assert.Equal(t, first, second, "la misma entrada y semilla deben producir la misma asignación")

	require.Len(t, first, 5)
	assert.Equal(t, first[0].Cluster, first[1].Cluster)
	assert.Equal(t, first[2].Cluster, first[3].Cluster)
	assert.NotEqual(t, first[0].Cluster, first[2].Cluster)
	assert.NotEqual(t, first[2].Cluster, first[4].Cluster)
	assert.NotEqual(t, first[0].Cluster, first[4].Cluster)
}

func TestClusterDemand_DosProductosDosGrupos(t *testing.T) {
	clusters := insights.ClusterDemand([]insights.SalesStat{
		{ProductID: "a", TotalSales: 3},
		{ProductID: "b", TotalSales: 90},
	}, insights.DefaultClusterSeed)
	require.Len(t, clusters, 2)
	assert.NotEqual(t, clusters[0].Cluster, clusters[1].Cluster)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contexto: sentimiento y estacionalidad
// ──────────────────────────────────────────────────────────────────────────────

func TestSentimentScore(t *testing.T) {
	assert.Equal(t, 0.5, insights.SentimentScore(insights.FeedbackSummary{Positive: 3, Negative: 1}))
	assert.Equal(t, 0.0, insights.SentimentScore(insights.FeedbackSummary{}), "total cero no divide por cero")
}

func TestSentimentByProduct_SumaDuplicados(t *testing.T) {
	scores := insights.SentimentByProduct([]entity.FeedbackSignal{
		{ProductID: "1", Positive: 1, Negative: 2},
		{ProductID: "1", Positive: 0, Negative: 2, Neutral: 1},
	})
	assert.InDelta(t, -0.5, scores["1"], 1e-9)
}

func TestSeasonalSnapshotFor_FiltraPorMes(t *testing.T) {
	records := []entity.SeasonalContext{
		{Month: ptrI(3), DemandModifier: ptrF(1.2), Weather: ptrS("rainy")},
		{Month: ptrI(3), DemandModifier: ptrF(1.4), Festival: ptrS("holi")},
		{Month: ptrI(3), Weather: nil},
		{Month: ptrI(11), DemandModifier: ptrF(0.5), Festival: ptrS("diwali")},
	}
	snap := insights.SeasonalSnapshotFor(records, time.March)
	assert.InDelta(t, 1.3, snap.Modifier, 1e-9)
	require.NotNil(t, snap.Weather)
	assert.Equal(t, "rainy", *snap.Weather)
	require.NotNil(t, snap.Festival)
	assert.Equal(t, "holi", *snap.Festival)
}

func TestSeasonalSnapshotFor_SinCoincidenciaUsaTodo(t *testing.T) {
	records := []entity.SeasonalContext{
		{Month: ptrI(1), DemandModifier: ptrF(0.8), Weather: ptrS("cold")},
		{Month: nil, DemandModifier: ptrF(1.0), Weather: ptrS("windy")},
	}
	snap := insights.SeasonalSnapshotFor(records, time.July)
	assert.InDelta(t, 0.9, snap.Modifier, 1e-9)
	require.NotNil(t, snap.Weather)
	assert.Equal(t, "windy", *snap.Weather, "último valor no nulo")
	assert.Nil(t, snap.Festival)
}

func TestSeasonalSnapshotFor_SinModificadorUsaUno(t *testing.T) {
	snap := insights.SeasonalSnapshotFor([]entity.SeasonalContext{{Month: ptrI(5)}}, time.May)
	assert.Equal(t, 1.0, snap.Modifier)

	empty := insights.SeasonalSnapshotFor(nil, time.May)
	assert.Equal(t, insights.NeutralSeasonalSnapshot(), empty)
}
