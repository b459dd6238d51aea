package insights

import "github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"

// Umbrales de runway (días hasta agotar stock), inclusivos.
const (
	criticalRunwayDays = 7.0
	watchRunwayDays    = 14.0
)

// ClassifyStockHealth cruza el inventario con las estadísticas de venta (left join: el inventario
// manda). Un producto sin ventas recibe NO_SALES_DATA; un producto sin registro de inventario
// nunca se clasifica. Los duplicados de inventario conservan la posición del primero y los
// valores del último.
func ClassifyStockHealth(inventory []entity.InventoryLevel, stats []SalesStat) []StockHealth {
	if len(inventory) == 0 {
		return []StockHealth{}
	}

	avgByID := make(map[string]float64, len(stats))
	for _, s := range stats {
		avgByID[s.ProductID] = s.AvgDailySales
	}

	order := make([]string, 0, len(inventory))
	latest := make(map[string]entity.InventoryLevel, len(inventory))
	for _, rec := range inventory {
		if _, seen := latest[rec.ProductID]; !seen {
			order = append(order, rec.ProductID)
		}
		latest[rec.ProductID] = rec
	}

	result := make([]StockHealth, 0, len(order))
	for _, id := range order {
		rec := latest[id]
		days := DaysUntilStockOut(rec.CurrentStock, avgByID[id])
		result = append(result, StockHealth{
			ProductID:         id,
			CurrentStock:      rec.CurrentStock,
			DaysUntilStockOut: days,
			Status:            StockStatus(days),
		})
	}
	return result
}

// DaysUntilStockOut devuelve stock / venta promedio, o nil si el promedio no es positivo.
func DaysUntilStockOut(currentStock, avgDailySales float64) *float64 {
	if avgDailySales <= 0 {
		return nil
	}
	days := currentStock / avgDailySales
	return &days
}

// StockStatus clasifica el runway: nil → NO_SALES_DATA, <=7 CRITICAL, <=14 WATCH, resto HEALTHY.
func StockStatus(days *float64) string {
	switch {
	case days == nil:
		return StockNoSalesData
	case *days <= criticalRunwayDays:
		return StockCritical
	case *days <= watchRunwayDays:
		return StockWatch
	default:
		return StockHealthy
	}
}
