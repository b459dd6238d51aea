package insights

import (
	"fmt"
	"strings"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
)

// RenderText vista legible del reporte: estadísticas de ventas, alertas de stock y tendencias.
func RenderText(report *dto.InventoryInsightsDTO) string {
	var b strings.Builder

	b.WriteString("Sales Stats:")
	for _, s := range report.SalesStats {
		fmt.Fprintf(&b, "\n- Product %s: total=%d avg_daily=%.2f", s.ProductID, s.TotalSales, s.AvgDailySales.Float64())
	}

	b.WriteString("\n\nStock Alerts:")
	for _, s := range report.StockStatus {
		readable := "no data"
		if s.DaysUntilStockOut != nil {
			readable = fmt.Sprintf("%.1f days", s.DaysUntilStockOut.Float64())
		}
		fmt.Fprintf(&b, "\n- Product %s: %s (%s)", s.ProductID, s.StockStatus, readable)
	}

	b.WriteString("\n\nTrends:")
	for _, t := range report.SalesTrends {
		fmt.Fprintf(&b, "\n- Product %s: %s", t.ProductID, t.Trend)
	}
	return b.String()
}
