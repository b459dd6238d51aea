// Package xlsx exporta el reporte de insights a un libro Excel con gráfico de barras.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
)

const (
	sheetName  = "Sales"
	chartTitle = "Total Sales per Product"
	// BackendNone desactiva el renderizado (INSIGHTS_CHART_BACKEND=none).
	BackendNone = "none"
)

var _ insights.SalesChartRenderer = (*SalesChartRenderer)(nil)

// SalesChartRenderer genera un .xlsx con la hoja de ventas y un gráfico de columnas.
type SalesChartRenderer struct {
	enabled bool
}

// NewSalesChartRenderer construye el renderer según el backend configurado.
func NewSalesChartRenderer(backend string) *SalesChartRenderer {
	return &SalesChartRenderer{enabled: backend != BackendNone}
}

// RenderSalesChart devuelve los bytes del libro. Sin sales_stats → domain.ErrNoChartData;
// backend desactivado → domain.ErrChartUnavailable.
func (r *SalesChartRenderer) RenderSalesChart(ctx context.Context, report *dto.InventoryInsightsDTO) ([]byte, error) {
	if !r.enabled {
		return nil, domain.ErrChartUnavailable
	}
	if report == nil || len(report.SalesStats) == 0 {
		return nil, domain.ErrNoChartData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	header := []any{"Product ID", "Total Sales", "Avg Daily Sales"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, s := range report.SalesStats {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{s.ProductID, s.TotalSales, s.AvgDailySales.Float64()}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	last := len(report.SalesStats) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheetName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetName, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetName, last),
		}},
		Title:  []excelize.RichTextRun{{Text: chartTitle}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Product ID"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Total Sales"}}},
	}
	if err := f.AddChart(sheetName, "E2", chart); err != nil {
		return nil, fmt.Errorf("xlsx: gráfico: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
