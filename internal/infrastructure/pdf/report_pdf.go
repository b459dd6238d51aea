// Package pdf genera la versión imprimible del reporte de inteligencia de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + generated_at │ best seller                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK: Producto | Stock | Días | Estado                    │
//	│  VENTAS: Producto | Total | Promedio | Tendencia | Cluster  │
//	│  PRECIOS: Producto | Actual | Recomendado | Impacto         │
//	│  SURTIDO y DESCUENTOS                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"math"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorCritical = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorWatch    = &props.Color{Red: 204, Green: 122, Blue: 0}
)

var _ insights.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa insights.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInsightsPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInsightsPDF(ctx context.Context, report *dto.InventoryInsightsDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Insights", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("Stock Health"))
	m.AddRows(tableHeader([]string{"Product", "Current Stock", "Days Until Stock-out", "Status"}, []int{3, 3, 3, 3}))
	m.AddRows(stockRows(report.StockStatus)...)

	m.AddRows(sectionTitle("Sales"))
	m.AddRows(tableHeader([]string{"Product", "Total", "Avg Daily", "Trend", "Cluster"}, []int{3, 2, 2, 3, 2}))
	m.AddRows(salesRows(report)...)

	m.AddRows(sectionTitle("Price Recommendations"))
	m.AddRows(tableHeader([]string{"Product", "Current", "Recommended", "Expected Impact"}, []int{2, 2, 2, 6}))
	m.AddRows(priceRows(report.PriceRecommendations)...)

	m.AddRows(sectionTitle("Assortment"))
	m.AddRows(tableHeader([]string{"Product", "Action", "Reason", "Confidence"}, []int{2, 3, 5, 2}))
	m.AddRows(assortmentRows(report.AssortmentRecommendations)...)

	m.AddRows(sectionTitle("Discounts"))
	m.AddRows(tableHeader([]string{"Product", "Discount", "Window", "Notes"}, []int{2, 2, 3, 5}))
	m.AddRows(discountRows(report.DiscountRecommendations)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.InventoryInsightsDTO) core.Row {
	best := "No sales recorded"
	if b := report.BestSellingProduct; b != nil {
		best = fmt.Sprintf("Best seller: Product %s (%s units)", b.ProductID, formatNumber(b.TotalSales.Float64(), 0))
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INVENTORY INSIGHTS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated at "+report.GeneratedAt, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(best, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 5,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4}),
	))
}

// tableHeader: cabecera blanca sobre fondo primario. sizes debe sumar 12.
func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5, Left: 1,
		}))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(size int, value string, c *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Left: 1, Color: c}))
}

func emptyRow(msg string) []core.Row {
	return []core.Row{row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Color: colorGray, Style: fontstyle.Italic}),
	))}
}

func stockRows(items []dto.StockStatusDTO) []core.Row {
	if len(items) == 0 {
		return emptyRow("No inventory records.")
	}
	rows := make([]core.Row, 0, len(items))
	for _, s := range items {
		days := "no data"
		if s.DaysUntilStockOut != nil {
			days = formatNumber(s.DaysUntilStockOut.Float64(), 1)
		}
		var statusColor *props.Color
		switch s.StockStatus {
		case "CRITICAL":
			statusColor = colorCritical
		case "WATCH":
			statusColor = colorWatch
		}
		rows = append(rows, row.New(6).Add(
			cell(3, "Product "+s.ProductID, nil),
			cell(3, formatNumber(s.CurrentStock.Float64(), 1), nil),
			cell(3, days, nil),
			cell(3, s.StockStatus, statusColor),
		))
	}
	return rows
}

// salesRows cruza sales_stats con tendencias y clusters del mismo reporte.
func salesRows(report *dto.InventoryInsightsDTO) []core.Row {
	if len(report.SalesStats) == 0 {
		return emptyRow("No sales recorded.")
	}
	trends := make(map[string]string, len(report.SalesTrends))
	for _, t := range report.SalesTrends {
		trends[t.ProductID] = t.Trend
	}
	clusters := make(map[string]int, len(report.DemandClusters))
	for _, c := range report.DemandClusters {
		clusters[c.ProductID] = c.Cluster
	}

	rows := make([]core.Row, 0, len(report.SalesStats))
	for _, s := range report.SalesStats {
		trend := nonEmpty(trends[s.ProductID], "-")
		cluster := "-"
		if c, ok := clusters[s.ProductID]; ok {
			cluster = strconv.Itoa(c)
		}
		rows = append(rows, row.New(6).Add(
			cell(3, "Product "+s.ProductID, nil),
			cell(2, strconv.Itoa(s.TotalSales), nil),
			cell(2, formatNumber(s.AvgDailySales.Float64(), 2), nil),
			cell(3, trend, nil),
			cell(2, cluster, nil),
		))
	}
	return rows
}

func priceRows(items []dto.PriceRecommendationDTO) []core.Row {
	if len(items) == 0 {
		return emptyRow("No price recommendations.")
	}
	rows := make([]core.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, row.New(10).Add(
			cell(2, "Product "+p.ProductID, nil),
			cell(2, formatNumber(p.CurrentPrice.Float64(), 2), nil),
			cell(2, formatNumber(p.RecommendedPrice.Float64(), 2), nil),
			col.New(6).Add(
				text.New(p.ExpectedImpact, props.Text{Size: 8, Top: 1, Left: 1}),
				text.New(p.Rationale, props.Text{Size: 7, Top: 5, Left: 1, Color: colorGray}),
			),
		))
	}
	return rows
}

func assortmentRows(items []dto.AssortmentRecommendationDTO) []core.Row {
	if len(items) == 0 {
		return emptyRow("No assortment actions.")
	}
	rows := make([]core.Row, 0, len(items))
	for _, a := range items {
		rows = append(rows, row.New(6).Add(
			cell(2, "Product "+a.ProductID, nil),
			cell(3, a.Action, nil),
			cell(5, a.Reason, nil),
			cell(2, formatNumber(a.Confidence.Float64(), 2), nil),
		))
	}
	return rows
}

func discountRows(items []dto.DiscountRecommendationDTO) []core.Row {
	if len(items) == 0 {
		return emptyRow("No discounts suggested.")
	}
	rows := make([]core.Row, 0, len(items))
	for _, d := range items {
		rows = append(rows, row.New(6).Add(
			cell(2, "Product "+d.ProductID, nil),
			cell(2, formatNumber(d.SuggestedDiscount.Float64(), 0)+"%", nil),
			cell(3, d.TriggerWindow, nil),
			cell(5, d.Notes, nil),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatNumber escribe ±Inf como "inf" para que la tabla no muestre "+Inf".
func formatNumber(v float64, decimals int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "-"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
