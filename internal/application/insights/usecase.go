// Package insights orquesta el reporte de inteligencia de inventario: obtiene el dataset desde
// un DatasetSource, ejecuta el pipeline de dominio y arma la respuesta serializable.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
	dominsights "github.com/Prathamesh0412/Sentinel-Ops/internal/domain/insights"
)

// UseCase ensambla el reporte. No guarda estado entre llamadas: puede usarse desde varias
// goroutines a la vez.
type UseCase struct {
	log   zerolog.Logger
	seed  int64
	clock func() time.Time
}

// Option personaliza el caso de uso.
type Option func(*UseCase)

// WithClock fija el reloj usado para generated_at y para el mes del contexto estacional.
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

// WithClusterSeed fija la semilla del agrupamiento de demanda.
func WithClusterSeed(seed int64) Option {
	return func(uc *UseCase) { uc.seed = seed }
}

// NewUseCase construye el caso de uso con semilla 42 y reloj del sistema por defecto.
func NewUseCase(log zerolog.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		log:   log.With().Str("component", "inventory_insights").Logger(),
		seed:  dominsights.DefaultClusterSeed,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Generate carga el dataset desde src y devuelve el reporte completo.
// Los errores de la fuente (ErrMissingColumns, ErrInvalidInput, ErrNotFound) se propagan envueltos.
func (uc *UseCase) Generate(ctx context.Context, src DatasetSource) (*dto.InventoryInsightsDTO, error) {
	ds, err := src.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := uc.clock()
	report := uc.Assemble(ds)

	uc.log.Info().
		Int("products", len(ds.Products)).
		Int("inventory", len(ds.Inventory)).
		Int("sales", len(ds.Sales)).
		Int("price_recs", len(report.PriceRecommendations)).
		Int("assortment_recs", len(report.AssortmentRecommendations)).
		Int("discount_recs", len(report.DiscountRecommendations)).
		Dur("elapsed", uc.clock().Sub(start)).
		Msg("reporte de insights generado")

	return report, nil
}

// Assemble ejecuta el pipeline sobre un dataset ya validado. Es síncrono y sin I/O.
func (uc *UseCase) Assemble(ds *entity.Dataset) *dto.InventoryInsightsDTO {
	now := uc.clock().UTC()

	stats := dominsights.AggregateSales(ds.Sales)
	stock := dominsights.ClassifyStockHealth(ds.Inventory, stats)
	trends := dominsights.DetectTrends(ds.Sales)
	clusters := dominsights.ClusterDemand(stats, uc.seed)
	trendMap := dominsights.MergeTrends(trends, ds.Trends)

	rc := dominsights.RecommendationContext{
		Trends:    trendMap,
		Sentiment: dominsights.SentimentByProduct(ds.Feedback),
		Seasonal:  dominsights.SeasonalSnapshotFor(ds.Seasonal, now.Month()),
	}
	uc.log.Debug().
		Float64("seasonal_modifier", rc.Seasonal.Modifier).
		Int("trend_overrides", len(ds.Trends)).
		Int("feedback_products", len(rc.Sentiment)).
		Msg("contexto de recomendaciones")

	return &dto.InventoryInsightsDTO{
		SalesStats:                toSalesStatDTOs(stats),
		StockStatus:               toStockStatusDTOs(stock),
		BestSellingProduct:        toBestSellerDTO(dominsights.BestSeller(stats)),
		SalesTrends:               toTrendDTOs(trendMap.Reported(trends)),
		DemandClusters:            toClusterDTOs(clusters),
		PriceRecommendations:      toPriceDTOs(dominsights.RecommendPricing(ds.Products, rc)),
		AssortmentRecommendations: toAssortmentDTOs(dominsights.RecommendAssortment(stock, rc)),
		DiscountRecommendations:   toDiscountDTOs(dominsights.RecommendDiscounts(ds.Products, rc)),
		GeneratedAt:               now.Format(time.RFC3339),
	}
}

// ── Mapeo dominio → DTO ───────────────────────────────────────────────────────

func toSalesStatDTOs(stats []dominsights.SalesStat) []dto.SalesStatDTO {
	out := make([]dto.SalesStatDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.SalesStatDTO{
			ProductID:     s.ProductID,
			TotalSales:    s.TotalSales,
			AvgDailySales: dto.JSONFloat(s.AvgDailySales),
		})
	}
	return out
}

func toStockStatusDTOs(rows []dominsights.StockHealth) []dto.StockStatusDTO {
	out := make([]dto.StockStatusDTO, 0, len(rows))
	for _, r := range rows {
		item := dto.StockStatusDTO{
			ProductID:    r.ProductID,
			CurrentStock: dto.JSONFloat(r.CurrentStock),
			StockStatus:  r.Status,
		}
		if r.DaysUntilStockOut != nil {
			days := dto.JSONFloat(*r.DaysUntilStockOut)
			item.DaysUntilStockOut = &days
		}
		out = append(out, item)
	}
	return out
}

func toBestSellerDTO(best *dominsights.SalesStat) *dto.BestSellingProductDTO {
	if best == nil {
		return nil
	}
	return &dto.BestSellingProductDTO{
		ProductID:     best.ProductID,
		TotalSales:    dto.JSONFloat(best.TotalSales),
		AvgDailySales: dto.JSONFloat(best.AvgDailySales),
	}
}

func toTrendDTOs(trends []dominsights.ProductTrend) []dto.SalesTrendDTO {
	out := make([]dto.SalesTrendDTO, 0, len(trends))
	for _, t := range trends {
		out = append(out, dto.SalesTrendDTO{ProductID: t.ProductID, Trend: t.Label})
	}
	return out
}

func toClusterDTOs(clusters []dominsights.DemandCluster) []dto.DemandClusterDTO {
	out := make([]dto.DemandClusterDTO, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, dto.DemandClusterDTO{
			ProductID:  c.ProductID,
			TotalSales: dto.JSONFloat(c.TotalSales),
			Cluster:    c.Cluster,
		})
	}
	return out
}

func toPriceDTOs(recs []dominsights.PriceRecommendation) []dto.PriceRecommendationDTO {
	out := make([]dto.PriceRecommendationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.PriceRecommendationDTO{
			ProductID:        r.ProductID,
			CurrentPrice:     dto.JSONFloat(r.CurrentPrice),
			RecommendedPrice: dto.JSONFloat(r.RecommendedPrice),
			Adjustment:       dto.JSONFloat(r.Adjustment),
			ExpectedImpact:   r.ExpectedImpact,
			Rationale:        r.Rationale,
		})
	}
	return out
}

func toAssortmentDTOs(recs []dominsights.AssortmentRecommendation) []dto.AssortmentRecommendationDTO {
	out := make([]dto.AssortmentRecommendationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.AssortmentRecommendationDTO{
			ProductID:  r.ProductID,
			Action:     r.Action,
			Reason:     r.Reason,
			Confidence: dto.JSONFloat(r.Confidence),
		})
	}
	return out
}

func toDiscountDTOs(recs []dominsights.DiscountRecommendation) []dto.DiscountRecommendationDTO {
	out := make([]dto.DiscountRecommendationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.DiscountRecommendationDTO{
			ProductID:         r.ProductID,
			SuggestedDiscount: dto.JSONFloat(r.SuggestedDiscount),
			TriggerWindow:     r.TriggerWindow,
			Notes:             r.Notes,
		})
	}
	return out
}
