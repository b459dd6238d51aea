package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/ports"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
)

const (
	narrativeTimeout = 10 * time.Second
	maxDigestItems   = 20
	maxHighlights    = 5
	riskLow          = "low"
	riskMedium       = "medium"
	riskHigh         = "high"
)

// NarrativeUseCase redacta con IA un resumen ejecutivo de un reporte de insights ya calculado.
// Aplica un timeout de 10 segundos en cada llamada al LLM para que las latencias externas
// no bloqueen los goroutines del servidor.
type NarrativeUseCase struct {
	llm ports.InsightsNarrator
}

// NewNarrativeUseCase construye el caso de uso inyectando el puerto InsightsNarrator.
func NewNarrativeUseCase(llm ports.InsightsNarrator) *NarrativeUseCase {
	return &NarrativeUseCase{llm: llm}
}

// reportDigest subconjunto del reporte que se envía al modelo: solo lo accionable.
type reportDigest struct {
	GeneratedAt string                            `json:"generated_at"`
	BestSeller  *dto.BestSellingProductDTO        `json:"best_selling_product"`
	StockAlerts []dto.StockStatusDTO              `json:"stock_alerts"`
	Trends      []dto.SalesTrendDTO               `json:"trends"`
	PriceMoves  []dto.PriceRecommendationDTO      `json:"price_changes"`
	Assortment  []dto.AssortmentRecommendationDTO `json:"assortment"`
	Discounts   []dto.DiscountRecommendationDTO   `json:"discounts"`
}

// Explain envía el resumen del reporte al LLM y normaliza la respuesta.
func (uc *NarrativeUseCase) Explain(ctx context.Context, report *dto.InventoryInsightsDTO) (*dto.InsightsNarrativeDTO, error) {
	if report == nil {
		return nil, fmt.Errorf("reporte es obligatorio: %w", domain.ErrInvalidInput)
	}
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}

	digest, err := json.Marshal(buildDigest(report))
	if err != nil {
		return nil, fmt.Errorf("serializar resumen: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	narrative, err := uc.llm.NarrateInsights(ctx, string(digest))
	if err != nil {
		return nil, fmt.Errorf("narrativa IA: %w", err)
	}
	if narrative == nil {
		return nil, errors.New("narrativa IA: respuesta vacía")
	}

	narrative.RiskLevel = normalizeRisk(narrative.RiskLevel, report)
	if len(narrative.Highlights) > maxHighlights {
		narrative.Highlights = narrative.Highlights[:maxHighlights]
	}
	if narrative.Highlights == nil {
		narrative.Highlights = []string{}
	}
	return narrative, nil
}

func buildDigest(report *dto.InventoryInsightsDTO) reportDigest {
	d := reportDigest{
		GeneratedAt: report.GeneratedAt,
		BestSeller:  report.BestSellingProduct,
		Trends:      capped(report.SalesTrends),
		Assortment:  capped(report.AssortmentRecommendations),
		Discounts:   capped(report.DiscountRecommendations),
	}
	for _, s := range report.StockStatus {
		if s.StockStatus == "CRITICAL" || s.StockStatus == "WATCH" {
			d.StockAlerts = append(d.StockAlerts, s)
		}
	}
	for _, p := range report.PriceRecommendations {
		if p.Adjustment != 0 {
			d.PriceMoves = append(d.PriceMoves, p)
		}
	}
	d.StockAlerts = capped(d.StockAlerts)
	d.PriceMoves = capped(d.PriceMoves)
	return d
}

func capped[T any](items []T) []T {
	if len(items) > maxDigestItems {
		return items[:maxDigestItems]
	}
	return items
}

// normalizeRisk acepta low/medium/high del modelo; si no, lo deriva de las alertas de stock.
func normalizeRisk(level string, report *dto.InventoryInsightsDTO) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case riskLow, riskMedium, riskHigh:
		return l
	}
	risk := riskLow
	for _, s := range report.StockStatus {
		switch s.StockStatus {
		case "CRITICAL":
			return riskHigh
		case "WATCH":
			risk = riskMedium
		}
	}
	return risk
}
