package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

// RecommendationContext señales auxiliares que consumen los tres generadores.
// Sin feedback el sentimiento es 0.0; Seasonal debe construirse con SeasonalSnapshotFor o
// NeutralSeasonalSnapshot (modificador 1.0).
type RecommendationContext struct {
	Trends    TrendMap
	Sentiment map[string]float64
	Seasonal  SeasonalSnapshot
}

func (rc RecommendationContext) sentiment(productID string) float64 {
	return rc.Sentiment[productID] // 0.0 si no hay feedback
}

// ── Precios ──────────────────────────────────────────────────────────────────

const (
	maxPriceAdjustment   = 0.15
	maxSeasonalComponent = 0.08
)

// RecommendPricing genera una recomendación por producto con precio positivo.
// Cada señal suma o resta un componente; el ajuste final se limita a [-0.15, 0.15].
func RecommendPricing(products []entity.Product, rc RecommendationContext) []PriceRecommendation {
	recs := make([]PriceRecommendation, 0, len(products))
	for _, p := range products {
		if !p.HasPrice() {
			continue
		}
		adjustment, tags := priceAdjustment(rc.Seasonal.Modifier, rc.sentiment(p.ID), rc.Trends.Label(p.ID))

		recommended := p.Price.
			Mul(decimal.NewFromFloat(1 + adjustment)).
			Round(2)

		recs = append(recs, PriceRecommendation{
			ProductID:        p.ID,
			CurrentPrice:     p.Price.InexactFloat64(),
			RecommendedPrice: recommended.InexactFloat64(),
			Adjustment:       adjustment,
			ExpectedImpact:   impactNote(adjustment),
			Rationale:        rationale(tags),
		})
	}
	return recs
}

func priceAdjustment(modifier, sentiment float64, trend string) (float64, []string) {
	var adjustment float64
	var tags []string

	switch {
	case modifier > 1.05:
		adjustment += math.Min(0.05*(modifier-1), maxSeasonalComponent)
		tags = append(tags, "Seasonal uplift")
	case modifier < 0.95:
		adjustment -= math.Min(0.04*(1-modifier), maxSeasonalComponent)
		tags = append(tags, "Seasonal softness")
	}

	switch {
	case sentiment > 0.25:
		adjustment += 0.03
		tags = append(tags, "Positive feedback")
	case sentiment < -0.25:
		adjustment -= 0.05
		tags = append(tags, "Negative feedback")
	}

	switch {
	case isUptrend(trend):
		adjustment += 0.04
		tags = append(tags, "Demand trending up")
	case isDowntrend(trend):
		adjustment -= 0.06
		tags = append(tags, "Demand trending down")
	}

	return math.Max(-maxPriceAdjustment, math.Min(maxPriceAdjustment, adjustment)), tags
}

func impactNote(adjustment float64) string {
	if adjustment == 0 {
		return "Maintain price"
	}
	pct := int(adjustment * 100)
	if pct < 0 {
		pct = -pct
	}
	return fmt.Sprintf("Targeting +/-%d%% revenue shift", pct)
}

func rationale(tags []string) string {
	if len(tags) == 0 {
		return "Stable demand"
	}
	uniq := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, dup := uniq[t]; dup {
			continue
		}
		uniq[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// ── Surtido ──────────────────────────────────────────────────────────────────

// RecommendAssortment emite como máximo una acción por fila de salud de stock.
// El estado tiene prioridad sobre la tendencia: CRITICAL → REORDER, WATCH → PLAN_REPLENISHMENT,
// tendencia al alza → PROMOTE; en otro caso no hay recomendación.
func RecommendAssortment(stock []StockHealth, rc RecommendationContext) []AssortmentRecommendation {
	recs := make([]AssortmentRecommendation, 0, len(stock))
	for _, row := range stock {
		switch {
		case strings.EqualFold(row.Status, StockCritical):
			reason := "Stockout risk"
			if row.DaysUntilStockOut != nil && *row.DaysUntilStockOut != 0 {
				reason = fmt.Sprintf("Projected stockout in %.1f days", *row.DaysUntilStockOut)
			}
			recs = append(recs, AssortmentRecommendation{
				ProductID: row.ProductID, Action: ActionReorder, Reason: reason, Confidence: 0.92,
			})
		case strings.EqualFold(row.Status, StockWatch):
			recs = append(recs, AssortmentRecommendation{
				ProductID: row.ProductID, Action: ActionPlanReplenishment,
				Reason: "Runway tightening amid demand", Confidence: 0.84,
			})
		case isUptrend(rc.Trends.Label(row.ProductID)):
			recs = append(recs, AssortmentRecommendation{
				ProductID: row.ProductID, Action: ActionPromote,
				Reason: "Momentum detected: push bundles", Confidence: 0.78,
			})
		}
	}
	return recs
}

// ── Descuentos ───────────────────────────────────────────────────────────────

const (
	negativeSentimentThreshold = -0.15
	severeSentimentThreshold   = -0.4
	defaultTriggerWindow       = "upcoming cycle"
)

// RecommendDiscounts sugiere un descuento para los productos con sentimiento negativo o
// demanda a la baja. La ventana de activación es la festividad vigente, si no el clima, si no
// "upcoming cycle", en formato título.
func RecommendDiscounts(products []entity.Product, rc RecommendationContext) []DiscountRecommendation {
	recs := make([]DiscountRecommendation, 0)
	if len(products) == 0 {
		return recs
	}
	window := cases.Title(language.Und).String(triggerWindow(rc.Seasonal))

	for _, p := range products {
		sentiment := rc.sentiment(p.ID)
		if !(sentiment < negativeSentimentThreshold || isDowntrend(rc.Trends.Label(p.ID))) {
			continue
		}
		discount := 10.0
		if sentiment < severeSentimentThreshold {
			discount = 15.0
		}
		notes := "Stimulate demand"
		if sentiment < negativeSentimentThreshold {
			notes = "Counter negative sentiment"
		}
		recs = append(recs, DiscountRecommendation{
			ProductID:         p.ID,
			SuggestedDiscount: discount,
			TriggerWindow:     window,
			Notes:             notes,
		})
	}
	return recs
}

func triggerWindow(s SeasonalSnapshot) string {
	if s.Festival != nil && *s.Festival != "" {
		return *s.Festival
	}
	if s.Weather != nil && *s.Weather != "" {
		return *s.Weather
	}
	return defaultTriggerWindow
}
