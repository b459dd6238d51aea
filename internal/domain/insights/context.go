package insights

import (
	"math"
	"time"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

// SummarizeFeedback suma los conteos positivos/negativos/neutros por producto.
func SummarizeFeedback(signals []entity.FeedbackSignal) map[string]FeedbackSummary {
	summary := make(map[string]FeedbackSummary, len(signals))
	for _, s := range signals {
		acc := summary[s.ProductID]
		acc.Positive += s.Positive
		acc.Negative += s.Negative
		acc.Neutral += s.Neutral
		summary[s.ProductID] = acc
	}
	return summary
}

// SentimentScore (positivos - negativos) / total, en [-1, 1]. Con total cero devuelve 0.0.
func SentimentScore(s FeedbackSummary) float64 {
	total := s.Positive + s.Negative + s.Neutral
	if total == 0 {
		return 0.0
	}
	return float64(s.Positive-s.Negative) / float64(total)
}

// SentimentByProduct puntaje de sentimiento por producto a partir de las señales crudas.
func SentimentByProduct(signals []entity.FeedbackSignal) map[string]float64 {
	summary := SummarizeFeedback(signals)
	scores := make(map[string]float64, len(summary))
	for id, s := range summary {
		scores[id] = SentimentScore(s)
	}
	return scores
}

// NeutralSeasonalSnapshot contexto sin información estacional.
func NeutralSeasonalSnapshot() SeasonalSnapshot {
	return SeasonalSnapshot{Modifier: 1.0}
}

// SeasonalSnapshotFor reduce el contexto estacional al mes indicado. Si ningún registro
// coincide con el mes se usa el conjunto completo. El modificador es la media de los
// valores presentes (1.0 si no hay ninguno); clima y festividad son el último valor no nulo.
func SeasonalSnapshotFor(records []entity.SeasonalContext, month time.Month) SeasonalSnapshot {
	if len(records) == 0 {
		return NeutralSeasonalSnapshot()
	}

	current := make([]entity.SeasonalContext, 0, len(records))
	for _, r := range records {
		if r.Month != nil && *r.Month == int(month) {
			current = append(current, r)
		}
	}
	if len(current) == 0 {
		current = records
	}

	snap := NeutralSeasonalSnapshot()
	var sum float64
	var n int
	for _, r := range current {
		if r.DemandModifier != nil && !math.IsNaN(*r.DemandModifier) {
			sum += *r.DemandModifier
			n++
		}
		if r.Weather != nil {
			w := *r.Weather
			snap.Weather = &w
		}
		if r.Festival != nil {
			f := *r.Festival
			snap.Festival = &f
		}
	}
	if n > 0 {
		if mean := sum / float64(n); !math.IsNaN(mean) && !math.IsInf(mean, 0) {
			snap.Modifier = mean
		}
	}
	return snap
}
