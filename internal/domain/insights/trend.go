package insights

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

// trendSlopeThreshold pendiente mínima (unidades por evento) para considerar momentum.
const trendSlopeThreshold = 0.1

// DetectTrends ajusta por producto una recta de mínimos cuadrados de quantity_sold contra el
// índice secuencial del evento (0, 1, 2…), tras ordenar por fecha. El eje x es el evento, no el
// día calendario: dos ventas el mismo día quedan a una unidad de distancia.
// Resultado ordenado por product_id ascendente.
func DetectTrends(sales []entity.SaleEvent) []ProductTrend {
	if len(sales) == 0 {
		return []ProductTrend{}
	}

	byProduct := make(map[string][]entity.SaleEvent)
	for _, s := range sales {
		byProduct[s.ProductID] = append(byProduct[s.ProductID], s)
	}

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	trends := make([]ProductTrend, 0, len(ids))
	for _, id := range ids {
		trends = append(trends, ProductTrend{ProductID: id, Label: classifySeries(byProduct[id])})
	}
	return trends
}

func classifySeries(events []entity.SaleEvent) string {
	if len(events) < 2 {
		return TrendInsufficientData
	}
	ordered := make([]entity.SaleEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SaleDate.Before(ordered[j].SaleDate)
	})

	x := make([]float64, len(ordered))
	y := make([]float64, len(ordered))
	for i, e := range ordered {
		x[i] = float64(i)
		y[i] = float64(e.QuantitySold)
	}
	_, slope := stat.LinearRegression(x, y, nil, false)
	return ClassifySlope(slope)
}

// ClassifySlope >0.1 INCREASING, <-0.1 DECREASING, en otro caso STABLE.
func ClassifySlope(slope float64) string {
	switch {
	case slope > trendSlopeThreshold:
		return TrendIncreasing
	case slope < -trendSlopeThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// TrendMap tendencia fusionada (calculada + overrides). Es la única fuente de verdad que
// consume el motor de recomendaciones.
type TrendMap struct {
	labels map[string]string
	order  []string
}

// MergeTrends aplica los overrides sobre las tendencias calculadas. Un override reemplaza la
// etiqueta (en mayúsculas) del producto; los overrides de productos sin tendencia calculada se
// agregan como entradas nuevas. Overrides sin product_id o sin etiqueta se ignoran.
func MergeTrends(computed []ProductTrend, overrides []entity.TrendOverride) TrendMap {
	m := TrendMap{labels: make(map[string]string, len(computed)+len(overrides))}
	for _, t := range computed {
		m.set(t.ProductID, t.Label)
	}
	for _, o := range overrides {
		if o.ProductID == "" || strings.TrimSpace(o.TrendLabel) == "" {
			continue
		}
		m.set(o.ProductID, strings.ToUpper(o.TrendLabel))
	}
	return m
}

func (m *TrendMap) set(id, label string) {
	if _, ok := m.labels[id]; !ok {
		m.order = append(m.order, id)
	}
	m.labels[id] = label
}

// Label devuelve la tendencia fusionada del producto; STABLE si no hay ninguna.
func (m TrendMap) Label(productID string) string {
	if label, ok := m.labels[productID]; ok {
		return label
	}
	return TrendStable
}

// Lookup devuelve la etiqueta y si existe una entrada para el producto.
func (m TrendMap) Lookup(productID string) (string, bool) {
	label, ok := m.labels[productID]
	return label, ok
}

// Len número de productos con tendencia.
func (m TrendMap) Len() int { return len(m.order) }

// Reported construye la lista observable: las tendencias calculadas (con la etiqueta del
// override si existe) y después los productos que solo llegaron por override, en orden de entrada.
func (m TrendMap) Reported(computed []ProductTrend) []ProductTrend {
	out := make([]ProductTrend, 0, len(m.order))
	seen := make(map[string]struct{}, len(computed))
	for _, t := range computed {
		out = append(out, ProductTrend{ProductID: t.ProductID, Label: m.Label(t.ProductID)})
		seen[t.ProductID] = struct{}{}
	}
	for _, id := range m.order {
		if _, ok := seen[id]; ok {
			continue
		}
		out = append(out, ProductTrend{ProductID: id, Label: m.labels[id]})
	}
	return out
}

func isUptrend(label string) bool {
	l := strings.ToUpper(label)
	return l == TrendIncreasing || l == TrendPositive
}

func isDowntrend(label string) bool {
	l := strings.ToUpper(label)
	return l == TrendDecreasing || l == TrendNegative
}
