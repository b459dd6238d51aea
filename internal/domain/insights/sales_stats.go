package insights

import (
	"sort"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

// AggregateSales agrupa los eventos de venta por producto y calcula el total y el promedio
// por evento. El resultado se ordena por product_id ascendente; sin ventas devuelve un slice vacío.
func AggregateSales(sales []entity.SaleEvent) []SalesStat {
	if len(sales) == 0 {
		return []SalesStat{}
	}

	type acc struct {
		total  int
		events int
	}
	byProduct := make(map[string]*acc)
	for _, s := range sales {
		a, ok := byProduct[s.ProductID]
		if !ok {
			a = &acc{}
			byProduct[s.ProductID] = a
		}
		a.total += s.QuantitySold
		a.events++
	}

	stats := make([]SalesStat, 0, len(byProduct))
	for id, a := range byProduct {
		stats = append(stats, SalesStat{
			ProductID:     id,
			TotalSales:    a.total,
			AvgDailySales: float64(a.total) / float64(a.events),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ProductID < stats[j].ProductID })
	return stats
}

// BestSeller devuelve la estadística con mayor total de ventas; ante empate gana la primera
// en orden de aparición. nil si no hay estadísticas.
func BestSeller(stats []SalesStat) *SalesStat {
	if len(stats) == 0 {
		return nil
	}
	best := stats[0]
	for _, s := range stats[1:] {
		if s.TotalSales > best.TotalSales {
			best = s
		}
	}
	return &best
}
