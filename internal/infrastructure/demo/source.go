// Package demo provee el dataset de demostración que se usa cuando no llega ningún payload.
package demo

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

const (
	salesSeed = 42
	salesDays = 30
	minQty    = 2
	maxQty    = 10 // exclusivo
)

var _ insights.DatasetSource = (*Source)(nil)

// Source genera 3 productos con 30 días de ventas pseudoaleatorias deterministas que
// terminan en el día actual del reloj.
type Source struct {
	clock func() time.Time
}

// NewSource construye la fuente; clock nil usa time.Now.
func NewSource(clock func() time.Time) *Source {
	if clock == nil {
		clock = time.Now
	}
	return &Source{clock: clock}
}

// LoadDataset implementa insights.DatasetSource. Cada llamada produce un dataset nuevo.
func (s *Source) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &entity.Dataset{
		Products: []entity.Product{
			{ID: "1", Name: "Soap", Price: decimal.NewFromFloat(30.0)},
			{ID: "2", Name: "Shampoo", Price: decimal.NewFromFloat(120.0)},
			{ID: "3", Name: "Toothpaste", Price: decimal.NewFromFloat(60.0)},
		},
		Inventory: []entity.InventoryLevel{
			{ProductID: "1", CurrentStock: 120, ReorderLevel: 40},
			{ProductID: "2", CurrentStock: 45, ReorderLevel: 20},
			{ProductID: "3", CurrentStock: 80, ReorderLevel: 30},
		},
		Sales: s.sales(),
	}, nil
}

func (s *Source) sales() []entity.SaleEvent {
	now := s.clock().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(salesDays - 1))

	rng := rand.New(rand.NewSource(salesSeed))
	events := make([]entity.SaleEvent, 0, 3*salesDays)
	for _, id := range []string{"1", "2", "3"} {
		for d := 0; d < salesDays; d++ {
			events = append(events, entity.SaleEvent{
				ProductID:    id,
				SaleDate:     first.AddDate(0, 0, d),
				QuantitySold: minQty + rng.Intn(maxQty-minQty),
			})
		}
	}
	return events
}
