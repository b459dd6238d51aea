package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

var _ insights.CompanyDatasetLoader = (*DatasetRepo)(nil)

// DatasetRepo carga el dataset de insights de una empresa. Solo lectura: los resultados
// del reporte nunca se persisten.
type DatasetRepo struct {
	db TxBeginner
}

// NewDatasetRepository construye el adaptador sobre el pool.
func NewDatasetRepository(db TxBeginner) *DatasetRepo {
	return &DatasetRepo{db: db}
}

// LoadCompanyDataset lee las seis tablas dentro de una transacción de solo lectura
// REPEATABLE READ, de modo que todas vean la misma instantánea.
// Devuelve domain.ErrNotFound si la empresa no existe.
func (r *DatasetRepo) LoadCompanyDataset(ctx context.Context, companyID string) (*entity.Dataset, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ds, err := loadDataset(ctx, tx, companyID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return ds, nil
}

func loadDataset(ctx context.Context, q Querier, companyID string) (*entity.Dataset, error) {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, companyID).Scan(&exists); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, fmt.Errorf("company %q: %w", companyID, domain.ErrNotFound)
		}
		return nil, wrapQueryErr("companies", err)
	}
	if !exists {
		return nil, fmt.Errorf("company %q: %w", companyID, domain.ErrNotFound)
	}

	ds := &entity.Dataset{}
	var err error
	if ds.Products, err = queryProducts(ctx, q, companyID); err != nil {
		return nil, err
	}
	if ds.Inventory, err = queryInventory(ctx, q, companyID); err != nil {
		return nil, err
	}
	if ds.Sales, err = querySales(ctx, q, companyID); err != nil {
		return nil, err
	}
	if ds.Seasonal, err = querySeasonal(ctx, q, companyID); err != nil {
		return nil, err
	}
	if ds.Feedback, err = queryFeedback(ctx, q, companyID); err != nil {
		return nil, err
	}
	if ds.Trends, err = queryTrendSignals(ctx, q, companyID); err != nil {
		return nil, err
	}
	return ds, nil
}

func queryProducts(ctx context.Context, q Querier, companyID string) ([]entity.Product, error) {
	const query = `
		SELECT id::TEXT, name, price
		FROM products
		WHERE company_id = $1
		ORDER BY id`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapQueryErr("products", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Product, error) {
		var p entity.Product
		var price decimal.NullDecimal
		if err := row.Scan(&p.ID, &p.Name, &price); err != nil {
			return p, err
		}
		p.Price = price.Decimal // NULL → 0: queda fuera de las recomendaciones de precio
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return list, nil
}

// queryInventory ordena por updated_at para que, ante duplicados, el último registro gane.
func queryInventory(ctx context.Context, q Querier, companyID string) ([]entity.InventoryLevel, error) {
	const query = `
		SELECT il.product_id::TEXT, il.current_stock::FLOAT8, il.reorder_level::FLOAT8
		FROM inventory_levels il
		JOIN products p ON p.id = il.product_id
		WHERE p.company_id = $1
		ORDER BY il.product_id, il.updated_at`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapQueryErr("inventory_levels", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.InventoryLevel, error) {
		var l entity.InventoryLevel
		err := row.Scan(&l.ProductID, &l.CurrentStock, &l.ReorderLevel)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan inventory_levels: %w", err)
	}
	return list, nil
}

func querySales(ctx context.Context, q Querier, companyID string) ([]entity.SaleEvent, error) {
	const query = `
		SELECT s.product_id::TEXT, s.sale_date, s.quantity_sold
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE p.company_id = $1
		ORDER BY s.product_id, s.sale_date, s.id`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapQueryErr("sales", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SaleEvent, error) {
		var s entity.SaleEvent
		var date time.Time
		var qty int32
		if err := row.Scan(&s.ProductID, &date, &qty); err != nil {
			return s, err
		}
		s.SaleDate = date.UTC()
		s.QuantitySold = int(qty)
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan sales: %w", err)
	}
	return list, nil
}

func querySeasonal(ctx context.Context, q Querier, companyID string) ([]entity.SeasonalContext, error) {
	const query = `
		SELECT month, demand_modifier::FLOAT8, weather, festival
		FROM seasonal_context
		WHERE company_id = $1
		ORDER BY id`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapQueryErr("seasonal_context", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SeasonalContext, error) {
		var c entity.SeasonalContext
		var month *int32
		if err := row.Scan(&month, &c.DemandModifier, &c.Weather, &c.Festival); err != nil {
			return c, err
		}
		if month != nil {
			m := int(*month)
			c.Month = &m
		}
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan seasonal_context: %w", err)
	}
	return list, nil
}

func queryFeedback(ctx context.Context, q Querier, companyID string) ([]entity.FeedbackSignal, error) {
	const query = `
		SELECT f.product_id::TEXT,
		       COALESCE(f.positive, 0), COALESCE(f.negative, 0), COALESCE(f.neutral, 0)
		FROM feedback_signals f
		JOIN products p ON p.id = f.product_id
		WHERE p.company_id = $1
		ORDER BY f.id`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapQueryErr("feedback_signals", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.FeedbackSignal, error) {
		var f entity.FeedbackSignal
		var pos, neg, neu int32
		if err := row.Scan(&f.ProductID, &pos, &neg, &neu); err != nil {
			return f, err
		}
		f.Positive, f.Negative, f.Neutral = int(pos), int(neg), int(neu)
		return f, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan feedback_signals: %w", err)
	}
	return list, nil
}

// queryTrendSignals no exige que el producto exista en el catálogo: los overrides de
// productos desconocidos también aparecen en el reporte.
func queryTrendSignals(ctx context.Context, q Querier, companyID string) ([]entity.TrendOverride, error) {
	const query = `
		SELECT product_id, trend_label
		FROM trend_signals
		WHERE company_id = $1
		ORDER BY id`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapQueryErr("trend_signals", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.TrendOverride])
	if err != nil {
		return nil, fmt.Errorf("scan trend_signals: %w", err)
	}
	return list, nil
}

var errSchemaMissing = errors.New("esquema de insights no instalado")

func wrapQueryErr(table string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("query %s: %w: %v", table, errSchemaMissing, err)
	}
	return fmt.Errorf("query %s: %w", table, err)
}
