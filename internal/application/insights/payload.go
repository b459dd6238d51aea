package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

// Columnas obligatorias por tabla, en el orden en que se reportan si faltan.
var (
	productColumns   = []string{"product_id", "product_name", "price"}
	inventoryColumns = []string{"product_id", "current_stock", "reorder_level"}
	salesColumns     = []string{"product_id", "sale_date", "quantity_sold"}
)

// Formatos de fecha aceptados para sale_date.
var saleDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var validate = newRowValidator()

func newRowValidator() *validator.Validate {
	v := validator.New()
	// Los errores se reportan con el nombre de la columna, no el del campo Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ── Filas tipadas ─────────────────────────────────────────────────────────────

type productRow struct {
	ProductID   string  `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type inventoryRow struct {
	ProductID    string  `json:"product_id" validate:"required"`
	CurrentStock float64 `json:"current_stock" validate:"gte=0"`
	ReorderLevel float64 `json:"reorder_level" validate:"gte=0"`
}

type saleRow struct {
	ProductID    string    `json:"product_id" validate:"required"`
	SaleDate     time.Time `json:"sale_date" validate:"required"`
	QuantitySold int       `json:"quantity_sold" validate:"gte=0"`
}

// ── PayloadSource ─────────────────────────────────────────────────────────────

// PayloadSource DatasetSource sobre un payload JSON crudo (body HTTP o archivo de la CLI).
// Un body vacío, null, o sin ninguna de las tablas products/inventory/sales delega en fallback.
type PayloadSource struct {
	body     []byte
	fallback DatasetSource
}

var _ DatasetSource = (*PayloadSource)(nil)

// NewPayloadSource construye la fuente. fallback suele ser el dataset demo.
func NewPayloadSource(body []byte, fallback DatasetSource) *PayloadSource {
	return &PayloadSource{body: body, fallback: fallback}
}

// LoadDataset decodifica y valida el payload.
func (s *PayloadSource) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	trimmed := bytes.TrimSpace(s.body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return s.loadFallback(ctx)
	}

	var req dto.InventoryInsightsRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("payload: %w: %v", domain.ErrInvalidInput, err)
	}
	if req.IsEmpty() {
		return s.loadFallback(ctx)
	}
	return ParseRequest(&req)
}

func (s *PayloadSource) loadFallback(ctx context.Context) (*entity.Dataset, error) {
	if s.fallback == nil {
		return nil, fmt.Errorf("payload vacío sin dataset por defecto: %w", domain.ErrInvalidInput)
	}
	return s.fallback.LoadDataset(ctx)
}

// ParseRequest convierte el request en un Dataset tipado. Primero verifica las columnas
// obligatorias de products/inventory/sales (ErrMissingColumns) y después tipa y valida cada
// fila (ErrInvalidInput). Las tablas auxiliares se interpretan de forma tolerante.
func ParseRequest(req *dto.InventoryInsightsRequest) (*entity.Dataset, error) {
	if err := checkColumns("products", req.Products, productColumns); err != nil {
		return nil, err
	}
	if err := checkColumns("inventory", req.Inventory, inventoryColumns); err != nil {
		return nil, err
	}
	if err := checkColumns("sales", req.Sales, salesColumns); err != nil {
		return nil, err
	}

	ds := &entity.Dataset{}
	var err error
	if ds.Products, err = parseProducts(req.Products); err != nil {
		return nil, err
	}
	if ds.Inventory, err = parseInventory(req.Inventory); err != nil {
		return nil, err
	}
	if ds.Sales, err = parseSales(req.Sales); err != nil {
		return nil, err
	}
	ds.Seasonal = parseSeasonal(req.SeasonalContext)
	ds.Feedback = parseFeedback(req.FeedbackSignals)
	ds.Trends = parseTrendSignals(req.TrendSignals)
	return ds, nil
}

// checkColumns reporta las columnas obligatorias que falten en cualquier fila de la tabla.
func checkColumns(table string, rows []map[string]json.RawMessage, required []string) error {
	missing := make(map[string]struct{})
	for _, row := range rows {
		for _, col := range required {
			if _, ok := row[col]; !ok {
				missing[col] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	cols := make([]string, 0, len(missing))
	for _, col := range required {
		if _, ok := missing[col]; ok {
			cols = append(cols, col)
		}
	}
	return fmt.Errorf("%s: %w: %s", table, domain.ErrMissingColumns, strings.Join(cols, ", "))
}

// ── Tablas obligatorias ───────────────────────────────────────────────────────

func parseProducts(rows []map[string]json.RawMessage) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(rows))
	for i, raw := range rows {
		id, err := decodeID(raw["product_id"])
		if err != nil {
			return nil, rowError("products", i, "product_id", err)
		}
		name, err := decodeString(raw["product_name"])
		if err != nil {
			return nil, rowError("products", i, "product_name", err)
		}
		price, err := decodeDecimal(raw["price"])
		if err != nil {
			return nil, rowError("products", i, "price", err)
		}
		row := productRow{ProductID: id, ProductName: name, Price: price.InexactFloat64()}
		if err := validateRow("products", i, row); err != nil {
			return nil, err
		}
		out = append(out, entity.Product{ID: row.ProductID, Name: row.ProductName, Price: price})
	}
	return out, nil
}

func parseInventory(rows []map[string]json.RawMessage) ([]entity.InventoryLevel, error) {
	out := make([]entity.InventoryLevel, 0, len(rows))
	for i, raw := range rows {
		id, err := decodeID(raw["product_id"])
		if err != nil {
			return nil, rowError("inventory", i, "product_id", err)
		}
		stock, err := decodeNumber(raw["current_stock"])
		if err != nil {
			return nil, rowError("inventory", i, "current_stock", err)
		}
		reorder, err := decodeNumber(raw["reorder_level"])
		if err != nil {
			return nil, rowError("inventory", i, "reorder_level", err)
		}
		row := inventoryRow{ProductID: id, CurrentStock: stock, ReorderLevel: reorder}
		if err := validateRow("inventory", i, row); err != nil {
			return nil, err
		}
		out = append(out, entity.InventoryLevel{
			ProductID:    row.ProductID,
			CurrentStock: row.CurrentStock,
			ReorderLevel: row.ReorderLevel,
		})
	}
	return out, nil
}

func parseSales(rows []map[string]json.RawMessage) ([]entity.SaleEvent, error) {
	out := make([]entity.SaleEvent, 0, len(rows))
	for i, raw := range rows {
		id, err := decodeID(raw["product_id"])
		if err != nil {
			return nil, rowError("sales", i, "product_id", err)
		}
		date, err := decodeDate(raw["sale_date"])
		if err != nil {
			return nil, rowError("sales", i, "sale_date", err)
		}
		qty, err := decodeInt(raw["quantity_sold"])
		if err != nil {
			return nil, rowError("sales", i, "quantity_sold", err)
		}
		row := saleRow{ProductID: id, SaleDate: date, QuantitySold: qty}
		if err := validateRow("sales", i, row); err != nil {
			return nil, err
		}
		out = append(out, entity.SaleEvent{
			ProductID:    row.ProductID,
			SaleDate:     row.SaleDate,
			QuantitySold: row.QuantitySold,
		})
	}
	return out, nil
}

// ── Tablas auxiliares (tolerantes) ────────────────────────────────────────────

func parseSeasonal(rows []map[string]json.RawMessage) []entity.SeasonalContext {
	out := make([]entity.SeasonalContext, 0, len(rows))
	for _, raw := range rows {
		var rec entity.SeasonalContext
		if m, ok := lenientNumber(raw["month"]); ok && m == math.Trunc(m) {
			month := int(m)
			rec.Month = &month
		}
		if mod, ok := lenientNumber(raw["demand_modifier"]); ok {
			rec.DemandModifier = &mod
		}
		rec.Weather = lenientText(raw["weather"])
		rec.Festival = lenientText(raw["festival"])
		out = append(out, rec)
	}
	return out
}

// parseFeedback descarta filas sin product_id; conteos no numéricos o negativos valen 0.
func parseFeedback(rows []map[string]json.RawMessage) []entity.FeedbackSignal {
	out := make([]entity.FeedbackSignal, 0, len(rows))
	for _, raw := range rows {
		id, err := decodeID(raw["product_id"])
		if err != nil || id == "" {
			continue
		}
		out = append(out, entity.FeedbackSignal{
			ProductID: id,
			Positive:  lenientCount(raw["positive"]),
			Negative:  lenientCount(raw["negative"]),
			Neutral:   lenientCount(raw["neutral"]),
		})
	}
	return out
}

func parseTrendSignals(rows []map[string]json.RawMessage) []entity.TrendOverride {
	out := make([]entity.TrendOverride, 0, len(rows))
	for _, raw := range rows {
		id, err := decodeID(raw["product_id"])
		label := lenientText(raw["trend_label"])
		if err != nil || id == "" || label == nil {
			continue
		}
		out = append(out, entity.TrendOverride{ProductID: id, TrendLabel: *label})
	}
	return out
}

// ── Decodificadores ───────────────────────────────────────────────────────────

var errNull = errors.New("valor nulo")

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// decodeID acepta un string o un número JSON; el número conserva su representación textual.
func decodeID(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", errNull
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch id := v.(type) {
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	default:
		return "", fmt.Errorf("se esperaba string o número, se recibió %s", string(raw))
	}
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", errNull
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("se esperaba string: %w", err)
	}
	return s, nil
}

func decodeNumber(raw json.RawMessage) (float64, error) {
	if isNull(raw) {
		return 0, errNull
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("se esperaba número: %w", err)
	}
	return f, nil
}

func decodeInt(raw json.RawMessage) (int, error) {
	f, err := decodeNumber(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("se esperaba entero, se recibió %s", string(raw))
	}
	return int(f), nil
}

// decodeDecimal solo acepta números JSON (no strings) para no ocultar errores de tipo.
func decodeDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	if isNull(raw) {
		return decimal.Zero, errNull
	}
	t := bytes.TrimSpace(raw)
	if t[0] == '"' {
		return decimal.Zero, fmt.Errorf("se esperaba número, se recibió %s", string(raw))
	}
	d, err := decimal.NewFromString(string(t))
	if err != nil {
		return decimal.Zero, fmt.Errorf("se esperaba número: %w", err)
	}
	return d, nil
}

func decodeDate(raw json.RawMessage) (time.Time, error) {
	s, err := decodeString(raw)
	if err != nil {
		return time.Time{}, err
	}
	s = strings.TrimSpace(s)
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida %q", s)
}

// lenientNumber acepta números o strings numéricos; cualquier otra cosa se considera ausente.
func lenientNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func lenientCount(raw json.RawMessage) int {
	f, ok := lenientNumber(raw)
	if !ok || f <= 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// lenientText devuelve el string tal cual; números y booleanos se toman por su texto JSON.
func lenientText(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	t := bytes.TrimSpace(raw)
	if t[0] == '{' || t[0] == '[' {
		return nil
	}
	text := string(t)
	return &text
}

// ── Errores ───────────────────────────────────────────────────────────────────

func rowError(table string, index int, column string, err error) error {
	return fmt.Errorf("%s[%d].%s: %w: %v", table, index, column, domain.ErrInvalidInput, err)
}

func validateRow(table string, index int, row any) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s[%d]: validar fila: %w", table, index, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, validationMessage(fe))
	}
	return fmt.Errorf("%s[%d]: %w: %s", table, index, domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es obligatorio"
	case "gte":
		return fe.Field() + " debe ser >= " + fe.Param()
	default:
		return fe.Field() + " es inválido"
	}
}
