package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/usecase"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// InsightsHandler expone el reporte de inteligencia de inventario y sus representaciones.
type InsightsHandler struct {
	uc        *insights.UseCase
	demo      insights.DatasetSource
	pdf       insights.ReportPDFGenerator
	chart     insights.SalesChartRenderer
	narrative *usecase.NarrativeUseCase
	companies insights.CompanyDatasetLoader
	log       zerolog.Logger
}

// NewInsightsHandler construye el handler. companies puede ser nil (sin base de datos).
func NewInsightsHandler(deps RouterDeps) *InsightsHandler {
	return &InsightsHandler{
		uc:        deps.Insights,
		demo:      deps.Demo,
		pdf:       deps.PDF,
		chart:     deps.Chart,
		narrative: deps.Narrative,
		companies: deps.Companies,
		log:       deps.Log.With().Str("component", "http.insights").Logger(),
	}
}

// GetDemo godoc
// @Summary      Reporte de insights sobre el dataset demo
// @Tags         inventory-insights
// @Produce      json
// @Success      200  {object}  dto.InventoryInsightsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory-insights [get]
func (h *InsightsHandler) GetDemo(c *fiber.Ctx) error {
	report, err := h.uc.Generate(c.UserContext(), h.demo)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// Generate godoc
// @Summary      Reporte de insights sobre un payload
// @Description  Recibe products, inventory y sales (más seasonal_context, feedback_signals y
// @Description  trend_signals opcionales). Cuerpo vacío o sin tablas principales usa el dataset demo.
// @Tags         inventory-insights
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryInsightsRequest  false  "Tablas de entrada"
// @Success      200   {object}  dto.InventoryInsightsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory-insights [post]
func (h *InsightsHandler) Generate(c *fiber.Ctx) error {
	report, err := h.fromBody(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// GenerateText godoc
// @Summary      Reporte de insights en texto plano
// @Tags         inventory-insights
// @Accept       json
// @Produce      plain
// @Param        body  body  dto.InventoryInsightsRequest  false  "Tablas de entrada"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory-insights/text [post]
func (h *InsightsHandler) GenerateText(c *fiber.Ctx) error {
	report, err := h.fromBody(c)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(insights.RenderText(report))
}

// GeneratePDF godoc
// @Summary      Reporte de insights en PDF
// @Tags         inventory-insights
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.InventoryInsightsRequest  false  "Tablas de entrada"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory-insights/pdf [post]
func (h *InsightsHandler) GeneratePDF(c *fiber.Ctx) error {
	report, err := h.fromBody(c)
	if err != nil {
		return h.fail(c, err)
	}
	b, err := h.pdf.GenerateInsightsPDF(c.UserContext(), report)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-insights.pdf"`)
	return c.Send(b)
}

// GenerateChart godoc
// @Summary      Libro XLSX con gráfico de ventas totales por producto
// @Tags         inventory-insights
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.InventoryInsightsRequest  false  "Tablas de entrada"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "sin ventas para graficar"
// @Failure      503   {object}  dto.ErrorResponse  "backend de gráficos desactivado"
// @Router       /api/inventory-insights/chart [post]
func (h *InsightsHandler) GenerateChart(c *fiber.Ctx) error {
	report, err := h.fromBody(c)
	if err != nil {
		return h.fail(c, err)
	}
	b, err := h.chart.RenderSalesChart(c.UserContext(), report)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales-chart.xlsx"`)
	return c.Send(b)
}

// Narrative godoc
// @Summary      Resumen ejecutivo del reporte redactado con IA
// @Description  Requiere rol admin o analyst. Timeout interno de 10 s y límite de solicitudes por usuario.
// @Tags         inventory-insights
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryInsightsRequest  false  "Tablas de entrada"
// @Success      200   {object}  dto.InsightsNarrativeDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory-insights/narrative [post]
func (h *InsightsHandler) Narrative(c *fiber.Ctx) error {
	report, err := h.fromBody(c)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.narrative.Explain(c.UserContext(), report)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Company godoc
// @Summary      Reporte de insights con los datos de la empresa del token
// @Tags         inventory-insights
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryInsightsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory-insights/company [get]
func (h *InsightsHandler) Company(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	report, err := h.uc.Generate(c.UserContext(), insights.CompanySource(h.companies, companyID))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

func (h *InsightsHandler) fromBody(c *fiber.Ctx) (*dto.InventoryInsightsDTO, error) {
	return h.uc.Generate(c.UserContext(), insights.NewPayloadSource(c.Body(), h.demo))
}

// fail traduce errores de dominio a respuestas HTTP.
func (h *InsightsHandler) fail(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno generando el reporte"
	switch {
	case errors.Is(err, domain.ErrMissingColumns), errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "empresa no encontrada"
	case errors.Is(err, domain.ErrNoChartData):
		status, code, msg = fiber.StatusUnprocessableEntity, "NO_DATA", "no hay ventas para graficar"
	case errors.Is(err, domain.ErrChartUnavailable):
		status, code, msg = fiber.StatusServiceUnavailable, "CHART_UNAVAILABLE", "el backend de gráficos está desactivado"
	case errors.Is(err, domain.ErrAIUnavailable):
		status, code, msg = fiber.StatusServiceUnavailable, "AI_UNAVAILABLE", "el servicio de narrativa IA no está configurado"
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = fiber.StatusRequestTimeout, "TIMEOUT", "la operación tardó demasiado; intenta de nuevo"
	}
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("fallo en insights")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
