package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/insights"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/usecase"
	"github.com/Prathamesh0412/Sentinel-Ops/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Insights         *insights.UseCase
	Demo             insights.DatasetSource
	PDF              insights.ReportPDFGenerator
	Chart            insights.SalesChartRenderer
	Narrative        *usecase.NarrativeUseCase
	NarrativeLimiter *RateLimiter
	Companies        insights.CompanyDatasetLoader // nil sin base de datos: /company no se registra
	JWTSecret        string
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewInsightsHandler(deps)
	api := app.Group("/api")

	// Payload y demo (público)
	ins := api.Group("/inventory-insights")
	ins.Get("/", h.GetDemo)
	ins.Post("/", h.Generate)
	ins.Post("/text", h.GenerateText)
	ins.Post("/pdf", h.GeneratePDF)
	ins.Post("/chart", h.GenerateChart)

	// Narrativa IA (protegido + rate limit)
	narrative := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin, jwt.RoleAnalyst)}
	if deps.NarrativeLimiter != nil {
		narrative = append(narrative, deps.NarrativeLimiter.Middleware())
	}
	ins.Post("/narrative", append(narrative, h.Narrative)...)

	if deps.Companies != nil {
		ins.Get("/company", AuthMiddleware(deps.JWTSecret), h.Company)
	}
}
