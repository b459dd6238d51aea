package ports

import (
	"context"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
)

// InsightsNarrator puerto de salida hacia el LLM que redacta el resumen ejecutivo de un reporte.
// Cualquier adaptador (Anthropic, mock) debe implementarlo; la aplicación solo conoce este contrato.
type InsightsNarrator interface {
	// NarrateInsights recibe un resumen compacto del reporte (JSON) y devuelve titular,
	// puntos destacados y nivel de riesgo. El contexto debe llevar timeout.
	// Si el adaptador no está configurado devuelve un error que envuelve domain.ErrAIUnavailable.
	NarrateInsights(ctx context.Context, reportDigest string) (*dto.InsightsNarrativeDTO, error)
}
