package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/usecase"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain"
)

// narratorStub guarda el resumen recibido y devuelve una respuesta fija.
type narratorStub struct {
	digest   string
	deadline bool
	resp     *dto.InsightsNarrativeDTO
	err      error
}

func (s *narratorStub) NarrateInsights(ctx context.Context, digest string) (*dto.InsightsNarrativeDTO, error) {
	s.digest = digest
	_, s.deadline = ctx.Deadline()
	return s.resp, s.err
}

func sampleReport() *dto.InventoryInsightsDTO {
	days := dto.JSONFloat(3)
	return &dto.InventoryInsightsDTO{
		StockStatus: []dto.StockStatusDTO{
			{ProductID: "1", StockStatus: "CRITICAL", DaysUntilStockOut: &days},
			{ProductID: "2", StockStatus: "HEALTHY"},
		},
		PriceRecommendations: []dto.PriceRecommendationDTO{
			{ProductID: "1", Adjustment: 0.04},
			{ProductID: "2", Adjustment: 0},
		},
		GeneratedAt: "2026-03-15T10:00:00Z",
	}
}

func TestNarrative_EnviaSoloLoAccionable(t *testing.T) {
	stub := &narratorStub{resp: &dto.InsightsNarrativeDTO{Headline: "ok", RiskLevel: "HIGH"}}
	uc := usecase.NewNarrativeUseCase(stub)

	got, err := uc.Explain(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, stub.deadline, "la llamada al LLM debe llevar timeout")
	assert.Equal(t, "high", got.RiskLevel)
	assert.NotNil(t, got.Highlights)

	var digest map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stub.digest), &digest))

	var alerts []dto.StockStatusDTO
	require.NoError(t, json.Unmarshal(digest["stock_alerts"], &alerts))
	require.Len(t, alerts, 1, "solo alertas CRITICAL/WATCH")
	assert.Equal(t, "1", alerts[0].ProductID)

	var moves []dto.PriceRecommendationDTO
	require.NoError(t, json.Unmarshal(digest["price_changes"], &moves))
	require.Len(t, moves, 1, "solo ajustes distintos de cero")
}

func TestNarrative_RiesgoDerivadoSiElModeloNoLoDa(t *testing.T) {
	report := sampleReport()
	report.StockStatus[0].StockStatus = "WATCH"
	stub := &narratorStub{resp: &dto.InsightsNarrativeDTO{
		RiskLevel:  "unknown",
		Highlights: []string{"a", "b", "c", "d", "e", "f", "g"},
	}}

	got, err := usecase.NewNarrativeUseCase(stub).Explain(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, "medium", got.RiskLevel)
	assert.Len(t, got.Highlights, 5)
}

func TestNarrative_Errores(t *testing.T) {
	_, err := usecase.NewNarrativeUseCase(&narratorStub{}).Explain(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = usecase.NewNarrativeUseCase(nil).Explain(context.Background(), sampleReport())
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)

	stub := &narratorStub{err: fmt.Errorf("AI: %w", domain.ErrAIUnavailable)}
	_, err = usecase.NewNarrativeUseCase(stub).Explain(context.Background(), sampleReport())
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)

	stub = &narratorStub{err: context.DeadlineExceeded}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, err = usecase.NewNarrativeUseCase(stub).Explain(ctx, sampleReport())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
