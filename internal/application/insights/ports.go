package insights

import (
	"context"

	"github.com/Prathamesh0412/Sentinel-Ops/internal/application/dto"
	"github.com/Prathamesh0412/Sentinel-Ops/internal/domain/entity"
)

// DatasetSource provee las tablas de entrada de un cálculo. El pipeline no distingue si vienen
// de un payload, del dataset demo o de la base de datos.
type DatasetSource interface {
	LoadDataset(ctx context.Context) (*entity.Dataset, error)
}

// DatasetSourceFunc adapta una función al puerto DatasetSource.
type DatasetSourceFunc func(ctx context.Context) (*entity.Dataset, error)

// LoadDataset implementa DatasetSource.
func (f DatasetSourceFunc) LoadDataset(ctx context.Context) (*entity.Dataset, error) { return f(ctx) }

// CompanyDatasetLoader carga el dataset de una empresa desde almacenamiento persistente.
type CompanyDatasetLoader interface {
	LoadCompanyDataset(ctx context.Context, companyID string) (*entity.Dataset, error)
}

// ReportPDFGenerator genera la representación PDF de un reporte.
type ReportPDFGenerator interface {
	GenerateInsightsPDF(ctx context.Context, report *dto.InventoryInsightsDTO) ([]byte, error)
}

// SalesChartRenderer genera el gráfico de barras de ventas totales por producto.
// Devuelve domain.ErrChartUnavailable si no hay backend de gráficos y
// domain.ErrNoChartData si el reporte no tiene estadísticas de ventas.
type SalesChartRenderer interface {
	RenderSalesChart(ctx context.Context, report *dto.InventoryInsightsDTO) ([]byte, error)
}

// CompanySource adapta un CompanyDatasetLoader a DatasetSource para una empresa concreta.
func CompanySource(loader CompanyDatasetLoader, companyID string) DatasetSource {
	return DatasetSourceFunc(func(ctx context.Context) (*entity.Dataset, error) {
		return loader.LoadCompanyDataset(ctx, companyID)
	})
}
