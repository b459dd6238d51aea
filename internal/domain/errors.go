package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrMissingColumns   = errors.New("columnas requeridas ausentes")
	ErrChartUnavailable = errors.New("backend de gráficos no disponible")
	ErrNoChartData      = errors.New("sin datos de ventas para graficar")
	ErrAIUnavailable    = errors.New("servicio de IA no configurado")
)
