package entity

// SeasonalContext describe el contexto estacional de un mes: modificador de demanda,
// clima y festividad. Los campos puntero son opcionales en la entrada.
type SeasonalContext struct {
	Month          *int     // 1–12; nil si no viene o no es numérico
	DemandModifier *float64 // nil si no viene o no es numérico
	Weather        *string
	Festival       *string
}
