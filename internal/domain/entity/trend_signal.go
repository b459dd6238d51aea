package entity

// TrendOverride etiqueta de tendencia externa que reemplaza la calculada para un producto.
type TrendOverride struct {
	ProductID  string
	TrendLabel string // se normaliza a mayúsculas al fusionar
}
