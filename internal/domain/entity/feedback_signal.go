package entity

// FeedbackSignal conteos de opiniones de clientes para un producto.
// Las filas duplicadas de un mismo producto se suman.
type FeedbackSignal struct {
	ProductID string
	Positive  int
	Negative  int
	Neutral   int
}
