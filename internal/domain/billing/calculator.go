package billing

import (
	"math"
	"strconv"
)

// DefaultTaxRate es la tasa usada cuando no se configura TAX_RATE.
const DefaultTaxRate = 0.08

// LineItem es una fila facturable.
type LineItem struct {
	ServiceID   *int64
	Description string
	Quantity    float64
	Price       float64
}

// Totals guarda los valores sin redondear. Redondear solo al presentar (Round2).
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

type Calculator struct {
	Rate float64
}

func NewCalculator(rate float64) Calculator {
	return Calculator{Rate: rate}
}

func LineTotal(it LineItem) float64 {
	return it.Quantity * it.Price
}

// Subtotal suma todas las filas, sin clamping de cantidades/precios negativos.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += LineTotal(it)
	}
	return sum
}

func (c Calculator) Tax(items []LineItem) float64 {
	return Subtotal(items) * c.Rate
}

func (c Calculator) Total(items []LineItem) float64 {
	return Subtotal(items) + c.Tax(items)
}

func (c Calculator) Compute(items []LineItem) Totals {
	sub := Subtotal(items)
	tax := sub * c.Rate
	return Totals{
		Subtotal: sub,
		Tax:      tax,
		Total:    sub + tax,
	}
}

// Round2 redondea a 2 decimales (solo presentación).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Display formatea un monto con 2 decimales.
func Display(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
