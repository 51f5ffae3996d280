package comanda

import (
	"math"

	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemTotal calcula unit_price × quantity − discount. Nunca negativo.
func ItemTotal(unitPrice float64, quantity int, discount float64) (float64, error) {
	if quantity <= 0 {
		return 0, httperr.Validation("invalid_quantity", "Quantidade deve ser maior que zero.")
	}
	if discount < 0 {
		return 0, httperr.Validation("invalid_discount", "Desconto não pode ser negativo.")
	}

	total := Round2(unitPrice*float64(quantity) - discount)
	if total < 0 {
		return 0, httperr.Validation("discount_exceeds_total", "Desconto maior que o valor do item.")
	}
	return total, nil
}

// RecomputeTotals refaz subtotal, imposto e total da comanda a partir dos
// itens atuais. discount_amount da comanda é preservado.
func RecomputeTotals(co *models.Comanda, items []models.ComandaItem, taxRate float64) {
	var subtotal float64
	for _, it := range items {
		subtotal += it.TotalPrice
	}

	co.Subtotal = Round2(subtotal)
	co.TaxAmount = Round2(subtotal * taxRate)
	co.TotalAmount = Round2(co.Subtotal + co.TaxAmount - co.DiscountAmount)
}
