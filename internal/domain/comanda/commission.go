package comanda

import (
	"math"
	"sort"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// Allocate distribui a comissão agregada de cada categoria (serviços e
// produtos) proporcionalmente ao total_price de cada item.
//
// A conta é feita em centavos com correção de maior resto, então a soma
// dos valores por item bate exatamente com o total da categoria. Itens com
// commission_value já definido são preservados, salvo force=true — rodar
// de novo sobre uma comanda já alocada e inalterada reproduz os mesmos
// valores.
func Allocate(co *models.Comanda, items []models.ComandaItem, force bool) {
	var services, products []*models.ComandaItem
	for i := range items {
		it := &items[i]
		switch {
		case it.IsService():
			services = append(services, it)
		case it.IsProduct():
			products = append(products, it)
		}
	}

	allocateCategory(services, co.TotalServicesCommission, force)
	allocateCategory(products, co.TotalProductsCommission, force)

	co.TotalCommission = Round2(co.TotalServicesCommission + co.TotalProductsCommission)
}

func allocateCategory(items []*models.ComandaItem, categoryTotal float64, force bool) {
	if len(items) == 0 {
		return
	}

	var subtotalCents int64
	priceCents := make([]int64, len(items))
	for i, it := range items {
		priceCents[i] = cents(it.TotalPrice)
		subtotalCents += priceCents[i]
	}

	// Categoria zerada: sem divisão, todo mundo fica com comissão 0.
	if subtotalCents == 0 {
		for _, it := range items {
			setCommission(it, 0, 0, force)
		}
		return
	}

	totalCents := cents(categoryTotal)

	type share struct {
		idx  int
		base int64
		rem  int64
	}

	shares := make([]share, len(items))
	var assigned int64
	for i := range items {
		raw := totalCents * priceCents[i]
		shares[i] = share{
			idx:  i,
			base: raw / subtotalCents,
			rem:  raw % subtotalCents,
		}
		assigned += shares[i].base
	}

	// Centavos que sobraram do arredondamento para baixo vão para os
	// itens de maior resto; empate resolve para o último item.
	leftover := totalCents - assigned
	sort.SliceStable(shares, func(a, b int) bool {
		if shares[a].rem != shares[b].rem {
			return shares[a].rem > shares[b].rem
		}
		return shares[a].idx > shares[b].idx
	})
	for i := int64(0); i < leftover && int(i) < len(shares); i++ {
		shares[i].base++
	}

	for _, s := range shares {
		it := items[s.idx]
		value := float64(s.base) / 100

		var pct float64
		if it.TotalPrice > 0 {
			pct = Round2(value / it.TotalPrice * 100)
		}

		setCommission(it, value, pct, force)
	}
}

func setCommission(it *models.ComandaItem, value, pct float64, force bool) {
	if it.CommissionValue != nil && !force {
		return
	}
	it.CommissionValue = &value
	it.CommissionPercentage = &pct
}

// ClearCommission desfaz a alocação (usado na reabertura da comanda).
func ClearCommission(items []models.ComandaItem) {
	for i := range items {
		items[i].CommissionValue = nil
		items[i].CommissionPercentage = nil
	}
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
