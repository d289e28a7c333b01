package analytics

import (
	"github.com/shopspring/decimal"

	"pet-clinic-analytics/internal/domain/clinic"
)

// PriceTable es el precio proxy por categoría de agendamiento.
// No hay facturación real en el almacén: estos valores son estimaciones.
type PriceTable map[clinic.EventCategory]decimal.Decimal

func DefaultPriceTable() PriceTable {
	return PriceTable{
		clinic.CategoryEncounter:  decimal.NewFromInt(80),
		clinic.CategoryVaccine:    decimal.NewFromInt(100),
		clinic.CategoryExam:       decimal.NewFromInt(150),
		clinic.CategoryMedication: decimal.NewFromInt(60),
		clinic.CategoryOther:      decimal.NewFromInt(120),
	}
}

// Price devuelve 0 para categorías sin precio.
func (t PriceTable) Price(c clinic.EventCategory) decimal.Decimal {
	if p, ok := t[c]; ok {
		return p
	}
	return decimal.Zero
}

// ProxyCalculator deriva ingresos estimados a partir de cantidades.
type ProxyCalculator struct {
	prices         PriceTable
	encounterPrice decimal.Decimal
}

func NewProxyCalculator(prices PriceTable, encounterPrice decimal.Decimal) ProxyCalculator {
	return ProxyCalculator{prices: prices, encounterPrice: encounterPrice}
}

// ProcedureRevenue = cantidad x precio de la categoría.
func (c ProxyCalculator) ProcedureRevenue(cat clinic.EventCategory, qty int) decimal.Decimal {
	return c.prices.Price(cat).Mul(decimal.NewFromInt(int64(qty)))
}

// EncounterRevenue = consultas realizadas x precio por consulta.
func (c ProxyCalculator) EncounterRevenue(completed int) decimal.Decimal {
	return c.encounterPrice.Mul(decimal.NewFromInt(int64(completed)))
}

// AverageTicket = revenue / qty con 2 decimales, 0 si qty es 0.
func (c ProxyCalculator) AverageTicket(revenue decimal.Decimal, qty int) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(qty))).Round(2)
}

// Percent = part/total*100 con 1 decimal, 0 si total es 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
	return toFloat64(p)
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
