package analytics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"pet-clinic-analytics/internal/domain/clinic"
)

// Config son los supuestos de negocio del dashboard. Precios y umbrales
// son datos, no lógica: se inyectan desde la configuración del servicio.
type Config struct {
	Location *time.Location
	Locale   Locale

	// Precio proxy por categoría de agendamiento.
	ProcedurePrices PriceTable
	// Precio proxy por consulta REALIZADA.
	EncounterPrice decimal.Decimal

	// Segmentación de clientes por total de consultas.
	HighValueMin   int
	MediumValueMin int

	TopN           int
	OverviewMonths int
	DefaultDays    int
	// Ventana más larga que acepta consultas_periodo.
	MaxDays int

	// Edad aproximada: floor(días / DaysPerYear), sin ajuste bisiesto.
	DaysPerYear   int
	AgeBandYears  int
	AgeBands      int
	WeightSpecies []clinic.Species

	BatchConcurrency int
}

func DefaultConfig() Config {
	return Config{
		Location:         time.UTC,
		Locale:           MatchLocale("pt-BR"),
		ProcedurePrices:  DefaultPriceTable(),
		EncounterPrice:   decimal.NewFromInt(150),
		HighValueMin:     5,
		MediumValueMin:   2,
		TopN:             10,
		OverviewMonths:   6,
		DefaultDays:      7,
		MaxDays:          DefaultMaxDays,
		DaysPerYear:      365,
		AgeBandYears:     2,
		AgeBands:         5,
		WeightSpecies:    []clinic.Species{clinic.SpeciesDog, clinic.SpeciesCat},
		BatchConcurrency: 4,
	}
}

func (c Config) Validate() error {
	if c.Location == nil {
		return errors.New("analytics: location required")
	}
	if c.HighValueMin <= 0 || c.MediumValueMin <= 0 {
		return errors.New("analytics: value tier thresholds must be positive")
	}
	if c.MediumValueMin > c.HighValueMin {
		return errors.New("analytics: medium tier threshold above high tier threshold")
	}
	if c.TopN <= 0 || c.OverviewMonths <= 0 || c.DefaultDays <= 0 {
		return errors.New("analytics: top_n, overview_months and default_days must be positive")
	}
	if c.MaxDays < c.DefaultDays {
		return errors.New("analytics: max_days must be at least default_days")
	}
	if c.DaysPerYear <= 0 || c.AgeBandYears <= 0 || c.AgeBands <= 0 {
		return errors.New("analytics: age band settings must be positive")
	}
	if c.EncounterPrice.IsNegative() {
		return errors.New("analytics: encounter price must not be negative")
	}
	for _, cat := range clinic.EventCategories() {
		if _, ok := c.ProcedurePrices[cat]; !ok {
			return errors.New("analytics: missing price for " + string(cat))
		}
	}
	for cat, p := range c.ProcedurePrices {
		if p.IsNegative() {
			return errors.New("analytics: negative price for " + string(cat))
		}
	}
	return nil
}
