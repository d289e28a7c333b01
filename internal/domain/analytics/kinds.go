package analytics

import "strings"

// Kind es el conjunto cerrado de métricas del dashboard.
type Kind int

const (
	KindOverview Kind = iota + 1
	KindPeriodCounts
	KindSpeciesBreeds
	KindVetPerformance
	KindProcedureTypes
	KindProcedureRevenue
	KindVetRevenue
	KindCustomerValue
	KindRevenueTrend
	KindLoyalty
	KindAnimalHealth
	KindSummary
)

// Nombres en el wire: son los valores de `type=` que ya usa el front.
var kindNames = map[Kind]string{
	KindOverview:         "overview",
	KindPeriodCounts:     "consultas_periodo",
	KindSpeciesBreeds:    "especies_racas",
	KindVetPerformance:   "veterinarios_performance",
	KindProcedureTypes:   "procedimentos_tipos",
	KindProcedureRevenue: "procedimentos_financeiro",
	KindVetRevenue:       "veterinarios_financeiro",
	KindCustomerValue:    "clientes_valor",
	KindRevenueTrend:     "tendencias_financeiro",
	KindLoyalty:          "clientes_fidelizacao",
	KindAnimalHealth:     "saude_animal",
	KindSummary:          "resumo",
}

func AllKinds() []Kind {
	return []Kind{
		KindOverview,
		KindPeriodCounts,
		KindSpeciesBreeds,
		KindVetPerformance,
		KindProcedureTypes,
		KindProcedureRevenue,
		KindVetRevenue,
		KindCustomerValue,
		KindRevenueTrend,
		KindLoyalty,
		KindAnimalHealth,
		KindSummary,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind traduce el nombre del wire. Nombres desconocidos devuelven
// un *MetricError con ErrUnknownMetric.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, &MetricError{Metric: name, Err: ErrUnknownMetric}
}
