package analytics

// Payload es el resultado de una métrica. Cada tipo serializa a un objeto
// plano; los números nunca son null y las listas vacías salen como [].
type Payload interface {
	Kind() Kind
}

type OverviewPayload struct {
	Months []string `json:"meses"`
	Counts []int    `json:"consultas_mensais"`
}

func (OverviewPayload) Kind() Kind { return KindOverview }

type PeriodCountsPayload struct {
	Counts    []int    `json:"consultas_periodo"`
	Labels    []string `json:"datas_periodo"`
	TotalDays int      `json:"total_dias"`
}

func (PeriodCountsPayload) Kind() Kind { return KindPeriodCounts }

type SpeciesCount struct {
	Species string `json:"especie"`
	Total   int    `json:"total"`
}

type BreedCount struct {
	Breed string `json:"raca"`
	Total int    `json:"total"`
}

type SpeciesBreedsPayload struct {
	Species []SpeciesCount `json:"especies"`
	Breeds  []BreedCount   `json:"racas"`
}

func (SpeciesBreedsPayload) Kind() Kind { return KindSpeciesBreeds }

type VetPerformance struct {
	Practitioner   string  `json:"veterinario"`
	Total          int     `json:"total_consultas"`
	Completed      int     `json:"consultas_realizadas"`
	Scheduled      int     `json:"consultas_agendadas"`
	CompletionRate float64 `json:"taxa_realizacao"`
}

type VetPerformancePayload struct {
	Practitioners []VetPerformance `json:"veterinarios"`
}

func (VetPerformancePayload) Kind() Kind { return KindVetPerformance }

type CategoryCount struct {
	Category string `json:"tipo"`
	Total    int    `json:"total"`
}

type StatusCount struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type ProcedureTypesPayload struct {
	Categories []CategoryCount `json:"tipos"`
	Statuses   []StatusCount   `json:"status"`
}

func (ProcedureTypesPayload) Kind() Kind { return KindProcedureTypes }

type ProcedureRevenueRow struct {
	Procedure     string  `json:"procedimento"`
	Quantity      int     `json:"quantidade"`
	Revenue       float64 `json:"faturamento"`
	AverageTicket float64 `json:"ticket_medio"`
}

type ProcedureRevenuePayload struct {
	Labels     []string              `json:"labels"`
	Revenues   []float64             `json:"faturamentos"`
	Quantities []int                 `json:"quantidades"`
	Table      []ProcedureRevenueRow `json:"tabela"`
}

func (ProcedureRevenuePayload) Kind() Kind { return KindProcedureRevenue }

type VetRevenuePayload struct {
	Labels   []string  `json:"labels"`
	Revenues []float64 `json:"faturamentos"`
}

func (VetRevenuePayload) Kind() Kind { return KindVetRevenue }

// CustomerValuePayload: Values viene en orden alto, medio, bajo.
type CustomerValuePayload struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

func (CustomerValuePayload) Kind() Kind { return KindCustomerValue }

type RevenueTrendPayload struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"valores"`
}

func (RevenueTrendPayload) Kind() Kind { return KindRevenueTrend }

type OwnerPets struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
	Pets int    `json:"total_pets"`
}

type OwnerEncounters struct {
	ID         string `json:"id"`
	Name       string `json:"nome"`
	Encounters int    `json:"total_consultas"`
	Pets       int    `json:"total_pets"`
}

type LoyaltyPayload struct {
	MultiPetOwners       []OwnerPets       `json:"donos_multiplos_pets"`
	TopOwners            []OwnerEncounters `json:"donos_consultas"`
	ReturnRate           float64           `json:"taxa_retorno"`
	OwnersWithEncounters int               `json:"total_donos_consultas"`
	ReturningOwners      int               `json:"donos_retorno"`
}

func (LoyaltyPayload) Kind() Kind { return KindLoyalty }

type AgeBandCount struct {
	Band  string `json:"faixa"`
	Total int    `json:"total"`
}

type SpeciesWeight struct {
	Species       string  `json:"especie"`
	AverageWeight float64 `json:"peso_medio"`
}

type ReasonCount struct {
	Reason string `json:"motivo"`
	Total  int    `json:"total"`
}

type AnimalHealthPayload struct {
	AgeBands []AgeBandCount  `json:"pets_idade"`
	Weights  []SpeciesWeight `json:"pets_peso"`
	Reasons  []ReasonCount   `json:"motivos_consultas"`
}

func (AnimalHealthPayload) Kind() Kind { return KindAnimalHealth }

type SummaryPayload struct {
	Owners              int `json:"total_donos"`
	Pets                int `json:"total_pets"`
	Encounters          int `json:"total_consultas"`
	EncountersThisMonth int `json:"consultas_mes"`
	EncountersThisYear  int `json:"consultas_ano"`
	Scheduled           int `json:"consultas_agendadas"`
	Completed           int `json:"consultas_realizadas"`
	Cancelled           int `json:"consultas_canceladas"`
	PendingEvents       int `json:"agendamentos_pendentes"`
}

func (SummaryPayload) Kind() Kind { return KindSummary }
