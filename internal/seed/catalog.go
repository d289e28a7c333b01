package seed

import "pet-clinic-analytics/internal/domain/clinic"

var firstNames = []string{
	"Carlos", "Maria", "João", "Ana", "Roberto", "Fernanda", "Lucas", "Juliana",
	"Pedro", "Camila", "Rafael", "Beatriz", "Gustavo", "Larissa", "Marcos", "Patrícia",
}

var lastNames = []string{
	"Silva", "Oliveira", "Santos", "Pereira", "Costa", "Souza", "Almeida", "Lima",
	"Ferreira", "Rodrigues", "Gomes", "Martins",
}

var cities = []string{
	"São Paulo - SP", "Rio de Janeiro - RJ", "Belo Horizonte - MG", "Curitiba - PR", "Porto Alegre - RS",
}

var petNames = []string{
	"Rex", "Mia", "Pingo", "Luna", "Thor", "Bolt", "Nina", "Fred", "Mel", "Simba",
	"Lola", "Toby", "Amora", "Max", "Kiara", "Bidu",
}

type speciesProfile struct {
	species   clinic.Species
	weight    int // peso relativo en el sorteo
	breeds    []string
	minWeight float64
	maxWeight float64
}

var speciesProfiles = []speciesProfile{
	{clinic.SpeciesDog, 50, []string{"Labrador", "Poodle", "Pastor Alemão", "Golden Retriever", "Vira-lata", "Shih Tzu"}, 4, 38},
	{clinic.SpeciesCat, 35, []string{"Siamês", "Persa", "Maine Coon", "Vira-lata"}, 2.5, 7},
	{clinic.SpeciesBird, 6, []string{"Calopsita", "Periquito", ""}, 0.05, 0.4},
	{clinic.SpeciesRodent, 5, []string{"Hamster", "Porquinho-da-índia"}, 0.1, 1.2},
	{clinic.SpeciesReptile, 2, []string{"Jabuti", ""}, 0.5, 4},
	{clinic.SpeciesOther, 2, []string{""}, 0.2, 3},
}

var reasons = []string{
	"Checkup anual",
	"Vacinação anual",
	"Avaliação de rotina",
	"Vômitos frequentes",
	"Problema na pata traseira",
	"Consulta dermatológica",
	"Retorno pós-cirúrgico",
	"Diarreia",
}

var medications = []clinic.Medication{
	{Name: "Antibiótico Canino", Description: "Antibiótico de amplo espectro para cães", Instructions: "Administrar com alimento."},
	{Name: "Vermífugo Felino", Description: "Vermífugo para gatos de todas as idades", Instructions: "Dose única, repetir em 15 dias."},
	{Name: "Anti-inflamatório Pet", Description: "Anti-inflamatório para dores e inflamações", Instructions: "Não usar por mais de 5 dias."},
	{Name: "Vitamina Pet", Description: "Suplemento vitamínico", Instructions: "Misturar à ração."},
	{Name: "Shampoo Medicinal", Description: "Shampoo para dermatites", Instructions: "Deixar agir por 5 minutos."},
}

var eventTitles = map[clinic.EventCategory][]string{
	clinic.CategoryEncounter:  {"Consulta de retorno", "Avaliação de rotina"},
	clinic.CategoryVaccine:    {"Vacina Antirrábica", "Vacina V4", "Vacina V10"},
	clinic.CategoryExam:       {"Exame de Sangue", "Ultrassom", "Raio-X"},
	clinic.CategoryMedication: {"Aplicação de Vermífugo", "Aplicação de Antipulgas"},
	clinic.CategoryOther:      {"Tosa e Banho"},
}

var frequencies = []clinic.Frequency{
	clinic.FrequencyOnceDaily,
	clinic.FrequencyTwiceDaily,
	clinic.FrequencyThriceDaily,
	clinic.FrequencyWeekly,
}
