package clinic

// Species define las especies registradas por la clínica.
// @Enum CACHORRO, GATO, AVE, ROEDOR, REPTIL, OUTRO
type Species string

const (
	SpeciesDog     Species = "CACHORRO"
	SpeciesCat     Species = "GATO"
	SpeciesBird    Species = "AVE"
	SpeciesRodent  Species = "ROEDOR"
	SpeciesReptile Species = "REPTIL"
	SpeciesOther   Species = "OUTRO"
)

// Sex define el sexo de la mascota.
// @Enum M, F
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// EncounterStatus es el estado de una consulta clínica.
// Las transiciones las maneja el sistema de registros, nunca este servicio.
type EncounterStatus string

const (
	EncounterScheduled EncounterStatus = "AGENDADA"
	EncounterConfirmed EncounterStatus = "CONFIRMADA"
	EncounterCompleted EncounterStatus = "REALIZADA"
	EncounterCancelled EncounterStatus = "CANCELADA"
)

// EventCategory es el tipo de un agendamiento.
type EventCategory string

const (
	CategoryEncounter  EventCategory = "CONSULTA"
	CategoryMedication EventCategory = "MEDICACAO"
	CategoryVaccine    EventCategory = "VACINA"
	CategoryExam       EventCategory = "EXAME"
	CategoryOther      EventCategory = "OUTRO"
)

// EventCategories devuelve las categorías conocidas en orden de presentación.
func EventCategories() []EventCategory {
	return []EventCategory{
		CategoryEncounter,
		CategoryVaccine,
		CategoryExam,
		CategoryMedication,
		CategoryOther,
	}
}

type EventStatus string

const (
	EventPending   EventStatus = "PENDENTE"
	EventConfirmed EventStatus = "CONFIRMADO"
	EventCancelled EventStatus = "CANCELADO"
)

// Frequency de una prescripción.
type Frequency string

const (
	FrequencyOnceDaily   Frequency = "1X"
	FrequencyTwiceDaily  Frequency = "2X"
	FrequencyThriceDaily Frequency = "3X"
	FrequencyFourDaily   Frequency = "4X"
	FrequencyWeekly      Frequency = "SEMANA"
	FrequencyBiweekly    Frequency = "QUINZENA"
	FrequencyMonthly     Frequency = "MES"
	FrequencyOther       Frequency = "OUTRO"
)
