package clinic

import "time"

// Owner es el tutor responsable de una o más mascotas.
type Owner struct {
	ID      string
	Name    string
	TaxID   string // CPF, único
	Phone   string
	Email   string
	Address string

	CreatedAt time.Time
}

// Pet representa el perfil básico de una mascota registrada en la clínica.
type Pet struct {
	ID      string
	OwnerID string

	Name    string
	Species Species
	Breed   string // vacío cuando no se informó
	Sex     Sex

	BirthDate *time.Time // fecha civil (medianoche UTC)
	WeightKg  *float64   // nil = sin pesaje registrado

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Encounter es una consulta clínica de una mascota.
type Encounter struct {
	ID    string
	PetID string

	Practitioner string
	OccurredAt   time.Time
	Reason       string
	Diagnosis    string
	Treatment    string
	Status       EncounterStatus

	CreatedAt time.Time
}

// ScheduledEvent es una actividad planificada (vacuna, examen, medicación...)
// distinta de la consulta clínica.
type ScheduledEvent struct {
	ID    string
	PetID string

	Practitioner string
	Category     EventCategory
	Title        string
	Description  string
	ScheduledAt  time.Time
	Status       EventStatus
	Completed    bool
	Notify       bool

	CreatedAt time.Time
}

type Medication struct {
	ID           string
	Name         string
	Description  string
	Instructions string
}

// Prescription pertenece a una consulta.
type Prescription struct {
	ID           string
	EncounterID  string
	MedicationID string

	Dosage       string
	Frequency    Frequency
	DurationDays int
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
}

// Dataset agrupa las colecciones completas del almacén.
// Se usa para sembrar stores (memoria o SQL) con datos de demo.
type Dataset struct {
	Owners          []Owner
	Pets            []Pet
	Encounters      []Encounter
	ScheduledEvents []ScheduledEvent
	Medications     []Medication
	Prescriptions   []Prescription
}
