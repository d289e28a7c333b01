package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pet-clinic-analytics/internal/domain/clinic"
)

type OwnerModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;index"`
	TaxID     string `gorm:"size:14;uniqueIndex"`
	Phone     string `gorm:"size:20"`
	Email     string `gorm:"size:254"`
	Address   string
	CreatedAt time.Time
}

func (OwnerModel) TableName() string { return "owners" }

type PetModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	OwnerID   string `gorm:"size:36;not null;index"`
	Name      string `gorm:"size:100;not null"`
	Species   string `gorm:"size:10;not null;index"`
	Breed     string `gorm:"size:50"`
	Sex       string `gorm:"size:1"`
	BirthDate *time.Time // medianoche UTC de la fecha civil
	WeightKg  *float64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PetModel) TableName() string { return "pets" }

type EncounterModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	PetID        string    `gorm:"size:36;not null;index"`
	Practitioner string    `gorm:"size:50;not null;index"`
	OccurredAt   time.Time `gorm:"not null;index"`
	Reason       string    `gorm:"not null"`
	Diagnosis    string
	Treatment    string
	Status       string `gorm:"size:20;not null;index"`
	CreatedAt    time.Time
}

func (EncounterModel) TableName() string { return "encounters" }

type ScheduledEventModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	PetID        string `gorm:"size:36;not null;index"`
	Practitioner string `gorm:"size:50"`
	Category     string `gorm:"size:20;not null;index"`
	Title        string `gorm:"size:200"`
	Description  string
	ScheduledAt  time.Time `gorm:"not null;index"`
	Status       string    `gorm:"size:20;not null;index"`
	Completed    bool
	Notify       bool
	CreatedAt    time.Time
}

func (ScheduledEventModel) TableName() string { return "scheduled_events" }

type MedicationModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:100;not null"`
	Description  string
	Instructions string
}

func (MedicationModel) TableName() string { return "medications" }

type PrescriptionModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	EncounterID  string `gorm:"size:36;not null;index"`
	MedicationID string `gorm:"size:36;not null;index"`
	Dosage       string `gorm:"size:100"`
	Frequency    string `gorm:"size:20"`
	DurationDays int
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
}

func (PrescriptionModel) TableName() string { return "prescriptions" }

// AutoMigrate crea/actualiza las tablas. Sólo para dev y tests: el esquema
// productivo lo administra el sistema de registros.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&OwnerModel{},
		&PetModel{},
		&EncounterModel{},
		&ScheduledEventModel{},
		&MedicationModel{},
		&PrescriptionModel{},
	)
}

// Import inserta un dataset completo en una sola transacción.
func Import(ctx context.Context, db *gorm.DB, ds clinic.Dataset) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name  string
			value any
			n     int
		}{
			{"owners", toOwnerModels(ds.Owners), len(ds.Owners)},
			{"pets", toPetModels(ds.Pets), len(ds.Pets)},
			{"encounters", toEncounterModels(ds.Encounters), len(ds.Encounters)},
			{"scheduled events", toScheduledEventModels(ds.ScheduledEvents), len(ds.ScheduledEvents)},
			{"medications", toMedicationModels(ds.Medications), len(ds.Medications)},
			{"prescriptions", toPrescriptionModels(ds.Prescriptions), len(ds.Prescriptions)},
		}
		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(s.value, 200).Error; err != nil {
				return fmt.Errorf("import %s: %w", s.name, err)
			}
		}
		return nil
	})
}

func toOwnerModels(in []clinic.Owner) []OwnerModel {
	out := make([]OwnerModel, 0, len(in))
	for _, o := range in {
		out = append(out, OwnerModel{
			ID:        o.ID,
			Name:      o.Name,
			TaxID:     o.TaxID,
			Phone:     o.Phone,
			Email:     o.Email,
			Address:   o.Address,
			CreatedAt: o.CreatedAt.UTC(),
		})
	}
	return out
}

func toPetModels(in []clinic.Pet) []PetModel {
	out := make([]PetModel, 0, len(in))
	for _, p := range in {
		m := PetModel{
			ID:        p.ID,
			OwnerID:   p.OwnerID,
			Name:      p.Name,
			Species:   string(p.Species),
			Breed:     p.Breed,
			Sex:       string(p.Sex),
			WeightKg:  p.WeightKg,
			Notes:     p.Notes,
			CreatedAt: p.CreatedAt.UTC(),
			UpdatedAt: p.UpdatedAt.UTC(),
		}
		if p.BirthDate != nil {
			bd := clinic.CivilDate(*p.BirthDate)
			m.BirthDate = &bd
		}
		out = append(out, m)
	}
	return out
}

func toEncounterModels(in []clinic.Encounter) []EncounterModel {
	out := make([]EncounterModel, 0, len(in))
	for _, e := range in {
		out = append(out, EncounterModel{
			ID:           e.ID,
			PetID:        e.PetID,
			Practitioner: e.Practitioner,
			OccurredAt:   e.OccurredAt.UTC(),
			Reason:       e.Reason,
			Diagnosis:    e.Diagnosis,
			Treatment:    e.Treatment,
			Status:       string(e.Status),
			CreatedAt:    e.CreatedAt.UTC(),
		})
	}
	return out
}

func toScheduledEventModels(in []clinic.ScheduledEvent) []ScheduledEventModel {
	out := make([]ScheduledEventModel, 0, len(in))
	for _, e := range in {
		out = append(out, ScheduledEventModel{
			ID:           e.ID,
			PetID:        e.PetID,
			Practitioner: e.Practitioner,
			Category:     string(e.Category),
			Title:        e.Title,
			Description:  e.Description,
			ScheduledAt:  e.ScheduledAt.UTC(),
			Status:       string(e.Status),
			Completed:    e.Completed,
			Notify:       e.Notify,
			CreatedAt:    e.CreatedAt.UTC(),
		})
	}
	return out
}

func toMedicationModels(in []clinic.Medication) []MedicationModel {
	out := make([]MedicationModel, 0, len(in))
	for _, m := range in {
		out = append(out, MedicationModel{
			ID:           m.ID,
			Name:         m.Name,
			Description:  m.Description,
			Instructions: m.Instructions,
		})
	}
	return out
}

func toPrescriptionModels(in []clinic.Prescription) []PrescriptionModel {
	out := make([]PrescriptionModel, 0, len(in))
	for _, p := range in {
		out = append(out, PrescriptionModel{
			ID:           p.ID,
			EncounterID:  p.EncounterID,
			MedicationID: p.MedicationID,
			Dosage:       p.Dosage,
			Frequency:    string(p.Frequency),
			DurationDays: p.DurationDays,
			StartDate:    clinic.CivilDate(p.StartDate),
			EndDate:      clinic.CivilDate(p.EndDate),
			Notes:        p.Notes,
		})
	}
	return out
}
