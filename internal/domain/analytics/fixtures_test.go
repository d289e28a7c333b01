package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pet-clinic-analytics/internal/adapters/storage/memory"
	"pet-clinic-analytics/internal/domain/clinic"
	"pet-clinic-analytics/internal/platform/logger"
)

const (
	vetPaulo = "MV Paulo Alelúia"
	vetAna   = "MV Ana Carolinna Piazza"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrFloat(f float64) *float64    { return &f }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

// clinicDataset: Ana tiene 6 consultas realizadas, Bruno 2 (una agendada) y Carla ninguna.
func clinicDataset() clinic.Dataset {
	ds := clinic.Dataset{
		Owners: []clinic.Owner{
			{ID: "o-a", Name: "Ana"},
			{ID: "o-b", Name: "Bruno"},
			{ID: "o-c", Name: "Carla"},
		},
		Pets: []clinic.Pet{
			{ID: "p-a1", OwnerID: "o-a", Name: "Thor", Species: clinic.SpeciesDog, Breed: "Labrador", BirthDate: ptrTime(day(2023, 1, 10)), WeightKg: ptrFloat(30)},
			{ID: "p-a2", OwnerID: "o-a", Name: "Mimi", Species: clinic.SpeciesCat, Breed: "Siamês", BirthDate: ptrTime(day(2019, 5, 1)), WeightKg: ptrFloat(4)},
			{ID: "p-b1", OwnerID: "o-b", Name: "Rex", Species: clinic.SpeciesDog, Breed: "Labrador", BirthDate: ptrTime(day(2015, 1, 1)), WeightKg: ptrFloat(20)},
			{ID: "p-c1", OwnerID: "o-c", Name: "Loro", Species: clinic.SpeciesBird},
		},
		ScheduledEvents: []clinic.ScheduledEvent{
			{ID: "s-1", PetID: "p-a1", Category: clinic.CategoryVaccine, Status: clinic.EventPending, ScheduledAt: day(2024, 6, 20)},
			{ID: "s-2", PetID: "p-a2", Category: clinic.CategoryVaccine, Status: clinic.EventConfirmed, ScheduledAt: day(2024, 6, 10)},
			{ID: "s-3", PetID: "p-b1", Category: clinic.CategoryExam, Status: clinic.EventPending, ScheduledAt: day(2024, 7, 1)},
		},
	}

	for i := 1; i <= 6; i++ {
		pet := "p-a1"
		if i%2 == 0 {
			pet = "p-a2"
		}
		ds.Encounters = append(ds.Encounters, clinic.Encounter{
			ID:           "e-a" + string(rune('0'+i)),
			PetID:        pet,
			Practitioner: vetPaulo,
			OccurredAt:   day(2024, 6, i),
			Reason:       "Vacinação anual",
			Status:       clinic.EncounterCompleted,
		})
	}
	ds.Encounters = append(ds.Encounters,
		clinic.Encounter{ID: "e-b1", PetID: "p-b1", Practitioner: vetAna, OccurredAt: day(2024, 6, 14), Reason: "Check-up", Status: clinic.EncounterCompleted},
		clinic.Encounter{ID: "e-b2", PetID: "p-b1", Practitioner: vetAna, OccurredAt: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), Reason: "Check-up", Status: clinic.EncounterScheduled},
	)
	return ds
}

func newTestService(t *testing.T, gw clinic.Gateway, log logger.Logger) *Service {
	t.Helper()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	svc := NewService(gw, cfg, log)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func newFixtureService(t *testing.T) (*Service, *memory.RecordsRepo) {
	t.Helper()
	repo := memory.NewRecordsRepoFrom(clinicDataset())
	return newTestService(t, repo, nil), repo
}

var errStoreDown = errors.New("connection refused")

// downGateway simula un almacén caído.
type downGateway struct {
	clinic.Reader
}

func (downGateway) Snapshot(context.Context, func(clinic.Reader) error) error {
	return errStoreDown
}

// flakyGateway delega en un almacén real pero falla OwnerActivity.
type flakyGateway struct {
	*memory.RecordsRepo
}

func (g flakyGateway) Snapshot(ctx context.Context, fn func(clinic.Reader) error) error {
	return g.RecordsRepo.Snapshot(ctx, func(r clinic.Reader) error {
		return fn(flakyReader{Reader: r})
	})
}

type flakyReader struct {
	clinic.Reader
}

func (flakyReader) OwnerActivity(context.Context) ([]clinic.OwnerActivity, error) {
	return nil, errStoreDown
}
