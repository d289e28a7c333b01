package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-analytics/internal/domain/clinic"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seededRepo(t *testing.T) *RecordsRepo {
	t.Helper()
	r := NewRecordsRepo()
	w := 12.5

	require.NoError(t, r.AddOwner(clinic.Owner{ID: "o1", Name: "Beatriz"}))
	require.NoError(t, r.AddOwner(clinic.Owner{ID: "o2", Name: "Alice"}))

	bd := date(2020, 3, 1)
	require.NoError(t, r.AddPet(clinic.Pet{ID: "p1", OwnerID: "o1", Species: clinic.SpeciesDog, Breed: "Poodle", BirthDate: &bd, WeightKg: &w}))
	require.NoError(t, r.AddPet(clinic.Pet{ID: "p2", OwnerID: "o1", Species: clinic.SpeciesCat}))
	require.NoError(t, r.AddPet(clinic.Pet{ID: "p3", OwnerID: "o2", Species: clinic.SpeciesDog, Breed: "Poodle"}))

	require.NoError(t, r.AddEncounter(clinic.Encounter{ID: "e1", PetID: "p1", Practitioner: "MV B", OccurredAt: date(2024, 1, 10), Status: clinic.EncounterCompleted}))
	require.NoError(t, r.AddEncounter(clinic.Encounter{ID: "e2", PetID: "p2", Practitioner: "MV A", OccurredAt: date(2024, 1, 20), Status: clinic.EncounterScheduled}))
	require.NoError(t, r.AddEncounter(clinic.Encounter{ID: "e3", PetID: "p3", Practitioner: "MV A", OccurredAt: date(2024, 2, 1), Status: clinic.EncounterCompleted}))

	require.NoError(t, r.AddScheduledEvent(clinic.ScheduledEvent{ID: "s1", PetID: "p1", Category: clinic.CategoryExam, Status: clinic.EventPending, ScheduledAt: date(2024, 3, 1)}))
	return r
}

func TestRecordsRepo_AddValidatesParents(t *testing.T) {
	r := NewRecordsRepo()

	assert.Error(t, r.AddOwner(clinic.Owner{}))
	assert.ErrorIs(t, r.AddPet(clinic.Pet{ID: "p1", OwnerID: "missing"}), ErrNotFound)
	assert.ErrorIs(t, r.AddEncounter(clinic.Encounter{ID: "e1", PetID: "missing"}), ErrNotFound)
	assert.ErrorIs(t, r.AddScheduledEvent(clinic.ScheduledEvent{ID: "s1", PetID: "missing"}), ErrNotFound)

	require.NoError(t, r.AddOwner(clinic.Owner{ID: "o1"}))
	assert.Error(t, r.AddOwner(clinic.Owner{ID: "o1"}))
}

func TestRecordsRepo_EncounterWindowIsHalfOpen(t *testing.T) {
	r := seededRepo(t)
	ctx := context.Background()

	n, err := r.CountEncounters(ctx, clinic.Window(date(2024, 1, 10), date(2024, 2, 1)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.CountEncounters(ctx, clinic.Window(date(2024, 1, 1), date(2024, 12, 31), clinic.EncounterCompleted))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecordsRepo_GroupsAreOrdered(t *testing.T) {
	r := seededRepo(t)
	ctx := context.Background()

	groups, err := r.GroupEncounters(ctx, clinic.EncounterByPractitioner, clinic.EncounterFilter{})
	require.NoError(t, err)
	assert.Equal(t, []clinic.GroupCount{{Key: "MV A", Count: 2}, {Key: "MV B", Count: 1}}, groups)

	breeds, err := r.GroupPets(ctx, clinic.PetByBreed, clinic.PetFilter{})
	require.NoError(t, err)
	assert.Equal(t, []clinic.GroupCount{{Key: "Poodle", Count: 2}, {Key: "", Count: 1}}, breeds)

	_, err = r.GroupPets(ctx, clinic.PetField("color"), clinic.PetFilter{})
	assert.ErrorIs(t, err, clinic.ErrUnknownField)
}

func TestRecordsRepo_PetFilters(t *testing.T) {
	r := seededRepo(t)
	ctx := context.Background()

	after := date(2019, 12, 31)
	onOrBefore := date(2020, 3, 1)
	n, err := r.CountPets(ctx, clinic.PetFilter{BornAfter: &after, BornOnOrBefore: &onOrBefore})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// límite exclusivo en BornAfter
	after = date(2020, 3, 1)
	n, err = r.CountPets(ctx, clinic.PetFilter{BornAfter: &after})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	avg, count, err := r.AveragePetWeight(ctx, clinic.PetFilter{Species: []clinic.Species{clinic.SpeciesDog}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 12.5, avg, 1e-9)

	_, count, err = r.AveragePetWeight(ctx, clinic.PetFilter{Species: []clinic.Species{clinic.SpeciesCat}})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordsRepo_OwnerActivity(t *testing.T) {
	r := seededRepo(t)

	got, err := r.OwnerActivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []clinic.OwnerActivity{
		{OwnerID: "o2", Name: "Alice", Pets: 1, Encounters: 1},
		{OwnerID: "o1", Name: "Beatriz", Pets: 2, Encounters: 2},
	}, got)
}

func TestRecordsRepo_SnapshotIsIsolatedFromWrites(t *testing.T) {
	r := seededRepo(t)
	ctx := context.Background()

	err := r.Snapshot(ctx, func(view clinic.Reader) error {
		before, err := view.CountEncounters(ctx, clinic.EncounterFilter{})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.AddEncounter(clinic.Encounter{ID: "e4", PetID: "p1", OccurredAt: date(2024, 3, 1)})
		}()
		wg.Wait()

		after, err := view.CountEncounters(ctx, clinic.EncounterFilter{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
		return nil
	})
	require.NoError(t, err)

	n, err := r.CountEncounters(ctx, clinic.EncounterFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRecordsRepo_CanceledContext(t *testing.T) {
	r := seededRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.CountOwners(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, r.Snapshot(ctx, func(clinic.Reader) error { return nil }), context.Canceled)
}
