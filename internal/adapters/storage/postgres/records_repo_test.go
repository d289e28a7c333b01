package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pet-clinic-analytics/internal/domain/clinic"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testDataset() clinic.Dataset {
	w := 12.5
	bd := date(2020, 3, 1)
	return clinic.Dataset{
		Owners: []clinic.Owner{
			{ID: "o1", Name: "Beatriz", TaxID: "111"},
			{ID: "o2", Name: "Alice", TaxID: "222"},
			{ID: "o3", Name: "Alice", TaxID: "333"},
		},
		Pets: []clinic.Pet{
			{ID: "p1", OwnerID: "o1", Name: "Bolt", Species: clinic.SpeciesDog, Breed: "Poodle", BirthDate: &bd, WeightKg: &w},
			{ID: "p2", OwnerID: "o1", Name: "Mia", Species: clinic.SpeciesCat},
			{ID: "p3", OwnerID: "o2", Name: "Zeus", Species: clinic.SpeciesDog, Breed: "Poodle"},
		},
		Encounters: []clinic.Encounter{
			{ID: "e1", PetID: "p1", Practitioner: "MV B", Reason: "Vacina", OccurredAt: date(2024, 1, 10), Status: clinic.EncounterCompleted},
			{ID: "e2", PetID: "p2", Practitioner: "MV A", Reason: "Check-up", OccurredAt: date(2024, 1, 20), Status: clinic.EncounterScheduled},
			// 23:30 en -03:00 sigue siendo 1 de febrero
			{ID: "e3", PetID: "p3", Practitioner: "MV A", Reason: "Check-up", OccurredAt: time.Date(2024, 2, 1, 23, 30, 0, 0, time.FixedZone("BRT", -3*60*60)), Status: clinic.EncounterCompleted},
		},
		ScheduledEvents: []clinic.ScheduledEvent{
			{ID: "s1", PetID: "p1", Category: clinic.CategoryExam, Status: clinic.EventPending, ScheduledAt: date(2024, 3, 1)},
			{ID: "s2", PetID: "p3", Category: clinic.CategoryVaccine, Status: clinic.EventCancelled, ScheduledAt: date(2024, 3, 2)},
		},
	}
}

func newSQLiteRepo(t *testing.T) *RecordsRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// :memory: es por conexión
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, Import(context.Background(), db, testDataset()))
	return NewRecordsRepo(db, WithTxOptions(nil))
}

func newMockRepo(t *testing.T) (*RecordsRepo, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewRecordsRepo(db), mock
}

func TestRecordsRepo_Counts(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	owners, err := r.CountOwners(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, owners)

	pets, err := r.CountPets(ctx, clinic.PetFilter{Species: []clinic.Species{clinic.SpeciesDog}})
	require.NoError(t, err)
	assert.Equal(t, 2, pets)

	pending, err := r.CountScheduledEvents(ctx, clinic.ScheduledEventFilter{
		From:     ptr(date(2024, 3, 1)),
		Statuses: []clinic.EventStatus{clinic.EventPending, clinic.EventConfirmed},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestRecordsRepo_EncounterWindowIsHalfOpen(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	n, err := r.CountEncounters(ctx, clinic.Window(date(2024, 1, 10), date(2024, 2, 1)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// e3 fue guardado en UTC (02/02 02:30)
	n, err = r.CountEncounters(ctx, clinic.Window(date(2024, 2, 2), date(2024, 2, 3), clinic.EncounterCompleted))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordsRepo_GroupsAreOrdered(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	groups, err := r.GroupEncounters(ctx, clinic.EncounterByPractitioner, clinic.EncounterFilter{})
	require.NoError(t, err)
	assert.Equal(t, []clinic.GroupCount{{Key: "MV A", Count: 2}, {Key: "MV B", Count: 1}}, groups)

	breeds, err := r.GroupPets(ctx, clinic.PetByBreed, clinic.PetFilter{})
	require.NoError(t, err)
	assert.Equal(t, []clinic.GroupCount{{Key: "Poodle", Count: 2}, {Key: "", Count: 1}}, breeds)

	categories, err := r.GroupScheduledEvents(ctx, clinic.ScheduledEventByCategory, clinic.ScheduledEventFilter{})
	require.NoError(t, err)
	assert.Equal(t, []clinic.GroupCount{{Key: "EXAME", Count: 1}, {Key: "VACINA", Count: 1}}, categories)

	_, err = r.GroupPets(ctx, clinic.PetField("color"), clinic.PetFilter{})
	assert.ErrorIs(t, err, clinic.ErrUnknownField)
	_, err = r.GroupEncounters(ctx, clinic.EncounterField("color"), clinic.EncounterFilter{})
	assert.ErrorIs(t, err, clinic.ErrUnknownField)
}

func TestRecordsRepo_PetFilters(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	n, err := r.CountPets(ctx, clinic.PetFilter{BornAfter: ptr(date(2019, 12, 31)), BornOnOrBefore: ptr(date(2020, 3, 1))})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.CountPets(ctx, clinic.PetFilter{BornAfter: ptr(date(2020, 3, 1))})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	avg, count, err := r.AveragePetWeight(ctx, clinic.PetFilter{Species: []clinic.Species{clinic.SpeciesDog}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 12.5, avg, 1e-9)

	avg, count, err = r.AveragePetWeight(ctx, clinic.PetFilter{Species: []clinic.Species{clinic.SpeciesCat}})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, avg)
}

func TestRecordsRepo_OwnerActivity(t *testing.T) {
	r := newSQLiteRepo(t)

	got, err := r.OwnerActivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []clinic.OwnerActivity{
		{OwnerID: "o2", Name: "Alice", Pets: 1, Encounters: 1},
		{OwnerID: "o3", Name: "Alice", Pets: 0, Encounters: 0},
		{OwnerID: "o1", Name: "Beatriz", Pets: 2, Encounters: 2},
	}, got)
}

func TestRecordsRepo_SnapshotReadsInsideTransaction(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	var owners, encounters int
	err := r.Snapshot(ctx, func(view clinic.Reader) error {
		var err error
		if owners, err = view.CountOwners(ctx); err != nil {
			return err
		}
		encounters, err = view.CountEncounters(ctx, clinic.EncounterFilter{})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 3, owners)
	assert.Equal(t, 3, encounters)
}

func TestRecordsRepo_CanceledContext(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Snapshot(ctx, func(clinic.Reader) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecordsRepo_PostgresQueries(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "encounters" WHERE occurred_at >= \$1 AND occurred_at < \$2 AND status IN \(\$3\)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "REALIZADA").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := r.CountEncounters(context.Background(), clinic.Window(date(2024, 1, 1), date(2024, 2, 1), clinic.EncounterCompleted))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mock.ExpectQuery(`SELECT species AS group_key, COUNT\(\*\) AS total FROM "pets" GROUP BY "species"`).
		WillReturnRows(sqlmock.NewRows([]string{"group_key", "total"}).
			AddRow("GATO", 3).
			AddRow("CACHORRO", 3).
			AddRow("AVE", 5))

	groups, err := r.GroupPets(context.Background(), clinic.PetBySpecies, clinic.PetFilter{})
	require.NoError(t, err)
	assert.Equal(t, []clinic.GroupCount{
		{Key: "AVE", Count: 5},
		{Key: "CACHORRO", Count: 3},
		{Key: "GATO", Count: 3},
	}, groups)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordsRepo_SnapshotRollsBackOnFailure(t *testing.T) {
	r, mock := newMockRepo(t)
	down := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "owners"`).WillReturnError(down)
	mock.ExpectRollback()

	err := r.Snapshot(context.Background(), func(view clinic.Reader) error {
		_, err := view.CountOwners(context.Background())
		return err
	})
	assert.ErrorIs(t, err, down)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordsRepo_BeginFailure(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	err := r.Snapshot(context.Background(), func(clinic.Reader) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func ptr[T any](v T) *T { return &v }
