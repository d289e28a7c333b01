package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pet-clinic-analytics/internal/domain/clinic"
)

var petColumns = map[clinic.PetField]string{
	clinic.PetBySpecies: "species",
	clinic.PetByBreed:   "breed",
}

var encounterColumns = map[clinic.EncounterField]string{
	clinic.EncounterByPractitioner: "practitioner",
	clinic.EncounterByStatus:       "status",
	clinic.EncounterByReason:       "reason",
}

var scheduledEventColumns = map[clinic.ScheduledEventField]string{
	clinic.ScheduledEventByCategory: "category",
	clinic.ScheduledEventByStatus:   "status",
}

// RecordsRepo implementa clinic.Gateway sobre el esquema relacional del
// sistema de registros. Sólo lee: las escrituras pertenecen a ese sistema
// (salvo Import, usado por el seed).
type RecordsRepo struct {
	db     *gorm.DB
	txOpts *sql.TxOptions
}

type Option func(*RecordsRepo)

// WithTxOptions reemplaza las opciones de la transacción de Snapshot.
// nil usa las del driver (sqlite no acepta REPEATABLE READ).
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(r *RecordsRepo) { r.txOpts = opts }
}

func NewRecordsRepo(db *gorm.DB, opts ...Option) *RecordsRepo {
	r := &RecordsRepo{
		db: db,
		txOpts: &sql.TxOptions{
			Isolation: sql.LevelRepeatableRead,
			ReadOnly:  true,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot corre fn dentro de una transacción de sólo lectura: todas las
// consultas de fn ven el mismo estado.
func (r *RecordsRepo) Snapshot(ctx context.Context, fn func(clinic.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var txOpts []*sql.TxOptions
	if r.txOpts != nil {
		txOpts = append(txOpts, r.txOpts)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reader{db: tx})
	}, txOpts...)
}

func (r *RecordsRepo) CountOwners(ctx context.Context) (int, error) {
	return reader{db: r.db}.CountOwners(ctx)
}

func (r *RecordsRepo) CountPets(ctx context.Context, filter clinic.PetFilter) (int, error) {
	return reader{db: r.db}.CountPets(ctx, filter)
}

func (r *RecordsRepo) CountEncounters(ctx context.Context, filter clinic.EncounterFilter) (int, error) {
	return reader{db: r.db}.CountEncounters(ctx, filter)
}

func (r *RecordsRepo) CountScheduledEvents(ctx context.Context, filter clinic.ScheduledEventFilter) (int, error) {
	return reader{db: r.db}.CountScheduledEvents(ctx, filter)
}

func (r *RecordsRepo) GroupPets(ctx context.Context, field clinic.PetField, filter clinic.PetFilter) ([]clinic.GroupCount, error) {
	return reader{db: r.db}.GroupPets(ctx, field, filter)
}

func (r *RecordsRepo) GroupEncounters(ctx context.Context, field clinic.EncounterField, filter clinic.EncounterFilter) ([]clinic.GroupCount, error) {
	return reader{db: r.db}.GroupEncounters(ctx, field, filter)
}

func (r *RecordsRepo) GroupScheduledEvents(ctx context.Context, field clinic.ScheduledEventField, filter clinic.ScheduledEventFilter) ([]clinic.GroupCount, error) {
	return reader{db: r.db}.GroupScheduledEvents(ctx, field, filter)
}

func (r *RecordsRepo) AveragePetWeight(ctx context.Context, filter clinic.PetFilter) (float64, int, error) {
	return reader{db: r.db}.AveragePetWeight(ctx, filter)
}

func (r *RecordsRepo) OwnerActivity(ctx context.Context) ([]clinic.OwnerActivity, error) {
	return reader{db: r.db}.OwnerActivity(ctx)
}

// reader ejecuta las consultas sobre db, que puede ser la conexión o una tx.
type reader struct {
	db *gorm.DB
}

type groupRow struct {
	GroupKey string
	Total    int64
}

func (r reader) CountOwners(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&OwnerModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count owners: %w", err)
	}
	return int(n), nil
}

func (r reader) CountPets(ctx context.Context, filter clinic.PetFilter) (int, error) {
	var n int64
	q := petScope(r.db.WithContext(ctx).Model(&PetModel{}), filter)
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count pets: %w", err)
	}
	return int(n), nil
}

func (r reader) CountEncounters(ctx context.Context, filter clinic.EncounterFilter) (int, error) {
	var n int64
	q := encounterScope(r.db.WithContext(ctx).Model(&EncounterModel{}), filter)
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count encounters: %w", err)
	}
	return int(n), nil
}

func (r reader) CountScheduledEvents(ctx context.Context, filter clinic.ScheduledEventFilter) (int, error) {
	var n int64
	q := scheduledEventScope(r.db.WithContext(ctx).Model(&ScheduledEventModel{}), filter)
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count scheduled events: %w", err)
	}
	return int(n), nil
}

func (r reader) GroupPets(ctx context.Context, field clinic.PetField, filter clinic.PetFilter) ([]clinic.GroupCount, error) {
	col, ok := petColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", clinic.ErrUnknownField, field)
	}
	q := petScope(r.db.WithContext(ctx).Model(&PetModel{}), filter)
	return groupBy(q, col, "pets")
}

func (r reader) GroupEncounters(ctx context.Context, field clinic.EncounterField, filter clinic.EncounterFilter) ([]clinic.GroupCount, error) {
	col, ok := encounterColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", clinic.ErrUnknownField, field)
	}
	q := encounterScope(r.db.WithContext(ctx).Model(&EncounterModel{}), filter)
	return groupBy(q, col, "encounters")
}

func (r reader) GroupScheduledEvents(ctx context.Context, field clinic.ScheduledEventField, filter clinic.ScheduledEventFilter) ([]clinic.GroupCount, error) {
	col, ok := scheduledEventColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", clinic.ErrUnknownField, field)
	}
	q := scheduledEventScope(r.db.WithContext(ctx).Model(&ScheduledEventModel{}), filter)
	return groupBy(q, col, "scheduled events")
}

func (r reader) AveragePetWeight(ctx context.Context, filter clinic.PetFilter) (float64, int, error) {
	filter.WithWeight = true

	var row struct {
		AvgWeight float64
		Total     int64
	}
	q := petScope(r.db.WithContext(ctx).Model(&PetModel{}), filter).
		Select("COALESCE(AVG(weight_kg), 0) AS avg_weight, COUNT(weight_kg) AS total")
	if err := q.Scan(&row).Error; err != nil {
		return 0, 0, fmt.Errorf("average pet weight: %w", err)
	}
	return row.AvgWeight, int(row.Total), nil
}

func (r reader) OwnerActivity(ctx context.Context) ([]clinic.OwnerActivity, error) {
	db := r.db.WithContext(ctx)

	var owners []OwnerModel
	if err := db.Select("id", "name").Order("name, id").Find(&owners).Error; err != nil {
		return nil, fmt.Errorf("owner activity: %w", err)
	}

	var pets []groupRow
	err := db.Model(&PetModel{}).
		Select("owner_id AS group_key, COUNT(*) AS total").
		Group("owner_id").
		Scan(&pets).Error
	if err != nil {
		return nil, fmt.Errorf("owner activity pets: %w", err)
	}

	var encounters []groupRow
	err = db.Model(&EncounterModel{}).
		Select("pets.owner_id AS group_key, COUNT(encounters.id) AS total").
		Joins("JOIN pets ON pets.id = encounters.pet_id").
		Group("pets.owner_id").
		Scan(&encounters).Error
	if err != nil {
		return nil, fmt.Errorf("owner activity encounters: %w", err)
	}

	petsBy := indexRows(pets)
	encountersBy := indexRows(encounters)

	out := make([]clinic.OwnerActivity, 0, len(owners))
	for _, o := range owners {
		out = append(out, clinic.OwnerActivity{
			OwnerID:    o.ID,
			Name:       o.Name,
			Pets:       petsBy[o.ID],
			Encounters: encountersBy[o.ID],
		})
	}
	return out, nil
}

func groupBy(q *gorm.DB, col, what string) ([]clinic.GroupCount, error) {
	var rows []groupRow
	err := q.Select(col + " AS group_key, COUNT(*) AS total").
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", what, col, err)
	}

	out := make([]clinic.GroupCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, clinic.GroupCount{Key: row.GroupKey, Count: int(row.Total)})
	}
	clinic.SortGroups(out)
	return out, nil
}

func indexRows(rows []groupRow) map[string]int {
	m := make(map[string]int, len(rows))
	for _, row := range rows {
		m[row.GroupKey] = int(row.Total)
	}
	return m
}

func petScope(q *gorm.DB, f clinic.PetFilter) *gorm.DB {
	if len(f.Species) > 0 {
		species := make([]string, 0, len(f.Species))
		for _, s := range f.Species {
			species = append(species, string(s))
		}
		q = q.Where("species IN ?", species)
	}
	if f.WithWeight {
		q = q.Where("weight_kg IS NOT NULL")
	}
	if f.BornAfter != nil {
		q = q.Where("birth_date > ?", clinic.CivilDate(*f.BornAfter))
	}
	if f.BornOnOrBefore != nil {
		q = q.Where("birth_date <= ?", clinic.CivilDate(*f.BornOnOrBefore))
	}
	return q
}

func encounterScope(q *gorm.DB, f clinic.EncounterFilter) *gorm.DB {
	if f.From != nil {
		q = q.Where("occurred_at >= ?", utc(*f.From))
	}
	if f.Until != nil {
		q = q.Where("occurred_at < ?", utc(*f.Until))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}
	return q
}

func scheduledEventScope(q *gorm.DB, f clinic.ScheduledEventFilter) *gorm.DB {
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", utc(*f.From))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}
	return q
}

func utc(t time.Time) time.Time { return t.UTC() }
