package clinic

import (
	"context"
	"errors"
	"sort"
	"time"
)

var (
	ErrUnknownField = errors.New("unknown group field")
)

// Reader es el acceso de solo lectura al almacén de registros.
// Los resultados de Group* vienen ordenados por Count desc y Key asc.
type Reader interface {
	CountOwners(ctx context.Context) (int, error)
	CountPets(ctx context.Context, filter PetFilter) (int, error)
	CountEncounters(ctx context.Context, filter EncounterFilter) (int, error)
	CountScheduledEvents(ctx context.Context, filter ScheduledEventFilter) (int, error)

	GroupPets(ctx context.Context, field PetField, filter PetFilter) ([]GroupCount, error)
	GroupEncounters(ctx context.Context, field EncounterField, filter EncounterFilter) ([]GroupCount, error)
	GroupScheduledEvents(ctx context.Context, field ScheduledEventField, filter ScheduledEventFilter) ([]GroupCount, error)

	// AveragePetWeight devuelve el promedio de peso y cuántas mascotas entraron en el cálculo.
	// Sólo considera mascotas con peso registrado.
	AveragePetWeight(ctx context.Context, filter PetFilter) (float64, int, error)

	// OwnerActivity devuelve, por dueño, la cantidad de mascotas y de consultas
	// (sumadas sobre todas sus mascotas). Orden: nombre asc, id asc.
	OwnerActivity(ctx context.Context) ([]OwnerActivity, error)
}

// Gateway agrega la lectura consistente: todas las lecturas hechas dentro de fn
// ven el mismo snapshot del almacén.
type Gateway interface {
	Reader
	Snapshot(ctx context.Context, fn func(Reader) error) error
}

type GroupCount struct {
	Key   string
	Count int
}

type OwnerActivity struct {
	OwnerID    string
	Name       string
	Pets       int
	Encounters int
}

type PetField string

const (
	PetBySpecies PetField = "species"
	PetByBreed   PetField = "breed"
)

type EncounterField string

const (
	EncounterByPractitioner EncounterField = "practitioner"
	EncounterByStatus       EncounterField = "status"
	EncounterByReason       EncounterField = "reason"
)

type ScheduledEventField string

const (
	ScheduledEventByCategory ScheduledEventField = "category"
	ScheduledEventByStatus   ScheduledEventField = "status"
)

// EncounterFilter filtra consultas. La ventana es semiabierta: [From, Until).
type EncounterFilter struct {
	From     *time.Time
	Until    *time.Time
	Statuses []EncounterStatus
}

// PetFilter filtra mascotas. Las fechas de nacimiento se comparan como fechas civiles.
type PetFilter struct {
	Species        []Species
	BornAfter      *time.Time // birth_date > BornAfter
	BornOnOrBefore *time.Time // birth_date <= BornOnOrBefore
	WithWeight     bool
}

type ScheduledEventFilter struct {
	From     *time.Time // scheduled_at >= From
	Statuses []EventStatus
}

// SortGroups aplica el orden canónico de los resultados agrupados.
func SortGroups(groups []GroupCount) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
}

// Window arma un EncounterFilter para [from, until).
func Window(from, until time.Time, statuses ...EncounterStatus) EncounterFilter {
	return EncounterFilter{
		From:     &from,
		Until:    &until,
		Statuses: statuses,
	}
}
