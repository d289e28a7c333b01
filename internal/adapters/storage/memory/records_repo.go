package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-clinic-analytics/internal/domain/clinic"
)

var (
	ErrNotFound = errors.New("not found")
)

// RecordsRepo es el almacén en memoria (modo dev y tests).
// Cada lectura trabaja sobre una copia tomada bajo RLock, así que
// Snapshot entrega una vista inmutable aunque haya escrituras concurrentes.
type RecordsRepo struct {
	mu   sync.RWMutex
	data clinic.Dataset
}

func NewRecordsRepo() *RecordsRepo {
	return &RecordsRepo{}
}

// NewRecordsRepoFrom crea el repo ya cargado con un dataset.
func NewRecordsRepoFrom(ds clinic.Dataset) *RecordsRepo {
	r := NewRecordsRepo()
	r.Load(ds)
	return r
}

// Load reemplaza todo el contenido.
func (r *RecordsRepo) Load(ds clinic.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = cloneDataset(ds)
}

func (r *RecordsRepo) AddOwner(o clinic.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	for _, cur := range r.data.Owners {
		if cur.ID == o.ID {
			return errors.New("owner already exists")
		}
	}
	r.data.Owners = append(r.data.Owners, o)
	return nil
}

func (r *RecordsRepo) AddPet(p clinic.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if !r.hasOwner(p.OwnerID) {
		return ErrNotFound
	}
	r.data.Pets = append(r.data.Pets, p)
	return nil
}

func (r *RecordsRepo) AddEncounter(e clinic.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("encounter id required")
	}
	if !r.hasPet(e.PetID) {
		return ErrNotFound
	}
	r.data.Encounters = append(r.data.Encounters, e)
	return nil
}

func (r *RecordsRepo) AddScheduledEvent(e clinic.ScheduledEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("scheduled event id required")
	}
	if !r.hasPet(e.PetID) {
		return ErrNotFound
	}
	r.data.ScheduledEvents = append(r.data.ScheduledEvents, e)
	return nil
}

func (r *RecordsRepo) hasOwner(id string) bool {
	for _, o := range r.data.Owners {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (r *RecordsRepo) hasPet(id string) bool {
	for _, p := range r.data.Pets {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (r *RecordsRepo) view() *snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &snapshot{data: cloneDataset(r.data)}
}

func (r *RecordsRepo) Snapshot(ctx context.Context, fn func(clinic.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.view())
}

func (r *RecordsRepo) CountOwners(ctx context.Context) (int, error) {
	return r.view().CountOwners(ctx)
}

func (r *RecordsRepo) CountPets(ctx context.Context, filter clinic.PetFilter) (int, error) {
	return r.view().CountPets(ctx, filter)
}

func (r *RecordsRepo) CountEncounters(ctx context.Context, filter clinic.EncounterFilter) (int, error) {
	return r.view().CountEncounters(ctx, filter)
}

func (r *RecordsRepo) CountScheduledEvents(ctx context.Context, filter clinic.ScheduledEventFilter) (int, error) {
	return r.view().CountScheduledEvents(ctx, filter)
}

func (r *RecordsRepo) GroupPets(ctx context.Context, field clinic.PetField, filter clinic.PetFilter) ([]clinic.GroupCount, error) {
	return r.view().GroupPets(ctx, field, filter)
}

func (r *RecordsRepo) GroupEncounters(ctx context.Context, field clinic.EncounterField, filter clinic.EncounterFilter) ([]clinic.GroupCount, error) {
	return r.view().GroupEncounters(ctx, field, filter)
}

func (r *RecordsRepo) GroupScheduledEvents(ctx context.Context, field clinic.ScheduledEventField, filter clinic.ScheduledEventFilter) ([]clinic.GroupCount, error) {
	return r.view().GroupScheduledEvents(ctx, field, filter)
}

func (r *RecordsRepo) AveragePetWeight(ctx context.Context, filter clinic.PetFilter) (float64, int, error) {
	return r.view().AveragePetWeight(ctx, filter)
}

func (r *RecordsRepo) OwnerActivity(ctx context.Context) ([]clinic.OwnerActivity, error) {
	return r.view().OwnerActivity(ctx)
}

var _ clinic.Gateway = (*RecordsRepo)(nil)

// snapshot implementa clinic.Reader sobre una copia privada; no necesita locks.
type snapshot struct {
	data clinic.Dataset
}

func (s *snapshot) CountOwners(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.data.Owners), nil
}

func (s *snapshot) CountPets(ctx context.Context, filter clinic.PetFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range s.data.Pets {
		if matchPet(p, filter) {
			n++
		}
	}
	return n, nil
}

func (s *snapshot) CountEncounters(ctx context.Context, filter clinic.EncounterFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	for _, e := range s.data.Encounters {
		if matchEncounter(e, filter) {
			n++
		}
	}
	return n, nil
}

func (s *snapshot) CountScheduledEvents(ctx context.Context, filter clinic.ScheduledEventFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	for _, e := range s.data.ScheduledEvents {
		if matchScheduledEvent(e, filter) {
			n++
		}
	}
	return n, nil
}

func (s *snapshot) GroupPets(ctx context.Context, field clinic.PetField, filter clinic.PetFilter) ([]clinic.GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key func(clinic.Pet) string
	switch field {
	case clinic.PetBySpecies:
		key = func(p clinic.Pet) string { return string(p.Species) }
	case clinic.PetByBreed:
		key = func(p clinic.Pet) string { return p.Breed }
	default:
		return nil, clinic.ErrUnknownField
	}

	counts := map[string]int{}
	for _, p := range s.data.Pets {
		if matchPet(p, filter) {
			counts[key(p)]++
		}
	}
	return toGroups(counts), nil
}

func (s *snapshot) GroupEncounters(ctx context.Context, field clinic.EncounterField, filter clinic.EncounterFilter) ([]clinic.GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key func(clinic.Encounter) string
	switch field {
	case clinic.EncounterByPractitioner:
		key = func(e clinic.Encounter) string { return e.Practitioner }
	case clinic.EncounterByStatus:
		key = func(e clinic.Encounter) string { return string(e.Status) }
	case clinic.EncounterByReason:
		key = func(e clinic.Encounter) string { return e.Reason }
	default:
		return nil, clinic.ErrUnknownField
	}

	counts := map[string]int{}
	for _, e := range s.data.Encounters {
		if matchEncounter(e, filter) {
			counts[key(e)]++
		}
	}
	return toGroups(counts), nil
}

func (s *snapshot) GroupScheduledEvents(ctx context.Context, field clinic.ScheduledEventField, filter clinic.ScheduledEventFilter) ([]clinic.GroupCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key func(clinic.ScheduledEvent) string
	switch field {
	case clinic.ScheduledEventByCategory:
		key = func(e clinic.ScheduledEvent) string { return string(e.Category) }
	case clinic.ScheduledEventByStatus:
		key = func(e clinic.ScheduledEvent) string { return string(e.Status) }
	default:
		return nil, clinic.ErrUnknownField
	}

	counts := map[string]int{}
	for _, e := range s.data.ScheduledEvents {
		if matchScheduledEvent(e, filter) {
			counts[key(e)]++
		}
	}
	return toGroups(counts), nil
}

func (s *snapshot) AveragePetWeight(ctx context.Context, filter clinic.PetFilter) (float64, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	filter.WithWeight = true
	var sum float64
	n := 0
	for _, p := range s.data.Pets {
		if !matchPet(p, filter) {
			continue
		}
		sum += *p.WeightKg
		n++
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

func (s *snapshot) OwnerActivity(ctx context.Context) ([]clinic.OwnerActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	petOwner := make(map[string]string, len(s.data.Pets))
	pets := map[string]int{}
	for _, p := range s.data.Pets {
		petOwner[p.ID] = p.OwnerID
		pets[p.OwnerID]++
	}
	encounters := map[string]int{}
	for _, e := range s.data.Encounters {
		if owner, ok := petOwner[e.PetID]; ok {
			encounters[owner]++
		}
	}

	out := make([]clinic.OwnerActivity, 0, len(s.data.Owners))
	for _, o := range s.data.Owners {
		out = append(out, clinic.OwnerActivity{
			OwnerID:    o.ID,
			Name:       o.Name,
			Pets:       pets[o.ID],
			Encounters: encounters[o.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].OwnerID < out[j].OwnerID
	})
	return out, nil
}

func matchPet(p clinic.Pet, f clinic.PetFilter) bool {
	if len(f.Species) > 0 {
		ok := false
		for _, sp := range f.Species {
			if p.Species == sp {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.WithWeight && p.WeightKg == nil {
		return false
	}
	if f.BornAfter != nil || f.BornOnOrBefore != nil {
		// sin fecha de nacimiento nunca entra en un rango de edad
		if p.BirthDate == nil {
			return false
		}
		bd := clinic.CivilDate(*p.BirthDate)
		if f.BornAfter != nil && !bd.After(clinic.CivilDate(*f.BornAfter)) {
			return false
		}
		if f.BornOnOrBefore != nil && bd.After(clinic.CivilDate(*f.BornOnOrBefore)) {
			return false
		}
	}
	return true
}

func matchEncounter(e clinic.Encounter, f clinic.EncounterFilter) bool {
	if f.From != nil && e.OccurredAt.Before(*f.From) {
		return false
	}
	if f.Until != nil && !e.OccurredAt.Before(*f.Until) {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, st := range f.Statuses {
			if e.Status == st {
				return true
			}
		}
		return false
	}
	return true
}

func matchScheduledEvent(e clinic.ScheduledEvent, f clinic.ScheduledEventFilter) bool {
	if f.From != nil && e.ScheduledAt.Before(*f.From) {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, st := range f.Statuses {
			if e.Status == st {
				return true
			}
		}
		return false
	}
	return true
}

func toGroups(counts map[string]int) []clinic.GroupCount {
	out := make([]clinic.GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, clinic.GroupCount{Key: k, Count: n})
	}
	clinic.SortGroups(out)
	return out
}

func cloneDataset(ds clinic.Dataset) clinic.Dataset {
	return clinic.Dataset{
		Owners:          append([]clinic.Owner(nil), ds.Owners...),
		Pets:            append([]clinic.Pet(nil), ds.Pets...),
		Encounters:      append([]clinic.Encounter(nil), ds.Encounters...),
		ScheduledEvents: append([]clinic.ScheduledEvent(nil), ds.ScheduledEvents...),
		Medications:     append([]clinic.Medication(nil), ds.Medications...),
		Prescriptions:   append([]clinic.Prescription(nil), ds.Prescriptions...),
	}
}
