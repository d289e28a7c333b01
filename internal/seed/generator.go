// Package seed genera datos de demostración para el dashboard.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-clinic-analytics/internal/domain/clinic"
)

// namespace fijo para que los IDs dependan sólo de la semilla.
var namespace = uuid.MustParse("6f1f2a8e-4c1d-4b7a-9a55-2b0f6c3d9e10")

type Options struct {
	Now           time.Time
	Location      *time.Location
	Practitioners []string
	Owners        int
	Months        int
	RandomSeed    int64
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if len(o.Practitioners) == 0 {
		o.Practitioners = []string{"MV Paulo Alelúia"}
	}
	if o.Owners <= 0 {
		o.Owners = 20
	}
	if o.Months <= 0 {
		o.Months = 6
	}
	return o
}

type generator struct {
	opts  Options
	rnd   *rand.Rand
	today time.Time
	seq   int
	ds    clinic.Dataset
}

// Generate arma un dataset completo. Misma semilla y mismo Now = mismo dataset.
//
// Las consultas pasadas quedan REALIZADA (algunas CANCELADA); las de hoy en
// adelante, AGENDADA o CONFIRMADA.
func Generate(opts Options) clinic.Dataset {
	opts = opts.withDefaults()
	seed := uint64(opts.RandomSeed)

	local := opts.Now.In(opts.Location)
	g := &generator{
		opts:  opts,
		rnd:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		today: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, opts.Location),
	}

	g.medications()
	for i := 0; i < opts.Owners; i++ {
		owner := g.owner(i)
		for n := g.petsFor(i); n > 0; n-- {
			g.pet(owner)
		}
	}
	g.encounters()
	g.scheduledEvents()
	return g.ds
}

func (g *generator) id(kind string) string {
	g.seq++
	name := fmt.Sprintf("%d/%s/%d", g.opts.RandomSeed, kind, g.seq)
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

func (g *generator) pick(list []string) string {
	return list[g.rnd.IntN(len(list))]
}

func (g *generator) medications() {
	for _, m := range medications {
		m.ID = g.id("medication")
		g.ds.Medications = append(g.ds.Medications, m)
	}
}

func (g *generator) owner(i int) clinic.Owner {
	first, last := g.pick(firstNames), g.pick(lastNames)
	o := clinic.Owner{
		ID:        g.id("owner"),
		Name:      first + " " + last,
		TaxID:     fmt.Sprintf("%03d.%03d.%03d-%02d", 100+i, g.rnd.IntN(1000), g.rnd.IntN(1000), g.rnd.IntN(100)),
		Phone:     fmt.Sprintf("(%02d) 9%04d-%04d", 11+g.rnd.IntN(80), g.rnd.IntN(10000), g.rnd.IntN(10000)),
		Email:     strings.ToLower(fmt.Sprintf("%s.%s%d@email.com", first, last, i)),
		Address:   fmt.Sprintf("Rua %s, %d, %s", g.pick(lastNames), 1+g.rnd.IntN(999), g.pick(cities)),
		CreatedAt: g.today.AddDate(0, -g.opts.Months, 0).UTC(),
	}
	g.ds.Owners = append(g.ds.Owners, o)
	return o
}

// petsFor: la mayoría tiene una mascota; uno de cada tres tiene dos o tres.
func (g *generator) petsFor(i int) int {
	if i%3 == 0 {
		return 2 + g.rnd.IntN(2)
	}
	return 1
}

func (g *generator) profile() speciesProfile {
	total := 0
	for _, p := range speciesProfiles {
		total += p.weight
	}
	n := g.rnd.IntN(total)
	for _, p := range speciesProfiles {
		if n < p.weight {
			return p
		}
		n -= p.weight
	}
	return speciesProfiles[0]
}

func (g *generator) pet(owner clinic.Owner) {
	prof := g.profile()

	sex := clinic.SexMale
	if g.rnd.IntN(2) == 0 {
		sex = clinic.SexFemale
	}

	p := clinic.Pet{
		ID:        g.id("pet"),
		OwnerID:   owner.ID,
		Name:      g.pick(petNames),
		Species:   prof.species,
		Breed:     g.pick(prof.breeds),
		Sex:       sex,
		CreatedAt: owner.CreatedAt,
		UpdatedAt: owner.CreatedAt,
	}

	// ~10% sin fecha de nacimiento, ~20% sin pesaje
	if g.rnd.IntN(10) > 0 {
		bd := clinic.CivilDate(g.today.AddDate(0, 0, -g.rnd.IntN(15*365)))
		p.BirthDate = &bd
	}
	if g.rnd.IntN(5) > 0 {
		w := prof.minWeight + g.rnd.Float64()*(prof.maxWeight-prof.minWeight)
		w = float64(int(w*100)) / 100
		p.WeightKg = &w
	}
	g.ds.Pets = append(g.ds.Pets, p)
}

func (g *generator) encounters() {
	if len(g.ds.Pets) == 0 {
		return
	}
	start := g.today.AddDate(0, -g.opts.Months, 0)

	for d := start; !d.After(g.today.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		for n := g.rnd.IntN(4); n > 0; n-- {
			at := d.Add(time.Duration(8+g.rnd.IntN(10)) * time.Hour)
			g.encounter(at, d.Before(g.today))
		}
	}
}

func (g *generator) encounter(at time.Time, past bool) {
	pet := g.ds.Pets[g.rnd.IntN(len(g.ds.Pets))]

	status := clinic.EncounterScheduled
	switch {
	case past && g.rnd.IntN(10) == 0:
		status = clinic.EncounterCancelled
	case past:
		status = clinic.EncounterCompleted
	case g.rnd.IntN(3) == 0:
		status = clinic.EncounterConfirmed
	}

	e := clinic.Encounter{
		ID:           g.id("encounter"),
		PetID:        pet.ID,
		Practitioner: g.pick(g.opts.Practitioners),
		OccurredAt:   at.UTC(),
		Reason:       g.pick(reasons),
		Status:       status,
		CreatedAt:    at.UTC(),
	}
	if status == clinic.EncounterCompleted {
		e.Diagnosis = "Animal saudável"
		e.Treatment = "Acompanhamento"
		if g.rnd.IntN(4) == 0 {
			g.prescription(e)
		}
	}
	g.ds.Encounters = append(g.ds.Encounters, e)
}

func (g *generator) prescription(e clinic.Encounter) {
	med := g.ds.Medications[g.rnd.IntN(len(g.ds.Medications))]
	days := 5 + g.rnd.IntN(10)
	start := clinic.CivilDate(e.OccurredAt.In(g.opts.Location))

	g.ds.Prescriptions = append(g.ds.Prescriptions, clinic.Prescription{
		ID:           g.id("prescription"),
		EncounterID:  e.ID,
		MedicationID: med.ID,
		Dosage:       fmt.Sprintf("%d mg", 50*(1+g.rnd.IntN(6))),
		Frequency:    frequencies[g.rnd.IntN(len(frequencies))],
		DurationDays: days,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, days),
	})
}

func (g *generator) scheduledEvents() {
	if len(g.ds.Pets) == 0 {
		return
	}
	categories := clinic.EventCategories()
	statuses := []clinic.EventStatus{clinic.EventPending, clinic.EventConfirmed, clinic.EventCancelled}

	// dos semanas hacia atrás y dos hacia adelante
	for offset := -14; offset <= 14; offset++ {
		d := g.today.AddDate(0, 0, offset)
		for n := g.rnd.IntN(3); n > 0; n-- {
			pet := g.ds.Pets[g.rnd.IntN(len(g.ds.Pets))]
			cat := categories[g.rnd.IntN(len(categories))]
			status := statuses[g.rnd.IntN(len(statuses))]
			at := d.Add(time.Duration(9+g.rnd.IntN(8)) * time.Hour)

			g.ds.ScheduledEvents = append(g.ds.ScheduledEvents, clinic.ScheduledEvent{
				ID:           g.id("event"),
				PetID:        pet.ID,
				Practitioner: g.pick(g.opts.Practitioners),
				Category:     cat,
				Title:        fmt.Sprintf("%s - %s", g.pick(eventTitles[cat]), pet.Name),
				ScheduledAt:  at.UTC(),
				Status:       status,
				Completed:    status == clinic.EventConfirmed && offset < 0,
				Notify:       true,
				CreatedAt:    at.AddDate(0, 0, -7).UTC(),
			})
		}
	}
}
