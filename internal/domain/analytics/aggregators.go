package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pet-clinic-analytics/internal/domain/clinic"
)

// aggregator calcula una métrica sobre un snapshot del almacén.
// No escribe nada: dos llamadas sobre el mismo snapshot dan el mismo resultado.
type aggregator func(ctx context.Context, r clinic.Reader, now time.Time, p Params) (Payload, error)

func (s *Service) overview(ctx context.Context, r clinic.Reader, now time.Time, _ Params) (Payload, error) {
	today := s.bucketer.Today(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.cfg.Location)

	n := s.cfg.OverviewMonths
	out := OverviewPayload{
		Months: make([]string, 0, n),
		Counts: make([]int, 0, n),
	}
	for i := n - 1; i >= 0; i-- {
		start := firstOfMonth.AddDate(0, -i, 0)
		c, err := r.CountEncounters(ctx, clinic.Window(start, start.AddDate(0, 1, 0)))
		if err != nil {
			return nil, err
		}
		out.Months = append(out.Months, s.cfg.Locale.MonthYear(start))
		out.Counts = append(out.Counts, c)
	}
	return out, nil
}

func (s *Service) periodCounts(ctx context.Context, r clinic.Reader, now time.Time, p Params) (Payload, error) {
	days := s.days(p)
	buckets, err := s.bucketer.Split(now, days)
	if err != nil {
		return nil, err
	}

	out := PeriodCountsPayload{
		Counts:    make([]int, 0, len(buckets)),
		Labels:    make([]string, 0, len(buckets)),
		TotalDays: days,
	}
	for _, b := range buckets {
		c, err := r.CountEncounters(ctx, clinic.Window(b.Start, b.Until()))
		if err != nil {
			return nil, err
		}
		out.Counts = append(out.Counts, c)
		out.Labels = append(out.Labels, b.Label)
	}
	return out, nil
}

func (s *Service) speciesBreeds(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	species, err := r.GroupPets(ctx, clinic.PetBySpecies, clinic.PetFilter{})
	if err != nil {
		return nil, err
	}
	breeds, err := r.GroupPets(ctx, clinic.PetByBreed, clinic.PetFilter{})
	if err != nil {
		return nil, err
	}

	out := SpeciesBreedsPayload{
		Species: make([]SpeciesCount, 0, len(species)),
		Breeds:  make([]BreedCount, 0, s.cfg.TopN),
	}
	for _, g := range species {
		out.Species = append(out.Species, SpeciesCount{Species: g.Key, Total: g.Count})
	}
	for _, g := range breeds {
		if strings.TrimSpace(g.Key) == "" {
			continue
		}
		if len(out.Breeds) == s.cfg.TopN {
			break
		}
		out.Breeds = append(out.Breeds, BreedCount{Breed: g.Key, Total: g.Count})
	}
	return out, nil
}

func (s *Service) vetPerformance(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	totals, err := r.GroupEncounters(ctx, clinic.EncounterByPractitioner, clinic.EncounterFilter{})
	if err != nil {
		return nil, err
	}
	completed, err := s.countByPractitioner(ctx, r, clinic.EncounterCompleted)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.countByPractitioner(ctx, r, clinic.EncounterScheduled)
	if err != nil {
		return nil, err
	}

	out := VetPerformancePayload{Practitioners: make([]VetPerformance, 0, len(totals))}
	for _, g := range totals {
		out.Practitioners = append(out.Practitioners, VetPerformance{
			Practitioner:   g.Key,
			Total:          g.Count,
			Completed:      completed[g.Key],
			Scheduled:      scheduled[g.Key],
			CompletionRate: Percent(completed[g.Key], g.Count),
		})
	}
	return out, nil
}

func (s *Service) countByPractitioner(ctx context.Context, r clinic.Reader, status clinic.EncounterStatus) (map[string]int, error) {
	groups, err := r.GroupEncounters(ctx, clinic.EncounterByPractitioner, clinic.EncounterFilter{
		Statuses: []clinic.EncounterStatus{status},
	})
	if err != nil {
		return nil, err
	}
	m := make(map[string]int, len(groups))
	for _, g := range groups {
		m[g.Key] = g.Count
	}
	return m, nil
}

func (s *Service) procedureTypes(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	categories, err := r.GroupScheduledEvents(ctx, clinic.ScheduledEventByCategory, clinic.ScheduledEventFilter{})
	if err != nil {
		return nil, err
	}
	statuses, err := r.GroupScheduledEvents(ctx, clinic.ScheduledEventByStatus, clinic.ScheduledEventFilter{})
	if err != nil {
		return nil, err
	}

	out := ProcedureTypesPayload{
		Categories: make([]CategoryCount, 0, len(categories)),
		Statuses:   make([]StatusCount, 0, len(statuses)),
	}
	for _, g := range categories {
		out.Categories = append(out.Categories, CategoryCount{Category: g.Key, Total: g.Count})
	}
	for _, g := range statuses {
		out.Statuses = append(out.Statuses, StatusCount{Status: g.Key, Total: g.Count})
	}
	return out, nil
}

func (s *Service) procedureRevenue(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	groups, err := r.GroupScheduledEvents(ctx, clinic.ScheduledEventByCategory, clinic.ScheduledEventFilter{})
	if err != nil {
		return nil, err
	}

	// Sin agendamientos se emiten todas las categorías en cero, nunca una tabla vacía.
	if len(groups) == 0 {
		for _, c := range clinic.EventCategories() {
			groups = append(groups, clinic.GroupCount{Key: string(c)})
		}
	}

	out := ProcedureRevenuePayload{
		Labels:     make([]string, 0, len(groups)),
		Revenues:   make([]float64, 0, len(groups)),
		Quantities: make([]int, 0, len(groups)),
		Table:      make([]ProcedureRevenueRow, 0, len(groups)),
	}
	for _, g := range groups {
		cat := clinic.EventCategory(g.Key)
		label := s.cfg.Locale.CategoryLabel(cat)
		revenue := s.proxy.ProcedureRevenue(cat, g.Count)

		out.Labels = append(out.Labels, label)
		out.Quantities = append(out.Quantities, g.Count)
		out.Revenues = append(out.Revenues, toFloat64(revenue))
		out.Table = append(out.Table, ProcedureRevenueRow{
			Procedure:     label,
			Quantity:      g.Count,
			Revenue:       toFloat64(revenue),
			AverageTicket: toFloat64(s.proxy.AverageTicket(revenue, g.Count)),
		})
	}
	return out, nil
}

func (s *Service) vetRevenue(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	groups, err := r.GroupEncounters(ctx, clinic.EncounterByPractitioner, clinic.EncounterFilter{
		Statuses: []clinic.EncounterStatus{clinic.EncounterCompleted},
	})
	if err != nil {
		return nil, err
	}

	out := VetRevenuePayload{
		Labels:   make([]string, 0, len(groups)),
		Revenues: make([]float64, 0, len(groups)),
	}
	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		out.Labels = append(out.Labels, g.Key)
		out.Revenues = append(out.Revenues, toFloat64(s.proxy.EncounterRevenue(g.Count)))
	}
	return out, nil
}

func (s *Service) customerValue(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	owners, err := r.OwnerActivity(ctx)
	if err != nil {
		return nil, err
	}

	var high, medium, low int
	for _, o := range owners {
		switch {
		case o.Encounters >= s.cfg.HighValueMin:
			high++
		case o.Encounters >= s.cfg.MediumValueMin:
			medium++
		default:
			low++
		}
	}

	tiers := s.cfg.Locale.TierLabels
	return CustomerValuePayload{
		Labels: []string{tiers[0], tiers[1], tiers[2]},
		Values: []int{high, medium, low},
	}, nil
}

func (s *Service) revenueTrend(ctx context.Context, r clinic.Reader, now time.Time, _ Params) (Payload, error) {
	year := s.bucketer.Today(now).Year()

	out := RevenueTrendPayload{
		Labels: make([]string, 0, 12),
		Values: make([]float64, 0, 12),
	}
	for m := time.January; m <= time.December; m++ {
		start := time.Date(year, m, 1, 0, 0, 0, 0, s.cfg.Location)
		c, err := r.CountEncounters(ctx, clinic.Window(start, start.AddDate(0, 1, 0), clinic.EncounterCompleted))
		if err != nil {
			return nil, err
		}
		out.Labels = append(out.Labels, s.cfg.Locale.Month(m))
		out.Values = append(out.Values, toFloat64(s.proxy.EncounterRevenue(c)))
	}
	return out, nil
}

func (s *Service) loyalty(ctx context.Context, r clinic.Reader, _ time.Time, _ Params) (Payload, error) {
	owners, err := r.OwnerActivity(ctx)
	if err != nil {
		return nil, err
	}

	multi := make([]clinic.OwnerActivity, 0, len(owners))
	active := make([]clinic.OwnerActivity, 0, len(owners))
	returning := 0
	for _, o := range owners {
		if o.Pets > 1 {
			multi = append(multi, o)
		}
		if o.Encounters > 0 {
			active = append(active, o)
		}
		if o.Encounters > 1 {
			returning++
		}
	}

	// OwnerActivity ya viene ordenado por nombre: el desempate es estable.
	sort.SliceStable(multi, func(i, j int) bool { return multi[i].Pets > multi[j].Pets })
	sort.SliceStable(active, func(i, j int) bool { return active[i].Encounters > active[j].Encounters })

	out := LoyaltyPayload{
		MultiPetOwners:       make([]OwnerPets, 0, s.cfg.TopN),
		TopOwners:            make([]OwnerEncounters, 0, s.cfg.TopN),
		ReturnRate:           Percent(returning, len(active)),
		OwnersWithEncounters: len(active),
		ReturningOwners:      returning,
	}
	for _, o := range head(multi, s.cfg.TopN) {
		out.MultiPetOwners = append(out.MultiPetOwners, OwnerPets{ID: o.OwnerID, Name: o.Name, Pets: o.Pets})
	}
	for _, o := range head(active, s.cfg.TopN) {
		out.TopOwners = append(out.TopOwners, OwnerEncounters{
			ID:         o.OwnerID,
			Name:       o.Name,
			Encounters: o.Encounters,
			Pets:       o.Pets,
		})
	}
	return out, nil
}

func (s *Service) animalHealth(ctx context.Context, r clinic.Reader, now time.Time, _ Params) (Payload, error) {
	today := clinic.CivilDate(s.bucketer.Today(now))

	out := AnimalHealthPayload{
		AgeBands: make([]AgeBandCount, 0, s.cfg.AgeBands),
		Weights:  make([]SpeciesWeight, 0, len(s.cfg.WeightSpecies)),
		Reasons:  make([]ReasonCount, 0, s.cfg.TopN),
	}

	// Edad aproximada con años de DaysPerYear días: la franja [min, max) va de
	// nacidos en o antes de hoy-min*año hasta nacidos después de hoy-max*año.
	for i := 0; i < s.cfg.AgeBands; i++ {
		minYears := i * s.cfg.AgeBandYears
		maxYears := (i + 1) * s.cfg.AgeBandYears
		last := i == s.cfg.AgeBands-1

		onOrBefore := today.AddDate(0, 0, -s.cfg.DaysPerYear*minYears)
		filter := clinic.PetFilter{BornOnOrBefore: &onOrBefore}
		if !last {
			after := today.AddDate(0, 0, -s.cfg.DaysPerYear*maxYears)
			filter.BornAfter = &after
		}

		c, err := r.CountPets(ctx, filter)
		if err != nil {
			return nil, err
		}
		out.AgeBands = append(out.AgeBands, AgeBandCount{
			Band:  s.cfg.Locale.AgeBandLabel(minYears, maxYears, last),
			Total: c,
		})
	}

	for _, sp := range s.cfg.WeightSpecies {
		avg, n, err := r.AveragePetWeight(ctx, clinic.PetFilter{
			Species:    []clinic.Species{sp},
			WithWeight: true,
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			continue
		}
		out.Weights = append(out.Weights, SpeciesWeight{
			Species:       string(sp),
			AverageWeight: toFloat64(decimal.NewFromFloat(avg).Round(1)),
		})
	}

	reasons, err := r.GroupEncounters(ctx, clinic.EncounterByReason, clinic.EncounterFilter{})
	if err != nil {
		return nil, err
	}
	for _, g := range head(reasons, s.cfg.TopN) {
		out.Reasons = append(out.Reasons, ReasonCount{Reason: g.Key, Total: g.Count})
	}
	return out, nil
}

func (s *Service) summary(ctx context.Context, r clinic.Reader, now time.Time, _ Params) (Payload, error) {
	today := s.bucketer.Today(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.cfg.Location)
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, s.cfg.Location)

	var (
		out SummaryPayload
		err error
	)
	if out.Owners, err = r.CountOwners(ctx); err != nil {
		return nil, err
	}
	if out.Pets, err = r.CountPets(ctx, clinic.PetFilter{}); err != nil {
		return nil, err
	}
	if out.Encounters, err = r.CountEncounters(ctx, clinic.EncounterFilter{}); err != nil {
		return nil, err
	}
	if out.EncountersThisMonth, err = r.CountEncounters(ctx, clinic.EncounterFilter{From: &monthStart}); err != nil {
		return nil, err
	}
	if out.EncountersThisYear, err = r.CountEncounters(ctx, clinic.EncounterFilter{From: &yearStart}); err != nil {
		return nil, err
	}

	byStatus, err := r.GroupEncounters(ctx, clinic.EncounterByStatus, clinic.EncounterFilter{})
	if err != nil {
		return nil, err
	}
	for _, g := range byStatus {
		switch clinic.EncounterStatus(g.Key) {
		case clinic.EncounterScheduled:
			out.Scheduled = g.Count
		case clinic.EncounterCompleted:
			out.Completed = g.Count
		case clinic.EncounterCancelled:
			out.Cancelled = g.Count
		}
	}

	if out.PendingEvents, err = r.CountScheduledEvents(ctx, clinic.ScheduledEventFilter{
		From:     &now,
		Statuses: []clinic.EventStatus{clinic.EventPending},
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
