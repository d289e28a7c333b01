package analytics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"pet-clinic-analytics/internal/domain/clinic"
	"pet-clinic-analytics/internal/platform/logger"
)

const instrumentationName = "pet-clinic-analytics/internal/domain/analytics"

// Params son los parámetros opcionales de una métrica.
// Days sólo lo usa consultas_periodo; 0 significa "usar el default".
type Params struct {
	Days int
}

// ParseDays interpreta el query param `days`. Vacío devuelve 0 (default).
func ParseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: days must be a positive integer", ErrInvalidParams)
	}
	return n, nil
}

// Result es una entrada de un cálculo en lote: Payload o Err, nunca ambos.
type Result struct {
	Metric  string
	Payload Payload
	Err     error
}

type Service struct {
	gw       clinic.Gateway
	cfg      Config
	bucketer Bucketer
	proxy    ProxyCalculator
	log      logger.Logger
	now      func() time.Time

	tracer   trace.Tracer
	computed metric.Int64Counter
}

func NewService(gw clinic.Gateway, cfg Config, log logger.Logger) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxDays <= 0 {
		cfg.MaxDays = DefaultMaxDays
	}
	if log == nil {
		log = logger.NewNop()
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"analytics.computations",
		metric.WithDescription("Métricas calculadas, por nombre y resultado"),
	)
	if err != nil {
		counter, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("analytics.computations")
	}

	return &Service{
		gw:       gw,
		cfg:      cfg,
		bucketer: NewBucketer(cfg.Location, cfg.Locale).WithMaxDays(cfg.MaxDays),
		proxy:    NewProxyCalculator(cfg.ProcedurePrices, cfg.EncounterPrice),
		log:      log,
		now:      time.Now,
		tracer:   otel.Tracer(instrumentationName),
		computed: counter,
	}
}

// handler es el switch cerrado de métricas: cada Kind tiene exactamente un agregador.
func (s *Service) handler(k Kind) aggregator {
	switch k {
	case KindOverview:
		return s.overview
	case KindPeriodCounts:
		return s.periodCounts
	case KindSpeciesBreeds:
		return s.speciesBreeds
	case KindVetPerformance:
		return s.vetPerformance
	case KindProcedureTypes:
		return s.procedureTypes
	case KindProcedureRevenue:
		return s.procedureRevenue
	case KindVetRevenue:
		return s.vetRevenue
	case KindCustomerValue:
		return s.customerValue
	case KindRevenueTrend:
		return s.revenueTrend
	case KindLoyalty:
		return s.loyalty
	case KindAnimalHealth:
		return s.animalHealth
	case KindSummary:
		return s.summary
	}
	return nil
}

// ComputeByName resuelve el nombre del wire y calcula la métrica.
func (s *Service) ComputeByName(ctx context.Context, name string, p Params) (Payload, error) {
	k, err := ParseKind(name)
	if err != nil {
		s.log.Warn("unrecognized metric requested", map[string]any{"metric": name})
		return nil, err
	}
	return s.Compute(ctx, k, p)
}

// Compute corre el agregador de k dentro de un único snapshot del almacén.
// Los errores siempre salen como *MetricError con el nombre de la métrica.
func (s *Service) Compute(ctx context.Context, k Kind, p Params) (Payload, error) {
	name := k.String()
	agg := s.handler(k)
	if agg == nil {
		return nil, &MetricError{Metric: name, Err: ErrUnknownMetric}
	}
	if err := s.checkDays(p.Days); err != nil {
		return nil, &MetricError{Metric: name, Err: err}
	}

	ctx, span := s.tracer.Start(ctx, "analytics.compute", trace.WithAttributes(attribute.String("metric", name)))
	defer span.End()

	started := s.now()
	var payload Payload
	err := s.gw.Snapshot(ctx, func(r clinic.Reader) error {
		out, err := agg(ctx, r, started, p)
		if err != nil {
			return err
		}
		payload = out
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "metric failed")
		s.computed.Add(ctx, 1, metric.WithAttributes(attribute.String("metric", name), attribute.String("outcome", "error")))

		if errors.Is(err, ErrInvalidParams) {
			return nil, &MetricError{Metric: name, Err: err}
		}
		s.log.Error("metric computation failed", map[string]any{
			"metric": name,
			"error":  err,
		})
		return nil, &MetricError{Metric: name, Err: fmt.Errorf("%w: %v", ErrStoreUnavailable, err)}
	}

	s.computed.Add(ctx, 1, metric.WithAttributes(attribute.String("metric", name), attribute.String("outcome", "ok")))
	s.log.Debug("metric computed", map[string]any{
		"metric":     name,
		"elapsed_ms": s.now().Sub(started).Milliseconds(),
	})
	return payload, nil
}

// Batch calcula varias métricas en paralelo. Un fallo queda en su propio
// Result y no afecta a las demás; el orden de salida es el de entrada.
func (s *Service) Batch(ctx context.Context, names []string, p Params) []Result {
	out := make([]Result, len(names))

	var g errgroup.Group
	if s.cfg.BatchConcurrency > 0 {
		g.SetLimit(s.cfg.BatchConcurrency)
	}
	for i, name := range names {
		g.Go(func() error {
			payload, err := s.ComputeByName(ctx, name, p)
			out[i] = Result{Metric: name, Payload: payload, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// checkDays acepta 0 (default) y cualquier ventana hasta MaxDays.
func (s *Service) checkDays(days int) error {
	if days < 0 {
		return fmt.Errorf("%w: days must be a positive integer", ErrInvalidParams)
	}
	if days > s.cfg.MaxDays {
		return fmt.Errorf("%w: days must not exceed %d", ErrInvalidParams, s.cfg.MaxDays)
	}
	return nil
}

func (s *Service) days(p Params) int {
	if p.Days > 0 {
		return p.Days
	}
	return s.cfg.DefaultDays
}
