package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-clinic-analytics/internal/platform/logger"
)

// PayloadCache guarda respuestas ya serializadas. Puede ser nil (sin cache).
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type handlerDeps struct {
	svc   *Service
	cache PayloadCache
	log   logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, cache PayloadCache, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	h := handlerDeps{svc: svc, cache: cache, log: log}

	// Contrato que ya consume el dashboard: ?type=<métrica>&days=<n>
	r.Get("/dashboard-api", h.legacyHandler())
	r.Get("/dashboard-api/", h.legacyHandler())

	r.Route("/api/dashboard", func(dr chi.Router) {
		dr.Get("/", h.batchHandler())
		dr.Get("/{metric}", h.metricHandler())
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// legacyHandler godoc
// @Summary Métrica del dashboard (contrato legado)
// @Description Calcula una métrica por nombre. Sin `type` devuelve overview. `days` sólo aplica a consultas_periodo (default 7).
// @Tags dashboard
// @Produce json
// @Param type query string false "Nombre de la métrica (overview, consultas_periodo, especies_racas, ...)"
// @Param days query int false "Días hacia atrás para consultas_periodo"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorResponse "métrica desconocida / days inválido"
// @Failure 500 {object} errorResponse "error del almacén"
// @Router /dashboard-api/ [get]
func (h handlerDeps) legacyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("type"))
		if name == "" {
			name = KindOverview.String()
		}
		h.serveMetric(w, r, name)
	}
}

// metricHandler godoc
// @Summary Métrica del dashboard
// @Description Calcula una métrica del dashboard sobre un snapshot del almacén.
// @Tags dashboard
// @Produce json
// @Param metric path string true "Nombre de la métrica"
// @Param days query int false "Días hacia atrás para consultas_periodo"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorResponse "métrica desconocida / days inválido"
// @Failure 500 {object} errorResponse "error del almacén"
// @Router /api/dashboard/{metric} [get]
func (h handlerDeps) metricHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveMetric(w, r, chi.URLParam(r, "metric"))
	}
}

// batchHandler godoc
// @Summary Varias métricas en un request
// @Description Calcula en paralelo las métricas de `metrics` (separadas por coma). Cada métrica que falla trae su propio objeto de error; las demás no se ven afectadas.
// @Tags dashboard
// @Produce json
// @Param metrics query string true "Métricas separadas por coma"
// @Param days query int false "Días hacia atrás para consultas_periodo"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorResponse "metrics vacío / days inválido"
// @Router /api/dashboard [get]
func (h handlerDeps) batchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := splitMetrics(r.URL.Query().Get("metrics"))
		if len(names) == 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "metrics is required", Type: "batch"})
			return
		}

		days, err := ParseDays(r.URL.Query().Get("days"))
		if err == nil {
			err = h.svc.checkDays(days)
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Type: "batch"})
			return
		}

		out := make(map[string]any, len(names))
		for _, res := range h.svc.Batch(r.Context(), names, Params{Days: days}) {
			if res.Err != nil {
				_, body := errorBody(res.Metric, res.Err)
				out[res.Metric] = body
				continue
			}
			out[res.Metric] = res.Payload
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h handlerDeps) serveMetric(w http.ResponseWriter, r *http.Request, name string) {
	kind, err := ParseKind(name)
	if err != nil {
		h.log.Warn("unrecognized metric requested", map[string]any{"metric": name})
		status, body := errorBody(name, err)
		writeJSON(w, status, body)
		return
	}

	var p Params
	if kind == KindPeriodCounts {
		days, err := ParseDays(r.URL.Query().Get("days"))
		if err == nil {
			err = h.svc.checkDays(days)
		}
		if err != nil {
			status, body := errorBody(name, err)
			writeJSON(w, status, body)
			return
		}
		p.Days = h.svc.days(Params{Days: days})
	}

	key := cacheKey(kind, p)
	if cached, ok := h.fromCache(r.Context(), key); ok {
		writeRaw(w, http.StatusOK, cached)
		return
	}

	payload, err := h.svc.Compute(r.Context(), kind, p)
	if err != nil {
		status, body := errorBody(name, err)
		writeJSON(w, status, body)
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("encode metric payload", map[string]any{"metric": name, "error": err})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error computing metric", Type: name})
		return
	}
	h.toCache(r.Context(), key, raw)
	writeRaw(w, http.StatusOK, raw)
}

func (h handlerDeps) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.log.Warn("payload cache read failed", map[string]any{"key": key, "error": err})
		return nil, false
	}
	return raw, ok
}

func (h handlerDeps) toCache(ctx context.Context, key string, raw []byte) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, key, raw); err != nil {
		h.log.Warn("payload cache write failed", map[string]any{"key": key, "error": err})
	}
}

func cacheKey(k Kind, p Params) string {
	if k == KindPeriodCounts {
		return k.String() + ":" + strconv.Itoa(p.Days)
	}
	return k.String()
}

// errorBody traduce el error al status HTTP y al cuerpo {"error","type"}.
func errorBody(name string, err error) (int, errorResponse) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrUnknownMetric) || errors.Is(err, ErrInvalidParams) {
		status = http.StatusBadRequest
	}

	msg := "internal error computing metric"
	var me *MetricError
	if errors.As(err, &me) {
		msg = me.PublicMessage()
	} else if status == http.StatusBadRequest {
		msg = err.Error()
	}
	return status, errorResponse{Error: msg, Type: name}
}

func splitMetrics(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}
