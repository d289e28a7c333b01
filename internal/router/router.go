package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-clinic-analytics/docs"
	"pet-clinic-analytics/internal/domain/analytics"
	"pet-clinic-analytics/internal/domain/clinic"
	"pet-clinic-analytics/internal/domain/tips"
	"pet-clinic-analytics/internal/middleware"
	"pet-clinic-analytics/internal/platform/logger"
)

type Options struct {
	// Gateway es el almacén de registros (Postgres o memoria).
	Gateway   clinic.Gateway
	Analytics analytics.Config

	Tips  *tips.Service          // nil = tips por defecto
	Cache analytics.PayloadCache // puede ser nil (sin cache)

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Services por módulo
	analyticsSvc := analytics.NewService(opts.Gateway, opts.Analytics, log.With(map[string]any{"module": "analytics"}))
	tipsSvc := opts.Tips
	if tipsSvc == nil {
		tipsSvc = tips.NewService(tips.DefaultTips, tips.DefaultTTL)
	}

	// Rutas por módulo
	analytics.RegisterRoutes(r, analyticsSvc, opts.Cache, log)
	tips.RegisterRoutes(r, tipsSvc)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
