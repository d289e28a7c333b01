package tips

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/tips/random", randomTipHandler(svc))
}

type tipResponse struct {
	Tip string `json:"tip"`
}

// randomTipHandler godoc
// @Summary Dica aleatoria de cuidados con mascotas
// @Description Devuelve la dica vigente. La misma dica se mantiene durante el TTL configurado (5s por defecto).
// @Tags tips
// @Produce json
// @Success 200 {object} tipResponse
// @Router /api/tips/random [get]
func randomTipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		writeJSON(w, http.StatusOK, tipResponse{Tip: svc.Current()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
