package assessments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"clinical-records/internal/intake"
	"clinical-records/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/valoraciones", createAssessmentHandler(svc))
}

type createAssessmentRequest struct {
	PacienteID  string `json:"paciente_id"`
	EnfermeraID string `json:"enfermera_id"`
	Fecha       string `json:"fecha_valoracion"`

	Peso        *float64 `json:"peso"`
	Talla       *float64 `json:"talla"`
	Pulso       *int     `json:"pulso"`
	Respiracion *int     `json:"respiracion"`
	Temperatura *float64 `json:"temperatura"`

	PresionArterial string `json:"presion_arterial"`
}

func createAssessmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		var req createAssessmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		id, err := svc.Create(r.Context(), &claims, CreateInput{
			PacienteID:  req.PacienteID,
			EnfermeraID: req.EnfermeraID,
			Fecha:       req.Fecha,

			Peso:        req.Peso,
			Talla:       req.Talla,
			Pulso:       req.Pulso,
			Respiracion: req.Respiracion,
			Temperatura: req.Temperatura,

			PresionArterial: req.PresionArterial,
		})
		if err != nil {
			var missing *intake.MissingFieldsError
			if errors.As(err, &missing) {
				writeError(w, http.StatusBadRequest,
					"Faltan campos requeridos: "+strings.Join(missing.Fields, ", "))
				return
			}
			writeError(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"id_valoracion": id,
			"message":       "Valoración creada exitosamente",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
