package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"clinical-records/internal/intake"
	"clinical-records/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pacientes", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))
	})
}

// createPatientRequest usa las llaves camelCase que manda el formulario de alta.
type createPatientRequest struct {
	Nombres          string `json:"nombres"`
	Apellidos        string `json:"apellidos"`
	DPI              string `json:"dpi"`
	NumeroExpediente string `json:"numeroExpediente"`
	FechaNacimiento  string `json:"fechaNacimiento"`
	Sexo             string `json:"sexo"`

	Telefono          string `json:"telefono"`
	CorreoElectronico string `json:"correoElectronico"`
	Direccion         string `json:"direccion"`
	LugarNacimiento   string `json:"lugarNacimiento"`
	EstadoCivil       string `json:"estadoCivil"`
	Ocupacion         string `json:"ocupacion"`
	Raza              string `json:"raza"`
	Conyuge           string `json:"conyuge"`
	PadreMadre        string `json:"padreMadre"`
	LugarTrabajo      string `json:"lugarTrabajo"`

	NombreResponsable   string `json:"nombreResponsable"`
	TelefonoResponsable string `json:"telefonoResponsable"`
}

// patientResponse refleja la fila pacientes con sus nombres de columna.
type patientResponse struct {
	ID             string `json:"id_paciente"`
	Nombres        string `json:"nombres"`
	Apellidos      string `json:"apellidos"`
	NumeroRegistro string `json:"numero_registro_medico"`
	DPI            string `json:"dpi,omitempty"`
	Edad           int    `json:"edad"`
	Sexo           string `json:"sexo"`

	Telefono          string `json:"telefono,omitempty"`
	CorreoElectronico string `json:"correo_electronico,omitempty"`
	Direccion         string `json:"direccion,omitempty"`
	FechaNacimiento   string `json:"fecha_nacimiento,omitempty"`
	LugarNacimiento   string `json:"lugar_nacimiento,omitempty"`
	EstadoCivil       string `json:"estado_civil,omitempty"`
	Ocupacion         string `json:"ocupacion,omitempty"`
	Raza              string `json:"raza,omitempty"`
	Conyuge           string `json:"conyuge,omitempty"`
	PadreMadre        string `json:"padre_madre,omitempty"`
	LugarTrabajo      string `json:"lugar_trabajo,omitempty"`

	NombreResponsable   string `json:"nombre_responsable,omitempty"`
	TelefonoResponsable string `json:"telefono_responsable,omitempty"`

	UsuarioRegistro string    `json:"usuario_registro"`
	FechaRegistro   time.Time `json:"fecha_registro"`
	CreatedAt       time.Time `json:"created_at"`
}

// listPatientResponse es el subconjunto de columnas que devuelve el listado.
type listPatientResponse struct {
	ID              string    `json:"id_paciente"`
	NumeroRegistro  string    `json:"numero_registro_medico"`
	Nombres         string    `json:"nombres"`
	Apellidos       string    `json:"apellidos"`
	DPI             string    `json:"dpi,omitempty"`
	Telefono        string    `json:"telefono,omitempty"`
	Correo          string    `json:"correo_electronico,omitempty"`
	Sexo            string    `json:"sexo"`
	FechaNacimiento string    `json:"fecha_nacimiento,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Nombres:          req.Nombres,
			Apellidos:        req.Apellidos,
			DPI:              req.DPI,
			NumeroExpediente: req.NumeroExpediente,
			FechaNacimiento:  req.FechaNacimiento,
			Sexo:             req.Sexo,

			Telefono:          req.Telefono,
			CorreoElectronico: req.CorreoElectronico,
			Direccion:         req.Direccion,
			LugarNacimiento:   req.LugarNacimiento,
			EstadoCivil:       req.EstadoCivil,
			Ocupacion:         req.Ocupacion,
			Raza:              req.Raza,
			Conyuge:           req.Conyuge,
			PadreMadre:        req.PadreMadre,
			LugarTrabajo:      req.LugarTrabajo,

			NombreResponsable:   req.NombreResponsable,
			TelefonoResponsable: req.TelefonoResponsable,
		})
		if err != nil {
			var missing *intake.MissingFieldsError
			switch {
			case errors.As(err, &missing):
				writeError(w, http.StatusBadRequest,
					"Faltan campos requeridos: "+strings.Join(missing.Fields, ", "))
			case errors.Is(err, ErrRegistroDuplicado):
				writeError(w, http.StatusBadRequest,
					"El número de expediente "+strings.TrimSpace(req.NumeroExpediente)+" ya está en uso. Por favor, use otro número.")
			default:
				writeError(w, http.StatusInternalServerError, "Error interno del servidor")
			}
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message":  "Paciente registrado exitosamente",
			"paciente": toPatientResponse(p),
		})
	}
}

func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		items, err := svc.Search(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}

		out := make([]listPatientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, listPatientResponse{
				ID:              p.ID,
				NumeroRegistro:  p.NumeroRegistro,
				Nombres:         p.Nombres,
				Apellidos:       p.Apellidos,
				DPI:             p.DPI,
				Telefono:        p.Telefono,
				Correo:          p.CorreoElectronico,
				Sexo:            p.Sexo,
				FechaNacimiento: formatFecha(p.FechaNacimiento),
				CreatedAt:       p.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, map[string]any{"pacientes": out})
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:             p.ID,
		Nombres:        p.Nombres,
		Apellidos:      p.Apellidos,
		NumeroRegistro: p.NumeroRegistro,
		DPI:            p.DPI,
		Edad:           p.Edad,
		Sexo:           p.Sexo,

		Telefono:          p.Telefono,
		CorreoElectronico: p.CorreoElectronico,
		Direccion:         p.Direccion,
		FechaNacimiento:   formatFecha(p.FechaNacimiento),
		LugarNacimiento:   p.LugarNacimiento,
		EstadoCivil:       p.EstadoCivil,
		Ocupacion:         p.Ocupacion,
		Raza:              p.Raza,
		Conyuge:           p.Conyuge,
		PadreMadre:        p.PadreMadre,
		LugarTrabajo:      p.LugarTrabajo,

		NombreResponsable:   p.NombreResponsable,
		TelefonoResponsable: p.TelefonoResponsable,

		UsuarioRegistro: p.UsuarioRegistro,
		FechaRegistro:   p.FechaRegistro,
		CreatedAt:       p.CreatedAt,
	}
}

func formatFecha(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// writeJSON/writeError están duplicados a propósito en los handlers de cada
// módulo (pacientes/consultas/valoraciones) para no crear helpers compartidos
// antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
