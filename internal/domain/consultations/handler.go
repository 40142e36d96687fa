package consultations

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"clinical-records/internal/intake"
	"clinical-records/internal/middleware"
)

// maxFormMemory limita lo que ParseMultipartForm retiene en memoria;
// el resto va a disco temporal.
const maxFormMemory = 32 << 20

// maxFormImages acota imagenes_count: el valor viene del cliente y sin tope
// permitiría reservar un slice arbitrariamente grande con un request mínimo.
const maxFormImages = 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/consultas", func(cr chi.Router) {
		cr.Post("/inicial", createInitialHandler(svc))
		cr.Post("/seguimiento", createFollowUpHandler(svc))
	})
}

func createInitialHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Formulario inválido")
			return
		}

		in := InitialInput{
			PacienteID: r.FormValue("paciente_id"),
			MedicoID:   r.FormValue("medico_id"),
			Fecha:      r.FormValue("fecha_consulta"),
			Medico:     r.FormValue("medico"),

			PrimerSintoma:           r.FormValue("primer_sintoma"),
			FechaPrimerSintoma:      r.FormValue("fecha_primer_sintoma"),
			AntecedentesMedicos:     r.FormValue("antecedentes_medicos"),
			AntecedentesQuirurgicos: r.FormValue("antecedentes_quirurgicos"),
			RevisionSistemas:        r.FormValue("revision_sistemas"),
			MenstruacionMenarca:     r.FormValue("menstruacion_menarca"),
			MenstruacionUltima:      r.FormValue("menstruacion_ultima"),

			Gravidez:      r.FormValue("gravidez"),
			Partos:        r.FormValue("partos"),
			Abortos:       r.FormValue("abortos"),
			HabitosTabaco: r.FormValue("habitos_tabaco"),

			HabitosOtros:     r.FormValue("habitos_otros"),
			HistoriaFamiliar: r.FormValue("historia_familiar"),
			Diagnostico:      r.FormValue("diagnostico"),
			Tratamiento:      r.FormValue("tratamiento"),

			Imagenes: formImages(r),
		}

		id, err := svc.CreateInitial(r.Context(), &claims, in)
		if err != nil {
			writeIntakeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"id_consulta": id,
			"id":          id,
			"message":     "Consulta inicial creada exitosamente",
		})
	}
}

func createFollowUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Formulario inválido")
			return
		}

		in := FollowUpInput{
			PacienteID: r.FormValue("paciente_id"),
			MedicoID:   r.FormValue("medico_id"),
			Fecha:      r.FormValue("fecha"),
			Medico:     r.FormValue("medico"),

			Evolucion:         r.FormValue("evolucion"),
			Notas:             r.FormValue("notas"),
			TratamientoActual: r.FormValue("tratamiento_actual"),

			Imagenes: formImages(r),
		}

		id, err := svc.CreateFollowUp(r.Context(), &claims, in)
		if err != nil {
			writeIntakeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"id_seguimiento": id,
			"message":        "Consulta de seguimiento creada exitosamente",
		})
	}
}

// formImages arma la lista de adjuntos según el sub-protocolo imagenes_count +
// imagen_0..imagen_{n-1}. Índices sin archivo quedan nil (se saltan después);
// el count es cota superior y se recorta a maxFormImages.
func formImages(r *http.Request) []*multipart.FileHeader {
	count, _ := strconv.Atoi(r.FormValue("imagenes_count"))
	if count <= 0 || r.MultipartForm == nil {
		return nil
	}
	if count > maxFormImages {
		count = maxFormImages
	}

	files := make([]*multipart.FileHeader, count)
	for i := 0; i < count; i++ {
		if fhs := r.MultipartForm.File[fmt.Sprintf("imagen_%d", i)]; len(fhs) > 0 {
			files[i] = fhs[0]
		}
	}
	return files
}

// writeIntakeError traduce los errores de la tubería de ingreso a la
// respuesta HTTP con los mensajes que espera el frontend.
func writeIntakeError(w http.ResponseWriter, err error) {
	var (
		missing    *intake.MissingFieldsError
		badType    *intake.ImageTypeError
		tooBig     *intake.ImageSizeError
		uploadFail *intake.ImageUploadError
	)

	switch {
	case errors.As(err, &missing):
		writeError(w, http.StatusBadRequest,
			"Faltan campos requeridos: "+strings.Join(missing.Fields, ", "))
	case errors.As(err, &badType):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Tipo de archivo no permitido para la imagen %d. Solo se permiten JPG, PNG, GIF, WEBP.", badType.Index+1))
	case errors.As(err, &tooBig):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("El archivo %s es demasiado grande. Máximo 5MB.", tooBig.Filename))
	case errors.As(err, &uploadFail):
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Error al subir la imagen %s", uploadFail.Filename))
	default:
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
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
