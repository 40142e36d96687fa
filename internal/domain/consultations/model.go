package consultations

// Las fechas de consulta viajan como las mandó el formulario (YYYY-MM-DD);
// la base las castea a DATE. Solo la fecha de nacimiento del paciente se
// parsea en Go, porque de ella se deriva la edad.

// Initial representa una fila de consulta_inicial. Inmutable una vez creada:
// este módulo no expone update ni delete.
type Initial struct {
	ID         string
	PacienteID string
	MedicoID   string
	Fecha      string // fecha_consulta
	Medico     string // nombre para mostrar del médico examinador

	PrimerSintoma      string
	FechaPrimerSintoma string

	AntecedentesMedicos     string
	AntecedentesQuirurgicos string
	RevisionSistemas        string

	MenstruacionMenarca string
	MenstruacionUltima  string

	// Coercionados con fallback cero cuando no vienen o no parsean.
	Gravidez      int
	Partos        int
	Abortos       int
	HabitosTabaco int

	HabitosOtros     string
	HistoriaFamiliar string
	Diagnostico      string
	Tratamiento      string

	UsuarioRegistro string

	// Imagenes es la lista ordenada de URLs serializada a JSON;
	// nil cuando no hubo adjuntos (columna NULL, nunca "[]").
	Imagenes *string
}

// FollowUp representa una fila de consulta_seguimiento.
type FollowUp struct {
	ID         string
	PacienteID string
	MedicoID   string
	Fecha      string
	Medico     string

	Evolucion         string
	Notas             string
	TratamientoActual string

	UsuarioRegistro string
	Imagenes        *string
}
