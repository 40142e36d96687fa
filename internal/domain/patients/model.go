package patients

import "time"

// Patient representa una fila de la tabla pacientes.
// Los campos opcionales quedan "" en memoria y NULL en la base.
type Patient struct {
	ID             string
	Nombres        string
	Apellidos      string
	NumeroRegistro string // numero_registro_medico, único entre todos los pacientes
	DPI            string
	Edad           int // derivada de la fecha de nacimiento al momento del alta
	Sexo           string

	Telefono          string
	CorreoElectronico string
	Direccion         string

	// FechaNacimiento es solo fecha; si vino con hora se trunca antes de guardar.
	// nil cuando la fecha recibida no parseó (la edad queda en cero).
	FechaNacimiento *time.Time

	LugarNacimiento string
	EstadoCivil     string
	Ocupacion       string
	Raza            string
	Conyuge         string
	PadreMadre      string
	LugarTrabajo    string

	NombreResponsable   string
	TelefonoResponsable string

	UsuarioRegistro string // registrador (principal autenticado)
	FechaRegistro   time.Time
	CreatedAt       time.Time
}

// FamilyReference es la fila secundaria referencia_familiar que se crea
// junto al paciente cuando viene nombre o teléfono del responsable.
type FamilyReference struct {
	ID         string
	PacienteID string
	Nombre     string
	Parentesco string
	Telefono   string
}

// RecordFolder es el expediente que se abre junto al paciente.
type RecordFolder struct {
	ID              string
	PacienteID      string
	FechaCreacion   time.Time
	UsuarioCreacion string
}
