package assessments

// Assessment representa una fila de valoracion (signos vitales).
// Cada medición es independientemente opcional: puntero nil => columna NULL.
// Fecha es la fecha en que se tomaron los vitales (la pone el usuario);
// fecha_registro/created_at los pone la base al insertar.
type Assessment struct {
	ID          string
	PacienteID  string
	EnfermeraID string

	Fecha string // fecha_valoracion; "" => NULL

	Peso        *float64
	Talla       *float64
	Pulso       *int
	Respiracion *int
	Temperatura *float64

	PresionArterial string // "" => NULL

	UsuarioRegistro string
}
