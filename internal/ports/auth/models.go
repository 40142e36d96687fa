package auth

// Claims representa la identidad extraída del token de sesión.
// Nombres/Apellidos sirven como fallback para el nombre del actor
// (médico/enfermera) cuando el formulario no lo trae.
type Claims struct {
	UserID    string
	Nombres   string
	Apellidos string
	Email     string
	Rol       string
}
