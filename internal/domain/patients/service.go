package patients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinical-records/internal/intake"
	"clinical-records/internal/ports/audit"
)

var (
	// ErrRegistroDuplicado: ya existe un paciente con ese número de registro.
	ErrRegistroDuplicado = errors.New("numero de registro duplicado")
)

const searchLimit = 50

type Service struct {
	repo  Repository
	audit audit.Recorder
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(repo Repository, rec audit.Recorder, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		audit: rec,
		log:   log,
		now:   time.Now,
	}
}

type CreateInput struct {
	Nombres          string
	Apellidos        string
	DPI              string
	NumeroExpediente string
	FechaNacimiento  string
	Sexo             string

	Telefono          string
	CorreoElectronico string
	Direccion         string
	LugarNacimiento   string
	EstadoCivil       string
	Ocupacion         string
	Raza              string
	Conyuge           string
	PadreMadre        string
	LugarTrabajo      string

	NombreResponsable   string
	TelefonoResponsable string
}

// Create da de alta un paciente: valida requeridos (lista completa de
// faltantes), chequea el número de registro, deriva la edad y persiste el
// paciente con sus filas secundarias en una transacción. Tras el commit
// registra la bitácora best-effort.
func (s *Service) Create(ctx context.Context, usuarioID string, in CreateInput) (Patient, error) {
	var req intake.Required
	req.Check("nombres", in.Nombres)
	req.Check("apellidos", in.Apellidos)
	req.Check("numeroExpediente", in.NumeroExpediente)
	req.Check("fechaNacimiento", in.FechaNacimiento)
	req.Check("sexo", in.Sexo)
	if err := req.Err(); err != nil {
		return Patient{}, err
	}

	numero := strings.TrimSpace(in.NumeroExpediente)

	exists, err := s.repo.ExistsByRegistro(ctx, numero)
	if err != nil {
		return Patient{}, err
	}
	if exists {
		return Patient{}, ErrRegistroDuplicado
	}

	now := s.now()
	fechaNac := parseFechaNacimiento(in.FechaNacimiento)

	p := Patient{
		ID:             uuid.NewString(),
		Nombres:        strings.TrimSpace(in.Nombres),
		Apellidos:      strings.TrimSpace(in.Apellidos),
		NumeroRegistro: numero,
		DPI:            strings.TrimSpace(in.DPI),
		Edad:           edad(fechaNac, now),
		Sexo:           strings.TrimSpace(in.Sexo),

		Telefono:          strings.TrimSpace(in.Telefono),
		CorreoElectronico: strings.TrimSpace(in.CorreoElectronico),
		Direccion:         strings.TrimSpace(in.Direccion),
		FechaNacimiento:   fechaNac,
		LugarNacimiento:   strings.TrimSpace(in.LugarNacimiento),
		EstadoCivil:       strings.TrimSpace(in.EstadoCivil),
		Ocupacion:         strings.TrimSpace(in.Ocupacion),
		Raza:              strings.TrimSpace(in.Raza),
		Conyuge:           strings.TrimSpace(in.Conyuge),
		PadreMadre:        strings.TrimSpace(in.PadreMadre),
		LugarTrabajo:      strings.TrimSpace(in.LugarTrabajo),

		NombreResponsable:   strings.TrimSpace(in.NombreResponsable),
		TelefonoResponsable: strings.TrimSpace(in.TelefonoResponsable),

		UsuarioRegistro: usuarioID,
		FechaRegistro:   now,
		CreatedAt:       now,
	}

	var ref *FamilyReference
	if p.NombreResponsable != "" || p.TelefonoResponsable != "" {
		ref = &FamilyReference{
			ID:         uuid.NewString(),
			PacienteID: p.ID,
			Nombre:     p.NombreResponsable,
			Parentesco: "Responsable",
			Telefono:   p.TelefonoResponsable,
		}
	}

	folder := &RecordFolder{
		ID:              uuid.NewString(),
		PacienteID:      p.ID,
		FechaCreacion:   now,
		UsuarioCreacion: usuarioID,
	}

	if err := s.repo.Create(ctx, p, ref, folder); err != nil {
		return Patient{}, err
	}

	created, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		// El commit ya pasó; devolvemos lo que construimos.
		s.log.Warn().Err(err).Str("paciente_id", p.ID).Msg("relectura de paciente falló")
		created = p
	}

	// Bitácora fuera de la transacción: su fallo nunca revierte el alta.
	if err := s.audit.LogCreate(ctx, audit.Entry{
		UsuarioID:   usuarioID,
		Tabla:       "pacientes",
		Descripcion: "Nuevo paciente registrado: " + p.Nombres + " " + p.Apellidos + " (" + numero + ")",
		Datos:       created,
	}); err != nil {
		s.log.Warn().Err(err).Str("paciente_id", p.ID).Msg("registro en bitácora falló")
	}

	return created, nil
}

// Search devuelve hasta 50 pacientes, los más recientes primero.
func (s *Service) Search(ctx context.Context, term string) ([]Patient, error) {
	return s.repo.Search(ctx, strings.TrimSpace(term), searchLimit)
}

// parseFechaNacimiento acepta YYYY-MM-DD o un timestamp RFC3339, truncado a
// solo fecha. Devuelve nil si no parsea; el alta sigue con edad cero.
func parseFechaNacimiento(s string) *time.Time {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// edad: resta de años calendario con corrección por mes/día (se resta uno si
// el mes/día actual precede al de nacimiento).
func edad(fechaNac *time.Time, hoy time.Time) int {
	if fechaNac == nil {
		return 0
	}
	years := hoy.Year() - fechaNac.Year()
	if hoy.Month() < fechaNac.Month() ||
		(hoy.Month() == fechaNac.Month() && hoy.Day() < fechaNac.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
