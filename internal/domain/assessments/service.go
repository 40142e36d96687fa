package assessments

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinical-records/internal/intake"
	"clinical-records/internal/ports/audit"
	"clinical-records/internal/ports/auth"
)

type Service struct {
	repo  Repository
	audit audit.Recorder
	log   zerolog.Logger
}

func NewService(repo Repository, rec audit.Recorder, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		audit: rec,
		log:   log,
	}
}

type CreateInput struct {
	PacienteID  string
	EnfermeraID string
	Fecha       string

	Peso        *float64
	Talla       *float64
	Pulso       *int
	Respiracion *int
	Temperatura *float64

	PresionArterial string
}

// Create registra una valoración. El id de la enfermera cae al principal
// autenticado si el request no lo trae; los vitales ausentes quedan NULL.
func (s *Service) Create(ctx context.Context, claims *auth.Claims, in CreateInput) (string, error) {
	enfermeraID, _ := intake.ResolveActor(claims, in.EnfermeraID, "")

	var req intake.Required
	req.Check("paciente_id", in.PacienteID)
	req.Check("enfermera_id", enfermeraID)
	if err := req.Err(); err != nil {
		return "", err
	}

	a := Assessment{
		ID:          uuid.NewString(),
		PacienteID:  strings.TrimSpace(in.PacienteID),
		EnfermeraID: enfermeraID,
		Fecha:       strings.TrimSpace(in.Fecha),

		Peso:        in.Peso,
		Talla:       in.Talla,
		Pulso:       in.Pulso,
		Respiracion: in.Respiracion,
		Temperatura: in.Temperatura,

		PresionArterial: strings.TrimSpace(in.PresionArterial),
		UsuarioRegistro: registrador(claims),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return "", err
	}

	if err := s.audit.LogCreate(ctx, audit.Entry{
		UsuarioID:   a.UsuarioRegistro,
		Tabla:       "valoracion",
		Descripcion: "Valoración creada para paciente " + a.PacienteID,
		Datos:       a,
	}); err != nil {
		s.log.Warn().Err(err).Str("valoracion_id", a.ID).Msg("registro en bitácora falló")
	}

	return a.ID, nil
}

func registrador(claims *auth.Claims) string {
	if claims == nil {
		return ""
	}
	return claims.UserID
}
