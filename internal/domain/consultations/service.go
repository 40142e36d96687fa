package consultations

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinical-records/internal/intake"
	"clinical-records/internal/ports/audit"
	"clinical-records/internal/ports/auth"
	"clinical-records/internal/ports/objectstore"
)

// Carpetas del object store, una por tipo de consulta.
const (
	folderInicial     = "consultas/inicial"
	folderSeguimiento = "consultas/seguimiento"
)

type Service struct {
	repo  Repository
	store objectstore.Uploader
	audit audit.Recorder
	log   zerolog.Logger
}

func NewService(repo Repository, store objectstore.Uploader, rec audit.Recorder, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		store: store,
		audit: rec,
		log:   log,
	}
}

type InitialInput struct {
	PacienteID string
	MedicoID   string
	Fecha      string
	Medico     string

	PrimerSintoma           string
	FechaPrimerSintoma      string
	AntecedentesMedicos     string
	AntecedentesQuirurgicos string
	RevisionSistemas        string
	MenstruacionMenarca     string
	MenstruacionUltima      string

	Gravidez      string
	Partos        string
	Abortos       string
	HabitosTabaco string

	HabitosOtros     string
	HistoriaFamiliar string
	Diagnostico      string
	Tratamiento      string

	Imagenes []*multipart.FileHeader
}

// CreateInitial corre la tubería completa para una consulta inicial:
// resolución del actor, requeridos, ingesta de imágenes, id nuevo e insert.
func (s *Service) CreateInitial(ctx context.Context, claims *auth.Claims, in InitialInput) (string, error) {
	medicoID, medico := intake.ResolveActor(claims, in.MedicoID, in.Medico)

	var req intake.Required
	req.Check("paciente_id", in.PacienteID)
	req.Check("medico_id", medicoID)
	req.Check("fecha_consulta", in.Fecha)
	req.Check("medico", medico)
	if err := req.Err(); err != nil {
		return "", err
	}

	urls, err := intake.Ingest(ctx, s.store, folderInicial, in.Imagenes)
	if err != nil {
		return "", err
	}
	imagenes, err := intake.MarshalURLs(urls)
	if err != nil {
		return "", err
	}

	c := Initial{
		ID:         uuid.NewString(),
		PacienteID: strings.TrimSpace(in.PacienteID),
		MedicoID:   medicoID,
		Fecha:      strings.TrimSpace(in.Fecha),
		Medico:     medico,

		PrimerSintoma:      strings.TrimSpace(in.PrimerSintoma),
		FechaPrimerSintoma: strings.TrimSpace(in.FechaPrimerSintoma),

		AntecedentesMedicos:     strings.TrimSpace(in.AntecedentesMedicos),
		AntecedentesQuirurgicos: strings.TrimSpace(in.AntecedentesQuirurgicos),
		RevisionSistemas:        strings.TrimSpace(in.RevisionSistemas),

		MenstruacionMenarca: strings.TrimSpace(in.MenstruacionMenarca),
		MenstruacionUltima:  strings.TrimSpace(in.MenstruacionUltima),

		Gravidez:      intake.IntOrZero(in.Gravidez),
		Partos:        intake.IntOrZero(in.Partos),
		Abortos:       intake.IntOrZero(in.Abortos),
		HabitosTabaco: intake.IntOrZero(in.HabitosTabaco),

		HabitosOtros:     strings.TrimSpace(in.HabitosOtros),
		HistoriaFamiliar: strings.TrimSpace(in.HistoriaFamiliar),
		Diagnostico:      strings.TrimSpace(in.Diagnostico),
		Tratamiento:      strings.TrimSpace(in.Tratamiento),

		UsuarioRegistro: registrador(claims),
		Imagenes:        imagenes,
	}

	if err := s.repo.CreateInitial(ctx, c); err != nil {
		return "", err
	}

	s.logCreate(ctx, c.UsuarioRegistro, "consulta_inicial",
		"Consulta inicial creada para paciente "+c.PacienteID, c)

	return c.ID, nil
}

type FollowUpInput struct {
	PacienteID string
	MedicoID   string
	Fecha      string
	Medico     string

	Evolucion         string
	Notas             string
	TratamientoActual string

	Imagenes []*multipart.FileHeader
}

// CreateFollowUp corre la misma tubería para un seguimiento.
func (s *Service) CreateFollowUp(ctx context.Context, claims *auth.Claims, in FollowUpInput) (string, error) {
	medicoID, medico := intake.ResolveActor(claims, in.MedicoID, in.Medico)

	var req intake.Required
	req.Check("paciente_id", in.PacienteID)
	req.Check("medico_id", medicoID)
	req.Check("fecha", in.Fecha)
	req.Check("medico", medico)
	if err := req.Err(); err != nil {
		return "", err
	}

	urls, err := intake.Ingest(ctx, s.store, folderSeguimiento, in.Imagenes)
	if err != nil {
		return "", err
	}
	imagenes, err := intake.MarshalURLs(urls)
	if err != nil {
		return "", err
	}

	f := FollowUp{
		ID:         uuid.NewString(),
		PacienteID: strings.TrimSpace(in.PacienteID),
		MedicoID:   medicoID,
		Fecha:      strings.TrimSpace(in.Fecha),
		Medico:     medico,

		Evolucion:         strings.TrimSpace(in.Evolucion),
		Notas:             strings.TrimSpace(in.Notas),
		TratamientoActual: strings.TrimSpace(in.TratamientoActual),

		UsuarioRegistro: registrador(claims),
		Imagenes:        imagenes,
	}

	if err := s.repo.CreateFollowUp(ctx, f); err != nil {
		return "", err
	}

	s.logCreate(ctx, f.UsuarioRegistro, "consulta_seguimiento",
		"Consulta de seguimiento creada para paciente "+f.PacienteID, f)

	return f.ID, nil
}

func (s *Service) logCreate(ctx context.Context, usuarioID, tabla, descripcion string, datos any) {
	if err := s.audit.LogCreate(ctx, audit.Entry{
		UsuarioID:   usuarioID,
		Tabla:       tabla,
		Descripcion: descripcion,
		Datos:       datos,
	}); err != nil {
		s.log.Warn().Err(err).Str("tabla", tabla).Msg("registro en bitácora falló")
	}
}

func registrador(claims *auth.Claims) string {
	if claims == nil {
		return ""
	}
	return claims.UserID
}
