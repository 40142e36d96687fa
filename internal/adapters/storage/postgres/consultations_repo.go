package postgres

import (
	"context"
	"database/sql"

	"clinical-records/internal/domain/consultations"
)

type ConsultationsRepo struct {
	db *sql.DB
}

func NewConsultationsRepo(db *sql.DB) *ConsultationsRepo {
	return &ConsultationsRepo{db: db}
}

// Las fechas van como string y la base las castea a DATE; un insert con
// fecha malformada falla y el handler lo reporta como error de servidor.

func (r *ConsultationsRepo) CreateInitial(ctx context.Context, c consultations.Initial) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consulta_inicial (
			id_consulta, paciente_id, medico_id, fecha_consulta, medico,
			primer_sintoma, fecha_primer_sintoma, antecedentes_medicos,
			antecedentes_quirurgicos, revision_sistemas, menstruacion_menarca,
			menstruacion_ultima, gravidez, partos, abortos,
			habitos_tabaco, habitos_otros, historia_familiar,
			diagnostico, tratamiento, usuario_registro, imagenes
		) VALUES ($1,$2,$3,$4::date,$5,$6,$7::date,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
	`,
		c.ID,
		c.PacienteID,
		c.MedicoID,
		c.Fecha,
		c.Medico,
		toNullString(c.PrimerSintoma),
		toNullString(c.FechaPrimerSintoma),
		toNullString(c.AntecedentesMedicos),
		toNullString(c.AntecedentesQuirurgicos),
		toNullString(c.RevisionSistemas),
		toNullString(c.MenstruacionMenarca),
		toNullString(c.MenstruacionUltima),
		c.Gravidez,
		c.Partos,
		c.Abortos,
		c.HabitosTabaco,
		toNullString(c.HabitosOtros),
		toNullString(c.HistoriaFamiliar),
		toNullString(c.Diagnostico),
		toNullString(c.Tratamiento),
		c.UsuarioRegistro,
		c.Imagenes,
	)
	return err
}

func (r *ConsultationsRepo) CreateFollowUp(ctx context.Context, f consultations.FollowUp) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consulta_seguimiento (
			id_seguimiento, paciente_id, medico_id, fecha, medico,
			evolucion, notas, tratamiento_actual, usuario_registro, imagenes
		) VALUES ($1,$2,$3,$4::date,$5,$6,$7,$8,$9,$10)
	`,
		f.ID,
		f.PacienteID,
		f.MedicoID,
		f.Fecha,
		f.Medico,
		toNullString(f.Evolucion),
		toNullString(f.Notas),
		toNullString(f.TratamientoActual),
		f.UsuarioRegistro,
		f.Imagenes,
	)
	return err
}
