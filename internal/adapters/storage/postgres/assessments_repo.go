package postgres

import (
	"context"
	"database/sql"

	"clinical-records/internal/domain/assessments"
)

type AssessmentsRepo struct {
	db *sql.DB
}

func NewAssessmentsRepo(db *sql.DB) *AssessmentsRepo {
	return &AssessmentsRepo{db: db}
}

// fecha_registro y created_at los pone la base; fecha_valoracion es la que
// mandó el usuario (cuándo se tomaron los vitales) y puede ser NULL.
func (r *AssessmentsRepo) Create(ctx context.Context, a assessments.Assessment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO valoracion (
			id_valoracion, paciente_id, enfermera_id, fecha_valoracion,
			peso, talla, pulso, respiracion, presion_arterial, temperatura,
			usuario_registro
		) VALUES ($1,$2,$3,$4::date,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.PacienteID,
		a.EnfermeraID,
		toNullString(a.Fecha),
		a.Peso,
		a.Talla,
		a.Pulso,
		a.Respiracion,
		toNullString(a.PresionArterial),
		a.Temperatura,
		a.UsuarioRegistro,
	)
	return err
}
