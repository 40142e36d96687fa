package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"clinical-records/internal/domain/patients"
)

type PatientsRepo struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewPatientsRepo(db *sql.DB, log zerolog.Logger) *PatientsRepo {
	return &PatientsRepo{db: db, log: log}
}

const patientColumns = `
	id_paciente, nombres, apellidos, numero_registro_medico, dpi, edad, sexo,
	telefono, correo_electronico, direccion, fecha_nacimiento, lugar_nacimiento,
	estado_civil, ocupacion, raza, conyuge, padre_madre, lugar_trabajo,
	nombre_responsable, telefono_responsable, usuario_registro, fecha_registro, created_at`

// Create inserta el paciente y sus filas secundarias en una transacción.
// Las secundarias van bajo SAVEPOINT: su fallo (p.ej. tabla ausente) se
// revierte solo a ellas, se loguea y la transacción sigue. Cualquier otro
// fallo revierte todo.
func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient, ref *patients.FamilyReference, folder *patients.RecordFolder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pacientes (
			id_paciente, nombres, apellidos, numero_registro_medico, dpi, edad, sexo,
			telefono, correo_electronico, direccion, fecha_nacimiento, lugar_nacimiento,
			estado_civil, ocupacion, raza, conyuge, padre_madre, lugar_trabajo,
			nombre_responsable, telefono_responsable, usuario_registro, fecha_registro, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
	`,
		p.ID,
		p.Nombres,
		p.Apellidos,
		p.NumeroRegistro,
		toNullString(p.DPI),
		p.Edad,
		p.Sexo,
		toNullString(p.Telefono),
		toNullString(p.CorreoElectronico),
		toNullString(p.Direccion),
		toNullDate(p.FechaNacimiento),
		toNullString(p.LugarNacimiento),
		toNullString(p.EstadoCivil),
		toNullString(p.Ocupacion),
		toNullString(p.Raza),
		toNullString(p.Conyuge),
		toNullString(p.PadreMadre),
		toNullString(p.LugarTrabajo),
		toNullString(p.NombreResponsable),
		toNullString(p.TelefonoResponsable),
		p.UsuarioRegistro,
		p.FechaRegistro,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El constraint UNIQUE sobre numero_registro_medico es la garantía
			// real de unicidad; el pre-chequeo del service solo mejora el mensaje.
			return patients.ErrRegistroDuplicado
		}
		return fmt.Errorf("insert paciente: %w", err)
	}

	if ref != nil {
		if err := r.bestEffortInsert(ctx, tx, "referencia_familiar", `
			INSERT INTO referencia_familiar (
				id_referencia, paciente_id, nombre_referencia, parentesco, telefono
			) VALUES ($1,$2,$3,$4,$5)
		`, ref.ID, ref.PacienteID, ref.Nombre, ref.Parentesco, toNullString(ref.Telefono)); err != nil {
			return err
		}
	}

	if folder != nil {
		if err := r.bestEffortInsert(ctx, tx, "expediente", `
			INSERT INTO expediente (
				id_expediente, paciente_id, fecha_creacion, usuario_creacion
			) VALUES ($1,$2,$3,$4)
		`, folder.ID, folder.PacienteID, folder.FechaCreacion, folder.UsuarioCreacion); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// bestEffortInsert corre el insert bajo un SAVEPOINT. En Postgres un error
// dentro de una transacción la aborta entera, así que el rollback parcial al
// savepoint es lo que permite tragarse el fallo y seguir.
func (r *PatientsRepo) bestEffortInsert(ctx context.Context, tx *sql.Tx, tabla, query string, args ...any) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT secundaria"); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.log.Warn().Err(err).Str("tabla", tabla).Msg("insert secundario falló, se omite")
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT secundaria"); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %w", rbErr)
		}
		return nil
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT secundaria"); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM pacientes WHERE id_paciente = $1`, id)

	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return patients.Patient{}, ErrNotFound
	}
	return p, err
}

func (r *PatientsRepo) ExistsByRegistro(ctx context.Context, numero string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pacientes WHERE numero_registro_medico = $1)`,
		numero,
	).Scan(&exists)
	return exists, err
}

func (r *PatientsRepo) Search(ctx context.Context, term string, limit int) ([]patients.Patient, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + patientColumns + ` FROM pacientes`)

	args := []any{}
	if term != "" {
		sb.WriteString(`
			WHERE nombres ILIKE $1
			OR apellidos ILIKE $1
			OR dpi ILIKE $1
			OR numero_registro_medico ILIKE $1`)
		args = append(args, "%"+term+"%")
	}

	if limit <= 0 {
		limit = 50
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, nombres, apellidos LIMIT $%d", len(args)+1))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var (
		dpi, telefono, correo, direccion       sql.NullString
		lugarNac, estadoCivil, ocupacion, raza sql.NullString
		conyuge, padreMadre, lugarTrabajo      sql.NullString
		nomResp, telResp                       sql.NullString
		fechaNac                               sql.NullTime
	)

	if err := row.Scan(
		&p.ID,
		&p.Nombres,
		&p.Apellidos,
		&p.NumeroRegistro,
		&dpi,
		&p.Edad,
		&p.Sexo,
		&telefono,
		&correo,
		&direccion,
		&fechaNac,
		&lugarNac,
		&estadoCivil,
		&ocupacion,
		&raza,
		&conyuge,
		&padreMadre,
		&lugarTrabajo,
		&nomResp,
		&telResp,
		&p.UsuarioRegistro,
		&p.FechaRegistro,
		&p.CreatedAt,
	); err != nil {
		return patients.Patient{}, err
	}

	p.DPI = dpi.String
	p.Telefono = telefono.String
	p.CorreoElectronico = correo.String
	p.Direccion = direccion.String
	p.LugarNacimiento = lugarNac.String
	p.EstadoCivil = estadoCivil.String
	p.Ocupacion = ocupacion.String
	p.Raza = raza.String
	p.Conyuge = conyuge.String
	p.PadreMadre = padreMadre.String
	p.LugarTrabajo = lugarTrabajo.String
	p.NombreResponsable = nomResp.String
	p.TelefonoResponsable = telResp.String

	if fechaNac.Valid {
		t := fechaNac.Time
		p.FechaNacimiento = &t
	}

	return p, nil
}
