package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"clinical-records/internal/ports/audit"
)

// AuditRepo escribe la bitácora en la tabla historial.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) LogCreate(ctx context.Context, e audit.Entry) error {
	var datos []byte
	if e.Datos != nil {
		var err error
		datos, err = json.Marshal(e.Datos)
		if err != nil {
			return fmt.Errorf("marshal datos: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO historial (
			id_historial, usuario_id, tabla, descripcion, datos
		) VALUES ($1,$2,$3,$4,$5)
	`,
		uuid.NewString(),
		e.UsuarioID,
		e.Tabla,
		e.Descripcion,
		datos,
	)
	return err
}
