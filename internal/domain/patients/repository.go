package patients

import "context"

type Repository interface {
	// Create inserta el paciente y, best-effort, la referencia familiar y el
	// expediente (pueden venir nil). El adapter envuelve todo en una
	// transacción; un fallo en las filas secundarias se traga y loguea, un
	// fallo en el paciente revierte todo.
	Create(ctx context.Context, p Patient, ref *FamilyReference, folder *RecordFolder) error

	GetByID(ctx context.Context, id string) (Patient, error)

	// ExistsByRegistro es el pre-chequeo de unicidad. Solo mejora el mensaje
	// de error: la garantía real es el constraint UNIQUE de la base, que el
	// adapter traduce a ErrRegistroDuplicado en Create.
	ExistsByRegistro(ctx context.Context, numero string) (bool, error)

	// Search filtra por substring sobre nombres, apellidos, dpi y número de
	// registro; sin término lista los más recientes. Máximo limit filas,
	// ordenadas por created_at desc, nombres, apellidos.
	Search(ctx context.Context, term string, limit int) ([]Patient, error)
}
