package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinical-records/internal/domain/patients"
)

var (
	ErrNotFound = errors.New("not found")
)

// PatientsRepo es la versión in-memory para dev y tests. Replica la
// semántica de unicidad del número de registro que en Postgres garantiza
// el constraint UNIQUE.
type PatientsRepo struct {
	mu         sync.RWMutex
	byID       map[string]patients.Patient
	refs       map[string]patients.FamilyReference // por paciente_id
	folders    map[string]patients.RecordFolder    // por paciente_id
	byRegistro map[string]string                   // numero_registro_medico -> id
}

func NewPatientsRepo() *PatientsRepo {
	return &PatientsRepo{
		byID:       make(map[string]patients.Patient),
		refs:       make(map[string]patients.FamilyReference),
		folders:    make(map[string]patients.RecordFolder),
		byRegistro: make(map[string]string),
	}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient, ref *patients.FamilyReference, folder *patients.RecordFolder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("paciente id requerido")
	}
	if _, exists := r.byRegistro[p.NumeroRegistro]; exists {
		return patients.ErrRegistroDuplicado
	}

	r.byID[p.ID] = p
	r.byRegistro[p.NumeroRegistro] = p.ID
	if ref != nil {
		r.refs[p.ID] = *ref
	}
	if folder != nil {
		r.folders[p.ID] = *folder
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *PatientsRepo) ExistsByRegistro(ctx context.Context, numero string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byRegistro[numero]
	return ok, nil
}

func (r *PatientsRepo) Search(ctx context.Context, term string, limit int) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(term)
	out := make([]patients.Patient, 0)
	for _, p := range r.byID {
		if term == "" || matches(p, term) {
			out = append(out, p)
		}
	}

	// created_at desc, nombres, apellidos: mismo orden que el adapter de Postgres.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		if out[i].Nombres != out[j].Nombres {
			return out[i].Nombres < out[j].Nombres
		}
		return out[i].Apellidos < out[j].Apellidos
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(p patients.Patient, term string) bool {
	return strings.Contains(strings.ToLower(p.Nombres), term) ||
		strings.Contains(strings.ToLower(p.Apellidos), term) ||
		strings.Contains(strings.ToLower(p.DPI), term) ||
		strings.Contains(strings.ToLower(p.NumeroRegistro), term)
}

// FamilyReferenceOf expone la referencia familiar creada junto al paciente
// (solo para asserts en tests).
func (r *PatientsRepo) FamilyReferenceOf(pacienteID string) (patients.FamilyReference, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.refs[pacienteID]
	return ref, ok
}

// RecordFolderOf expone el expediente creado junto al paciente.
func (r *PatientsRepo) RecordFolderOf(pacienteID string) (patients.RecordFolder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.folders[pacienteID]
	return f, ok
}

// Count devuelve el total de pacientes registrados.
func (r *PatientsRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}
