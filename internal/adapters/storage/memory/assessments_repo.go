package memory

import (
	"context"
	"sync"

	"clinical-records/internal/domain/assessments"
)

// AssessmentsRepo guarda valoraciones de signos vitales en memoria.
type AssessmentsRepo struct {
	mu   sync.RWMutex
	rows map[string]assessments.Assessment
}

func NewAssessmentsRepo() *AssessmentsRepo {
	return &AssessmentsRepo{rows: make(map[string]assessments.Assessment)}
}

func (r *AssessmentsRepo) Create(ctx context.Context, a assessments.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[a.ID] = a
	return nil
}

// ByID expone la valoración guardada (solo para asserts en tests).
func (r *AssessmentsRepo) ByID(id string) (assessments.Assessment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.rows[id]
	return a, ok
}

// Count devuelve el total de valoraciones.
func (r *AssessmentsRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}
