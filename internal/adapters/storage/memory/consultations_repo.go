package memory

import (
	"context"
	"sync"

	"clinical-records/internal/domain/consultations"
)

// ConsultationsRepo guarda consultas iniciales y de seguimiento en memoria.
type ConsultationsRepo struct {
	mu        sync.RWMutex
	initials  map[string]consultations.Initial
	followUps map[string]consultations.FollowUp
}

func NewConsultationsRepo() *ConsultationsRepo {
	return &ConsultationsRepo{
		initials:  make(map[string]consultations.Initial),
		followUps: make(map[string]consultations.FollowUp),
	}
}

func (r *ConsultationsRepo) CreateInitial(ctx context.Context, c consultations.Initial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.initials[c.ID] = c
	return nil
}

func (r *ConsultationsRepo) CreateFollowUp(ctx context.Context, c consultations.FollowUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.followUps[c.ID] = c
	return nil
}

// InitialByID expone la consulta guardada (solo para asserts en tests).
func (r *ConsultationsRepo) InitialByID(id string) (consultations.Initial, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.initials[id]
	return c, ok
}

// FollowUpByID expone el seguimiento guardado.
func (r *ConsultationsRepo) FollowUpByID(id string) (consultations.FollowUp, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.followUps[id]
	return c, ok
}

// CountInitials devuelve el total de consultas iniciales.
func (r *ConsultationsRepo) CountInitials() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.initials)
}

// CountFollowUps devuelve el total de seguimientos.
func (r *ConsultationsRepo) CountFollowUps() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.followUps)
}
