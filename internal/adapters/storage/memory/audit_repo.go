package memory

import (
	"context"
	"sync"

	"clinical-records/internal/ports/audit"
)

// AuditRecorder acumula entradas de auditoría en memoria. FailWith permite
// armar un fallo para probar que el registro es best-effort.
type AuditRecorder struct {
	mu      sync.RWMutex
	entries []audit.Entry
	err     error
}

func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

func (r *AuditRecorder) LogCreate(ctx context.Context, e audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

// FailWith hace que los próximos LogCreate devuelvan err.
func (r *AuditRecorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
}

// Entries devuelve una copia de lo registrado hasta ahora.
func (r *AuditRecorder) Entries() []audit.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
