package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinical-records/internal/ports/auth"
)

func TestResolveActor(t *testing.T) {
	claims := &auth.Claims{
		UserID:    "user-1",
		Nombres:   "Ana",
		Apellidos: "García",
	}

	t.Run("el request gana sobre los claims", func(t *testing.T) {
		id, name := ResolveActor(claims, "medico-9", "Dr. López")
		assert.Equal(t, "medico-9", id)
		assert.Equal(t, "Dr. López", name)
	})

	t.Run("cae al principal autenticado", func(t *testing.T) {
		id, name := ResolveActor(claims, "", "")
		assert.Equal(t, "user-1", id)
		assert.Equal(t, "Ana García", name)
	})

	t.Run("solo nombres en claims", func(t *testing.T) {
		_, name := ResolveActor(&auth.Claims{UserID: "u", Nombres: "Ana"}, "", "")
		assert.Equal(t, "Ana", name)
	})

	t.Run("solo apellidos no alcanza", func(t *testing.T) {
		_, name := ResolveActor(&auth.Claims{UserID: "u", Apellidos: "García"}, "", "")
		assert.Equal(t, DefaultActorName, name)
	})

	t.Run("sin claims ni request queda el placeholder", func(t *testing.T) {
		id, name := ResolveActor(nil, "", "")
		assert.Empty(t, id)
		assert.Equal(t, DefaultActorName, name)
	})

	t.Run("espacios no cuentan", func(t *testing.T) {
		id, name := ResolveActor(claims, "  ", "  ")
		assert.Equal(t, "user-1", id)
		assert.Equal(t, "Ana García", name)
	})
}
