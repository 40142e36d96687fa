package spaces

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := objectKey("consultas/inicial", "radiografía tórax.png")

	assert.True(t, strings.HasPrefix(key, "consultas/inicial/"))
	assert.True(t, strings.HasSuffix(key, "-radiograf_a_t_rax.png"))
	assert.NotContains(t, key, " ")
}

func TestObjectKey_UniquePerCall(t *testing.T) {
	a := objectKey("pacientes", "foto.jpg")
	b := objectKey("pacientes", "foto.jpg")

	assert.NotEqual(t, a, b)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "archivo", sanitizeName(""))
	assert.Equal(t, "foto.jpg", sanitizeName("../../foto.jpg"))
	assert.Equal(t, "informe_final.pdf", sanitizeName("informe final.pdf"))
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(Config{Endpoint: "nyc3.digitaloceanspaces.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
