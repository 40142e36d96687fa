package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinical-records/internal/ports/auth"
)

type verifierStub struct {
	claims auth.Claims
	err    error
	tokens []string
}

func (v *verifierStub) Verify(ctx context.Context, token string) (auth.Claims, error) {
	v.tokens = append(v.tokens, token)
	if v.err != nil {
		return auth.Claims{}, v.err
	}
	return v.claims, nil
}

func captureClaims(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) (auth.Claims, bool) {
	t.Helper()

	var got auth.Claims
	var ok bool
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "el middleware nunca corta el request")
	return got, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	mw := AuthContext(nil)

	req := httptest.NewRequest("GET", "/pacientes", nil)
	req.Header.Set("X-Debug-User-ID", "medico-1")
	req.Header.Set("X-Debug-Nombres", "Ana")
	req.Header.Set("X-Debug-Apellidos", "García")

	claims, ok := captureClaims(t, mw, req)
	require.True(t, ok)
	assert.Equal(t, "medico-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Nombres)
	assert.Equal(t, "García", claims.Apellidos)
}

func TestAuthContext_DevSinHeaders(t *testing.T) {
	mw := AuthContext(nil)

	_, ok := captureClaims(t, mw, httptest.NewRequest("GET", "/pacientes", nil))
	assert.False(t, ok)
}

func TestAuthContext_BearerVerificado(t *testing.T) {
	v := &verifierStub{claims: auth.Claims{UserID: "user-9", Nombres: "Rosa"}}
	mw := AuthContext(v)

	req := httptest.NewRequest("GET", "/pacientes", nil)
	req.Header.Set("Authorization", "Bearer tok-123")

	claims, ok := captureClaims(t, mw, req)
	require.True(t, ok)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, []string{"tok-123"}, v.tokens)
}

func TestAuthContext_VerifyFallaSigueSinClaims(t *testing.T) {
	v := &verifierStub{err: errors.New("token inválido")}
	mw := AuthContext(v)

	req := httptest.NewRequest("GET", "/pacientes", nil)
	req.Header.Set("Authorization", "Bearer malo")

	_, ok := captureClaims(t, mw, req)
	assert.False(t, ok)
}

func TestAuthContext_ConVerifierIgnoraDebugHeaders(t *testing.T) {
	v := &verifierStub{claims: auth.Claims{UserID: "user-9"}}
	mw := AuthContext(v)

	req := httptest.NewRequest("GET", "/pacientes", nil)
	req.Header.Set("X-Debug-User-ID", "impostor")

	_, ok := captureClaims(t, mw, req)
	assert.False(t, ok, "sin bearer no hay claims aunque vengan headers de debug")
	assert.Empty(t, v.tokens)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
}
