package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"clinical-records/internal/ports/auth"
)

var (
	ErrNoSecret     = errors.New("jwt secret not configured")
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token invalid")
)

// tokenClaims refleja el payload que emite el login: id del usuario más
// los datos de despliegue (nombres, apellidos, correo, rol).
type tokenClaims struct {
	UsuarioID string `json:"id_usuario"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Correo    string `json:"correo"`
	Rol       string `json:"rol"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.Verifier validando tokens HS256 firmados
// con un secreto compartido.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	userID := strings.TrimSpace(tc.UsuarioID)
	if userID == "" {
		// Fallback a sub para tokens emitidos por otros servicios.
		userID = strings.TrimSpace(tc.Subject)
	}
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}

	return auth.Claims{
		UserID:    userID,
		Nombres:   strings.TrimSpace(tc.Nombres),
		Apellidos: strings.TrimSpace(tc.Apellidos),
		Email:     strings.TrimSpace(tc.Correo),
		Rol:       strings.TrimSpace(tc.Rol),
	}, nil
}
