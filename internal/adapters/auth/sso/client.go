package sso

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinical-records/internal/platform/httpclient"
	"clinical-records/internal/ports/auth"
)

var (
	ErrSSONotConfigured = errors.New("sso client not configured")
	ErrSSOUnauthorized  = errors.New("sso unauthorized")
	ErrSSOUpstream      = errors.New("sso upstream error")
)

// Config del cliente del SSO institucional.
// BaseURL y APIKey normalmente vendrán de env vars en main.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifyToken pregunta al SSO por un token y trae los claims del usuario.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrSSONotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrSSOUnauthorized
	}

	const verifyPath = "/v1/tokens/verify"

	headers := map[string]string{
		c.apiKeyHeader:  c.apiKey,
		"Authorization": "Bearer " + token,
	}

	var out struct {
		UserID    string `json:"user_id"`
		Nombres   string `json:"nombres"`
		Apellidos string `json:"apellidos"`
		Email     string `json:"email"`
		Rol       string `json:"rol"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath, headers, map[string]string{"token": token}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrSSOUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrSSOUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrSSOUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, errors.New("sso response missing user_id")
	}

	return auth.Claims{
		UserID:    out.UserID,
		Nombres:   strings.TrimSpace(out.Nombres),
		Apellidos: strings.TrimSpace(out.Apellidos),
		Email:     strings.TrimSpace(out.Email),
		Rol:       strings.TrimSpace(out.Rol),
	}, nil
}
