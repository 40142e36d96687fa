package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio.
// Se carga de .env (si existe) y de variables de entorno.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// AuthMode: "dev" (headers X-Debug-*), "jwt" (HS256 local) o "sso" (verificador remoto).
	AuthMode   string `mapstructure:"AUTH_MODE"`
	JWTSecret  string `mapstructure:"JWT_SECRET"`
	SSOBaseURL string `mapstructure:"SSO_BASE_URL"`
	SSOAPIKey  string `mapstructure:"SSO_API_KEY"`

	SpacesEndpoint  string `mapstructure:"SPACES_ENDPOINT"`
	SpacesRegion    string `mapstructure:"SPACES_REGION"`
	SpacesBucket    string `mapstructure:"SPACES_BUCKET"`
	SpacesAccessKey string `mapstructure:"SPACES_ACCESS_KEY"`
	SpacesSecretKey string `mapstructure:"SPACES_SECRET_KEY"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("AUTH_MODE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL",
		"AUTH_MODE", "JWT_SECRET", "SSO_BASE_URL", "SSO_API_KEY",
		"SPACES_ENDPOINT", "SPACES_REGION", "SPACES_BUCKET", "SPACES_ACCESS_KEY", "SPACES_SECRET_KEY",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		_ = v.BindEnv(key)
	}

	// El .env es opcional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedAuthMode devuelve el modo efectivo: explícito si viene,
// "dev" en desarrollo, "sso" si hay SSO_BASE_URL, "jwt" en otro caso.
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	if c.IsDev() {
		return "dev"
	}
	if c.SSOBaseURL != "" {
		return "sso"
	}
	return "jwt"
}

// Validate revisa que la configuración sea segura para arrancar.
func (c *Config) Validate() error {
	mode := c.ResolvedAuthMode()
	switch mode {
	case "dev":
		if !c.IsDev() {
			return fmt.Errorf("AUTH_MODE=dev solo se permite con ENV=development")
		}
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET es requerido con AUTH_MODE=jwt")
		}
	case "sso":
		if c.SSOBaseURL == "" || c.SSOAPIKey == "" {
			return fmt.Errorf("SSO_BASE_URL y SSO_API_KEY son requeridos con AUTH_MODE=sso")
		}
	default:
		return fmt.Errorf("AUTH_MODE debe ser dev, jwt o sso; vino %q", mode)
	}

	return nil
}
