package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"

	"clinical-records/internal/adapters/auth/jwtauth"
	"clinical-records/internal/adapters/auth/sso"
	objmem "clinical-records/internal/adapters/objectstore/memory"
	"clinical-records/internal/adapters/objectstore/spaces"
	pg "clinical-records/internal/adapters/storage/postgres"
	"clinical-records/internal/config"
	"clinical-records/internal/platform/logger"
	"clinical-records/internal/ports/auth"
	"clinical-records/internal/ports/objectstore"
	"clinical-records/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    "clinical-records",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}

	opts := router.Options{Logger: log}

	if cfg.DatabaseURL != "" {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("no se pudieron aplicar las migraciones")
		}
		db, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo conectar a la base")
		}
		defer db.Close()
		opts.DB = db
		log.Info().Msg("usando Postgres")
	} else {
		log.Warn().Msg("DATABASE_URL vacío; usando repos in-memory (solo dev)")
	}

	opts.Uploader = buildUploader(cfg, log)
	opts.AuthVerifier = buildVerifier(cfg, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("auth_mode", cfg.ResolvedAuthMode()).Msg("servidor arriba")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	log.Info().Msg("apagando servidor")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown forzado")
	}
}

func runMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func buildUploader(cfg *config.Config, log zerolog.Logger) objectstore.Uploader {
	up, err := spaces.New(spaces.Config{
		Endpoint: cfg.SpacesEndpoint,
		Region:   cfg.SpacesRegion,
		Bucket:   cfg.SpacesBucket,
		Key:      cfg.SpacesAccessKey,
		Secret:   cfg.SpacesSecretKey,
	})
	if err != nil {
		if errors.Is(err, spaces.ErrNotConfigured) && cfg.IsDev() {
			log.Warn().Msg("Spaces sin configurar; usando uploader in-memory (solo dev)")
			return objmem.NewUploader()
		}
		log.Fatal().Err(err).Msg("no se pudo configurar Spaces")
	}
	log.Info().Str("bucket", cfg.SpacesBucket).Msg("usando DigitalOcean Spaces")
	return up
}

func buildVerifier(cfg *config.Config, log zerolog.Logger) auth.Verifier {
	switch cfg.ResolvedAuthMode() {
	case "dev":
		// nil => AuthContext toma identidad de los headers X-Debug-*.
		return nil
	case "jwt":
		v, err := jwtauth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo configurar el verificador JWT")
		}
		return v
	case "sso":
		client, err := sso.NewClient(sso.Config{
			BaseURL: cfg.SSOBaseURL,
			APIKey:  cfg.SSOAPIKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo configurar el cliente SSO")
		}
		return sso.NewVerifier(client)
	default:
		log.Fatal().Str("modo", cfg.ResolvedAuthMode()).Msg("modo de autenticación desconocido")
		return nil
	}
}
