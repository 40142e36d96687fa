package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	objmem "clinical-records/internal/adapters/objectstore/memory"
	mem "clinical-records/internal/adapters/storage/memory"
	pg "clinical-records/internal/adapters/storage/postgres"
	"clinical-records/internal/domain/assessments"
	"clinical-records/internal/domain/consultations"
	"clinical-records/internal/domain/patients"
	"clinical-records/internal/middleware"
	"clinical-records/internal/ports/audit"
	"clinical-records/internal/ports/auth"
	"clinical-records/internal/ports/objectstore"
)

type Options struct {
	AuthVerifier auth.Verifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene nil se usa el uploader in-memory.
	Uploader objectstore.Uploader

	Logger zerolog.Logger

	// Overrides para tests; si vienen nil se resuelven según DB.
	PatientsRepo      patients.Repository
	ConsultationsRepo consultations.Repository
	AssessmentsRepo   assessments.Repository
	AuditRecorder     audit.Recorder
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	patientsRepo := opts.PatientsRepo
	consultationsRepo := opts.ConsultationsRepo
	assessmentsRepo := opts.AssessmentsRepo
	auditRec := opts.AuditRecorder

	if db != nil {
		if patientsRepo == nil {
			patientsRepo = pg.NewPatientsRepo(db, opts.Logger)
		}
		if consultationsRepo == nil {
			consultationsRepo = pg.NewConsultationsRepo(db)
		}
		if assessmentsRepo == nil {
			assessmentsRepo = pg.NewAssessmentsRepo(db)
		}
		if auditRec == nil {
			auditRec = pg.NewAuditRepo(db)
		}
	} else {
		if patientsRepo == nil {
			patientsRepo = mem.NewPatientsRepo()
		}
		if consultationsRepo == nil {
			consultationsRepo = mem.NewConsultationsRepo()
		}
		if assessmentsRepo == nil {
			assessmentsRepo = mem.NewAssessmentsRepo()
		}
		if auditRec == nil {
			auditRec = mem.NewAuditRecorder()
		}
	}

	uploader := opts.Uploader
	if uploader == nil {
		uploader = objmem.NewUploader()
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientsRepo, auditRec, opts.Logger)
	consultationsSvc := consultations.NewService(consultationsRepo, uploader, auditRec, opts.Logger)
	assessmentsSvc := assessments.NewService(assessmentsRepo, auditRec, opts.Logger)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc)
	consultations.RegisterRoutes(r, consultationsSvc)
	assessments.RegisterRoutes(r, assessmentsSvc)

	return r
}
