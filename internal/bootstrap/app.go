// Package bootstrap assembles the application dependency graph.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/export"
	"screening-backend/internal/generate"
	"screening-backend/internal/ingest"
	"screening-backend/internal/jobs"
	"screening-backend/internal/llm"
	openai "screening-backend/internal/llm/openai"
	"screening-backend/internal/pipeline"
	"screening-backend/internal/scoring/ats"
	"screening-backend/internal/scoring/smart"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/server"
	"screening-backend/internal/shared/storage/db"
	"screening-backend/internal/shared/storage/object"
	localstore "screening-backend/internal/shared/storage/object/local"
	s3store "screening-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Oracle llm.Client

	JobsRepo       jobs.Repo
	CandidatesRepo pipeline.Repo
	IngestStore    ingest.Store

	Queue           *jobs.Queue
	JobsService     *jobs.Service
	IngestService   *ingest.Service
	GenerateService *generate.Service

	JobsHandler     *jobs.Handler
	IngestHandler   *ingest.Handler
	ExportHandler   *export.Handler
	GenerateHandler *generate.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Oracle: buildOracle(cfg),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		JobsHandler:     app.JobsHandler,
		IngestHandler:   app.IngestHandler,
		ExportHandler:   app.ExportHandler,
		GenerateHandler: app.GenerateHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildOracle wires the evaluation oracle. Without credentials every
// oracle-backed feature degrades to its deterministic fallback.
func buildOracle(cfg config.Config) llm.Client {
	if cfg.OracleProvider != "openai" {
		log.Printf("bootstrap: unknown oracle provider %q; oracle disabled", cfg.OracleProvider)
		return nil
	}
	client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.OracleModel)
	if err != nil {
		log.Printf("bootstrap: oracle disabled: %v", err)
		return nil
	}
	return llm.WithRetry(client, "openai")
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.CandidatesRepo = &pipeline.PGRepo{DB: app.DB}
		app.IngestStore = &ingest.PGStore{DB: app.DB}
	} else {
		candidates := pipeline.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.CandidatesRepo = candidates
		app.IngestStore = ingest.NewMemoryStore(candidates)
	}

	atsCfg := ats.DefaultConfig()
	atsCfg.PassThreshold = app.Config.ATSPassThreshold
	smartCfg := smart.DefaultConfig()
	smartCfg.AdequacyThreshold = app.Config.AdequacyThreshold

	app.Queue = jobs.NewQueue(app.Config.QueueCapacity)
	app.JobsService = &jobs.Service{
		Repo:        app.JobsRepo,
		Queue:       app.Queue,
		Pipeline:    app.CandidatesRepo,
		Oracle:      app.Oracle,
		ATSConfig:   atsCfg,
		SmartConfig: smartCfg,
		Concurrency: app.Config.ScoreConcurrency,
	}
	app.IngestService = &ingest.Service{
		Parser:  ingest.OracleParser{LLM: app.Oracle},
		Store:   app.IngestStore,
		Objects: app.Store,
	}
	app.GenerateService = &generate.Service{LLM: app.Oracle}

	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.IngestHandler = ingest.NewHandler(app.IngestService, app.JobsRepo)
	app.ExportHandler = export.NewHandler(app.JobsRepo, app.CandidatesRepo)
	app.GenerateHandler = generate.NewHandler(app.GenerateService, app.JobsRepo, app.CandidatesRepo)
}
