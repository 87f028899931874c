package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/attachments"
	"healthoffice-backend/internal/audit"
	authlogin "healthoffice-backend/internal/auth"
	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/inspections"
	"healthoffice-backend/internal/notifications"
	"healthoffice-backend/internal/seed"
	"healthoffice-backend/internal/settings"
	"healthoffice-backend/internal/shared/config"
	"healthoffice-backend/internal/shared/server"
	"healthoffice-backend/internal/shared/storage/db"
	"healthoffice-backend/internal/shared/storage/object"
	localstore "healthoffice-backend/internal/shared/storage/object/local"
	s3store "healthoffice-backend/internal/shared/storage/object/s3"
	"healthoffice-backend/internal/shared/telemetry"
)

// App holds the wired application: repositories, services, handlers and the
// HTTP engine.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	AdminRepo        admins.Repo
	RoleRepo         admins.RoleRepo
	FacilityRepo     facilities.Repo
	FacilityUserRepo facilities.UserRepo
	ApplicationRepo  applications.Repo
	InspectionRepo   inspections.Repo
	TemplateRepo     inspections.TemplateRepo
	ScoreRepo        inspections.ScoreRepo
	NotificationRepo notifications.Repo
	AuditRepo        audit.Repo
	SettingRepo      settings.Repo
	AttachmentRepo   attachments.Repo

	AdminService        *admins.Service
	FacilityService     *facilities.Service
	ApplicationService  *applications.Service
	InspectionService   *inspections.Service
	NotificationService *notifications.Service
	AuditService        *audit.Service
	SettingService      *settings.Service
	AttachmentService   *attachments.Service
}

// Build prepares shared dependencies and wires the router.
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

	app := &App{Config: cfg, DB: sqlDB, Store: store}
	buildRepos(app)
	buildServices(app)

	if cfg.SeedOnBoot {
		if err := runSeed(ctx, app); err != nil {
			return nil, fmt.Errorf("bootstrap: seed: %w", err)
		}
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		AuthHandler:         authlogin.NewHandler(app.AdminService, app.FacilityService, cfg.TokenTTL),
		AdminHandler:        admins.NewHandler(app.AdminService),
		FacilityHandler:     facilities.NewHandler(app.FacilityService),
		ApplicationHandler:  applications.NewHandler(app.ApplicationService),
		InspectionHandler:   inspections.NewHandler(app.InspectionService),
		NotificationHandler: notifications.NewHandler(app.NotificationService),
		SettingHandler:      settings.NewHandler(app.SettingService),
		AuditHandler:        audit.NewHandler(app.AuditService),
		AttachmentHandler:   attachments.NewHandler(app.AttachmentService),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("DATABASE_URL empty; using in-memory repositories", nil)
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("database connect failed; using in-memory repositories", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("migrations failed; using in-memory repositories", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRepos(app *App) {
	if app.DB != nil {
		app.AdminRepo = &admins.PGRepo{DB: app.DB}
		app.RoleRepo = &admins.RolePGRepo{DB: app.DB}
		app.FacilityRepo = &facilities.PGRepo{DB: app.DB}
		app.FacilityUserRepo = &facilities.UserPGRepo{DB: app.DB}
		app.ApplicationRepo = &applications.PGRepo{DB: app.DB}
		app.InspectionRepo = &inspections.PGRepo{DB: app.DB}
		app.TemplateRepo = &inspections.TemplatePGRepo{DB: app.DB}
		app.ScoreRepo = &inspections.ScorePGRepo{DB: app.DB}
		app.NotificationRepo = &notifications.PGRepo{DB: app.DB}
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
		app.SettingRepo = &settings.PGRepo{DB: app.DB}
		app.AttachmentRepo = &attachments.PGRepo{DB: app.DB}
		return
	}

	roleRepo := admins.NewMemoryRoleRepo()
	app.AdminRepo = admins.NewMemoryRepo(roleRepo)
	app.RoleRepo = roleRepo
	app.FacilityRepo = facilities.NewMemoryRepo()
	app.FacilityUserRepo = facilities.NewUserMemoryRepo()
	app.ApplicationRepo = applications.NewMemoryRepo()
	app.InspectionRepo = inspections.NewMemoryRepo()
	app.TemplateRepo = inspections.NewTemplateMemoryRepo()
	app.ScoreRepo = inspections.NewScoreMemoryRepo()
	app.NotificationRepo = notifications.NewMemoryRepo()
	app.AuditRepo = audit.NewMemoryRepo()
	app.SettingRepo = settings.NewMemoryRepo()
	app.AttachmentRepo = attachments.NewMemoryRepo()
}

func buildServices(app *App) {
	app.AuditService = audit.NewService(app.AuditRepo)
	app.NotificationService = notifications.NewService(app.NotificationRepo)
	app.AdminService = admins.NewService(app.AdminRepo, app.RoleRepo)
	app.FacilityService = facilities.NewService(app.FacilityRepo, app.FacilityUserRepo)
	app.ApplicationService = applications.NewService(app.DB, app.ApplicationRepo, app.FacilityRepo, app.AuditService, app.NotificationService)
	app.InspectionService = inspections.NewService(app.DB, app.InspectionRepo, app.TemplateRepo, app.ScoreRepo,
		app.ApplicationRepo, app.AdminRepo, app.AuditService, app.NotificationService)
	app.SettingService = settings.NewService(app.SettingRepo)
	app.AttachmentService = attachments.NewService(app.AttachmentRepo, app.ApplicationRepo, app.Store, app.Config.ObjectStoreType, app.AuditService)
}

func runSeed(ctx context.Context, app *App) error {
	seeder := &seed.Seeder{
		Admins:      app.AdminService,
		AdminRepo:   app.AdminRepo,
		Roles:       app.RoleRepo,
		Facilities:  app.FacilityService,
		FacRepo:     app.FacilityRepo,
		Settings:    app.SettingService,
		SettingRepo: app.SettingRepo,
		Inspections: app.InspectionService,
	}
	return seeder.Run(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
