package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	authPostgres "github.com/frahmantamala/kpi-portal/internal/auth/postgres"
	"github.com/frahmantamala/kpi-portal/internal/comment"
	commentPostgres "github.com/frahmantamala/kpi-portal/internal/comment/postgres"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
	"github.com/frahmantamala/kpi-portal/internal/dashboard"
	"github.com/frahmantamala/kpi-portal/internal/evaluation"
	evaluationPostgres "github.com/frahmantamala/kpi-portal/internal/evaluation/postgres"
	"github.com/frahmantamala/kpi-portal/internal/feedback"
	feedbackPostgres "github.com/frahmantamala/kpi-portal/internal/feedback/postgres"
	"github.com/frahmantamala/kpi-portal/internal/goal"
	goalPostgres "github.com/frahmantamala/kpi-portal/internal/goal/postgres"
	"github.com/frahmantamala/kpi-portal/internal/message"
	messagePostgres "github.com/frahmantamala/kpi-portal/internal/message/postgres"
	"github.com/frahmantamala/kpi-portal/internal/profile"
	"github.com/frahmantamala/kpi-portal/internal/storage"
	"github.com/frahmantamala/kpi-portal/internal/transport"
	"github.com/frahmantamala/kpi-portal/internal/transport/rest"
	"github.com/frahmantamala/kpi-portal/internal/transport/swagger"
	"github.com/frahmantamala/kpi-portal/internal/user"
	userPostgres "github.com/frahmantamala/kpi-portal/internal/user/postgres"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
	workgroupPostgres "github.com/frahmantamala/kpi-portal/internal/workgroup/postgres"
)

type application struct {
	Router *chi.Mux
	Bus    *events.EventBus
}

// buildApplication assembles every repository, service and handler on top of
// the given connections.
func buildApplication(
	ctx context.Context,
	cfg *internal.Config,
	db *gorm.DB,
	sqlDB *sqlx.DB,
	images *storage.ImageStore,
	logger *slog.Logger,
) (*application, error) {
	bus := events.NewEventBus(logger)
	events.RegisterAuditLog(bus, logger)

	base := transport.NewBaseHandler(logger)

	userRepo := userPostgres.NewUserRepository(db)
	workgroupRepo := workgroupPostgres.NewWorkgroupRepository(db)

	gate := auth.NewGate(workgroupRepo, logger)
	rbac := auth.NewRBACAuthorization(gate, base)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(db), tokens, logger)

	userService := user.NewService(userRepo, bus, cfg.Security.BCryptCost, logger)
	workgroupService := workgroup.NewService(workgroupRepo, userRepo, logger)

	evaluationService := evaluation.NewService(
		evaluationPostgres.NewEvaluationRepository(db),
		gate,
		userRepo,
		workgroupRepo,
		workgroupService,
		bus,
		logger,
	)
	feedbackService := feedback.NewService(
		feedbackPostgres.NewFeedbackRepository(db),
		gate,
		workgroupService,
		userRepo,
		bus,
		logger,
	)
	messageService := message.NewService(messagePostgres.NewMessageRepository(db), userRepo, bus, logger)
	commentService := comment.NewService(
		commentPostgres.NewCommentRepository(db),
		evaluationService,
		gate,
		userRepo,
		logger,
	)
	goalService := goal.NewService(goalPostgres.NewGoalRepository(db), gate, userRepo, workgroupService, logger)
	profileService := profile.NewService(userRepo, images, gate, cfg.Security.BCryptCost, logger)
	dashboardService := dashboard.NewService(sqlDB, gate, logger)

	docs, err := swagger.Load(ctx, cfg.API.OpenAPIPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	health := rest.NewHealthHandler(map[string]rest.Checker{
		"database": sqlDB.PingContext,
		"storage":  images.Ping,
	})

	handlers := rest.Handlers{
		Health:     health,
		Auth:       auth.NewHandler(base, authService),
		RBAC:       rbac,
		User:       user.NewHandler(base, userService),
		Workgroup:  workgroup.NewHandler(base, workgroupService),
		Evaluation: evaluation.NewHandler(base, evaluationService),
		Feedback:   feedback.NewHandler(base, feedbackService),
		Message:    message.NewHandler(base, messageService),
		Comment:    comment.NewHandler(base, commentService),
		Profile:    profile.NewHandler(base, profileService, cfg.Storage.MaxImageBytes),
		Goal:       goal.NewHandler(base, goalService),
		Dashboard:  dashboard.NewHandler(base, dashboardService),
		Docs:       docs,
	}

	router := rest.NewRouter(handlers, rest.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		UploadDir:      cfg.Storage.UploadDir,
		UploadPrefix:   cfg.Storage.PublicPrefix,
	})
	return &application{Router: router, Bus: bus}, nil
}
