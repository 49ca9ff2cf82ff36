package admin

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"

	"github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/common"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
	syncengine "github.com/INV1906/CPA-FORMS-DASH/internal/sync"
)

// SyncEngine é a superfície do motor de sincronização consumida pelos
// endpoints administrativos.
type SyncEngine interface {
	RunOnce(ctx context.Context) syncengine.Summary
	Preview(ctx context.Context, limit int) (int, []syncengine.PreviewItem, error)
	Status() syncengine.Status
}

// Handler liga os endpoints administrativos aos serviços de aplicação.
type Handler struct {
	logger            *log.Logger
	suggestionService application.SuggestionService
	logService        application.LogService
	syncEngine        SyncEngine
}

// Config provides dependencies for Handler.
type Config struct {
	Logger            *log.Logger
	SuggestionService application.SuggestionService
	LogService        application.LogService
	SyncEngine        SyncEngine
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:            cfg.Logger,
		suggestionService: cfg.SuggestionService,
		logService:        cfg.LogService,
		syncEngine:        cfg.SyncEngine,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.dashboardHandler())
	r.Get("/sugestoes", h.suggestionListHandler())
	r.Get("/sugestoes/{id}", h.suggestionDetailHandler())
	r.Patch("/sugestoes/{id}", h.suggestionUpdateHandler())
	r.Get("/logs", h.logListHandler())
	r.Post("/sync/google-forms/manual", h.syncManualHandler())
	r.Get("/sync/google-forms/status", h.syncStatusHandler())
	r.Get("/sync/google-forms/preview", h.syncPreviewHandler())
}

// requireUser extrai o principal autenticado já validado pelo middleware.
func requireUser(ctx context.Context) common.AuthenticatedUser {
	user, _ := common.UserFromContext(ctx)
	return user
}
