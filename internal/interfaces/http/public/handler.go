package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
)

// Handler liga os endpoints de usuário autenticado aos serviços de aplicação.
type Handler struct {
	logger            *log.Logger
	suggestionService application.SuggestionService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger            *log.Logger
	SuggestionService application.SuggestionService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:            cfg.Logger,
		suggestionService: cfg.SuggestionService,
	}
}

// Register mounts authenticated user routes onto router.
func (h *Handler) Register(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/sugestoes", h.suggestionCreateHandler())
		r.Get("/sugestoes", h.mySuggestionsHandler())
	})
}
