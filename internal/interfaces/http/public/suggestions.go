package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/common"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

type createSuggestionRequest struct {
	Titulo       string `json:"titulo"`
	Descricao    string `json:"descricao"`
	SetorOrigem  string `json:"setor_origem"`
	SetorDestino string `json:"setor_destino"`
	Categoria    string `json:"categoria"`
	Prioridade   string `json:"prioridade"`
}

type suggestionResponse struct {
	ID           string    `json:"id"`
	Titulo       string    `json:"titulo"`
	Descricao    string    `json:"descricao"`
	SetorOrigem  string    `json:"setor_origem,omitempty"`
	SetorDestino string    `json:"setor_destino,omitempty"`
	Categoria    string    `json:"categoria,omitempty"`
	Prioridade   string    `json:"prioridade"`
	Status       string    `json:"status"`
	Fonte        string    `json:"fonte"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type suggestionListResponse struct {
	Items []suggestionResponse `json:"items"`
}

func (h *Handler) suggestionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "usuário não autenticado"})
			return
		}

		var req createSuggestionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "formato de requisição inválido"})
			return
		}

		cmd := application.CreateSuggestionCommand{
			Titulo:       req.Titulo,
			Descricao:    req.Descricao,
			SetorOrigem:  req.SetorOrigem,
			SetorDestino: req.SetorDestino,
			Categoria:    req.Categoria,
			Prioridade:   req.Prioridade,
			NomeAutor:    user.Nome,
			EmailAutor:   user.Email,
			TipoUsuario:  user.TipoUsuario,
			UsuarioID:    user.ID,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		created, err := h.suggestionService.Create(ctx, cmd)
		if err != nil {
			h.logger.Printf("falha ao criar sugestão: %v", err)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, domainToResponse(*created))
	}
}

func (h *Handler) mySuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "usuário não autenticado"})
			return
		}

		query := r.URL.Query()
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 50)
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sugestoes, err := h.suggestionService.List(ctx,
			application.SuggestionFilter{UsuarioID: user.ID},
			application.Paging{Page: page, Limit: limit},
		)
		if err != nil {
			h.logger.Printf("falha ao listar sugestões do usuário %s: %v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar sugestões"})
			return
		}

		items := make([]suggestionResponse, 0, len(sugestoes))
		for _, sugestao := range sugestoes {
			items = append(items, domainToResponse(sugestao))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, suggestionListResponse{Items: items})
	}
}

func domainToResponse(sugestao domain.Sugestao) suggestionResponse {
	return suggestionResponse{
		ID:           sugestao.ID,
		Titulo:       sugestao.Titulo,
		Descricao:    sugestao.Descricao,
		SetorOrigem:  sugestao.SetorOrigem,
		SetorDestino: sugestao.SetorDestino,
		Categoria:    sugestao.Categoria,
		Prioridade:   sugestao.Prioridade.String(),
		Status:       sugestao.Status.String(),
		Fonte:        sugestao.Fonte,
		CreatedAt:    sugestao.CreatedAt,
		UpdatedAt:    sugestao.UpdatedAt,
	}
}
