package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/common"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
)

func (h *Handler) suggestionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := application.SuggestionFilter{
			Status:      strings.TrimSpace(query.Get("status")),
			Prioridade:  strings.TrimSpace(query.Get("prioridade")),
			TipoUsuario: strings.TrimSpace(query.Get("tipo_usuario")),
			Fonte:       strings.TrimSpace(query.Get("fonte")),
			Keyword:     strings.TrimSpace(query.Get("keyword")),
		}
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 50)
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		paging := application.Paging{Page: page, Limit: limit}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sugestoes, err := h.suggestionService.List(ctx, filter, paging)
		if err != nil {
			h.logger.Printf("falha ao listar sugestões: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar sugestões"})
			return
		}

		items := make([]suggestionResponse, 0, len(sugestoes))
		for _, sugestao := range sugestoes {
			items = append(items, suggestionDomainToResponse(sugestao))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, suggestionListResponse{Items: items})
	}
}

func (h *Handler) suggestionDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "ID da sugestão não informado"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sugestao, err := h.suggestionService.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "sugestão não encontrada"})
				return
			}
			h.logger.Printf("falha ao buscar sugestão id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "falha ao buscar sugestão"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, suggestionDomainToResponse(*sugestao))
	}
}

func (h *Handler) suggestionUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "ID da sugestão não informado"})
			return
		}

		var req updateSuggestionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "formato de requisição inválido"})
			return
		}

		cmd := application.TriageCommand{
			Status:       req.Status,
			Prioridade:   req.Prioridade,
			SetorDestino: req.SetorDestino,
			Observacoes:  req.Observacoes,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		actor := requireUser(r.Context())
		updated, err := h.suggestionService.UpdateTriage(ctx, idParam, cmd, actor.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "sugestão não encontrada"})
				return
			}
			h.logger.Printf("falha ao atualizar sugestão id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, suggestionDomainToResponse(*updated))
	}
}

func (h *Handler) logListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 100)
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entries, err := h.logService.List(ctx, application.Paging{Page: page, Limit: limit})
		if err != nil {
			h.logger.Printf("falha ao listar logs: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "falha ao listar logs"})
			return
		}

		items := make([]logEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, logEntryResponse{
				ID:        entry.ID,
				UsuarioID: entry.UsuarioID,
				Acao:      entry.Acao,
				Detalhes:  entry.Detalhes,
				Fonte:     entry.Fonte,
				CreatedAt: entry.CreatedAt,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, logListResponse{Items: items})
	}
}
