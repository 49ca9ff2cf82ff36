package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/common"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
)

// dashboardHandler devolve os agregados exibidos na tela inicial do painel.
func (h *Handler) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		stats, err := h.suggestionService.Dashboard(ctx)
		if err != nil {
			h.logger.Printf("falha ao calcular estatísticas do painel: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "falha ao calcular estatísticas"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, dashboardToResponse(stats))
	}
}

func dashboardToResponse(stats application.DashboardStats) dashboardResponse {
	byStatus := make([]dashboardStatusCount, 0, len(stats.PorStatus))
	for _, item := range stats.PorStatus {
		byStatus = append(byStatus, dashboardStatusCount{Status: item.Status, Count: item.Total})
	}
	byMonth := make([]dashboardMonthCount, 0, len(stats.PorMes))
	for _, item := range stats.PorMes {
		byMonth = append(byMonth, dashboardMonthCount{Month: item.Mes, Count: item.Total})
	}

	return dashboardResponse{
		Stats: dashboardStats{
			TotalSuggestions:     stats.TotalSugestoes,
			SuggestionsThisMonth: stats.SugestoesNoMes,
			PendingSuggestions:   stats.Pendentes,
			ApprovedSuggestions:  stats.Aprovadas,
		},
		SuggestionsByStatus: byStatus,
		SuggestionsByMonth:  byMonth,
	}
}
