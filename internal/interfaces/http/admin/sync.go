package admin

import (
	"net/http"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/common"
)

// previewLimit é a quantidade máxima de candidatos exibidos na pré-visualização.
const previewLimit = 5

func (h *Handler) syncManualHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary := h.syncEngine.RunOnce(r.Context())

		status := http.StatusOK
		if !summary.Success {
			status = http.StatusBadGateway
		}
		common.WriteJSON(h.logger, w, status, syncManualResponse{
			Success:    summary.Success,
			Message:    summary.Message,
			Imported:   summary.Imported,
			TotalFound: summary.TotalFound,
			Duplicates: summary.Duplicates,
			Errors:     summary.Errors,
			SyncTime:   time.Now().Format(time.RFC3339),
		})
	}
}

func (h *Handler) syncStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status := h.syncEngine.Status()
		common.WriteJSON(h.logger, w, http.StatusOK, syncStatusResponse{
			AutoSyncEnabled:   status.Enabled,
			SyncInterval:      int(status.Interval.Seconds()),
			GoogleSheetsID:    status.SourceID,
			LastSync:          status.LastCursor.Format(time.RFC3339),
			GoogleAPIReady:    status.ClientReady,
			BackgroundRunning: status.Running,
		})
	}
}

func (h *Handler) syncPreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, items, err := h.syncEngine.Preview(r.Context(), previewLimit)
		if err != nil {
			h.logger.Printf("falha na pré-visualização da sincronização: %v", err)
			common.WriteJSON(h.logger, w, http.StatusBadGateway, map[string]string{"error": "falha ao buscar dados da planilha"})
			return
		}

		preview := make([]syncPreviewItem, 0, len(items))
		for _, item := range items {
			preview = append(preview, syncPreviewItem{
				RawFormData:      item.Raw,
				MappedSuggestion: suggestionDomainToResponse(item.Sugestao),
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, syncPreviewResponse{
			TotalNewResponses: total,
			Preview:           preview,
			WouldImport:       total,
		})
	}
}
