package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
	syncengine "github.com/INV1906/CPA-FORMS-DASH/internal/sync"
)

type fakeSyncEngine struct {
	summary    syncengine.Summary
	status     syncengine.Status
	total      int
	items      []syncengine.PreviewItem
	previewErr error
	runCalls   int
}

func (f *fakeSyncEngine) RunOnce(context.Context) syncengine.Summary {
	f.runCalls++
	return f.summary
}

func (f *fakeSyncEngine) Preview(context.Context, int) (int, []syncengine.PreviewItem, error) {
	if f.previewErr != nil {
		return 0, nil, f.previewErr
	}
	return f.total, f.items, nil
}

func (f *fakeSyncEngine) Status() syncengine.Status {
	return f.status
}

func newTestRouter(engine *fakeSyncEngine) chi.Router {
	handler := NewHandler(Config{
		Logger:     log.New(io.Discard, "", 0),
		SyncEngine: engine,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func TestSyncManualHandler_Success(t *testing.T) {
	engine := &fakeSyncEngine{
		summary: syncengine.Summary{
			Success:    true,
			Message:    "sincronização concluída com sucesso",
			Imported:   3,
			TotalFound: 5,
			Duplicates: 2,
		},
	}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodPost, "/sync/google-forms/manual", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, engine.runCalls)

	var body syncManualResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Imported)
	assert.Equal(t, 5, body.TotalFound)
	assert.Equal(t, 2, body.Duplicates)
	assert.NotEmpty(t, body.SyncTime)
}

func TestSyncManualHandler_Failure(t *testing.T) {
	engine := &fakeSyncEngine{
		summary: syncengine.Summary{
			Success: false,
			Message: "erro na sincronização: quota excedida",
			Errors:  []string{"quota excedida"},
		},
	}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodPost, "/sync/google-forms/manual", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body syncManualResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "quota excedida")
	assert.Equal(t, []string{"quota excedida"}, body.Errors)
}

func TestSyncStatusHandler(t *testing.T) {
	lastCursor := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	engine := &fakeSyncEngine{
		status: syncengine.Status{
			Enabled:     true,
			Interval:    30 * time.Second,
			SourceID:    "1AbCdEfGhI...",
			LastCursor:  lastCursor,
			ClientReady: true,
			Running:     true,
		},
	}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodGet, "/sync/google-forms/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body syncStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.AutoSyncEnabled)
	assert.Equal(t, 30, body.SyncInterval)
	assert.Equal(t, "1AbCdEfGhI...", body.GoogleSheetsID)
	assert.Equal(t, lastCursor.Format(time.RFC3339), body.LastSync)
	assert.True(t, body.GoogleAPIReady)
	assert.True(t, body.BackgroundRunning)
}

func TestSyncPreviewHandler(t *testing.T) {
	engine := &fakeSyncEngine{
		total: 7,
		items: []syncengine.PreviewItem{
			{
				Raw: syncengine.RawRow{"Sugestão": "Melhorar o wifi"},
				Sugestao: domain.Sugestao{
					Titulo: "Sugestão - Aluno - 01/06/2025",
					Status: domain.StatusPendente,
				},
			},
		},
	}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodGet, "/sync/google-forms/preview", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body syncPreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body.TotalNewResponses)
	assert.Equal(t, 7, body.WouldImport)
	require.Len(t, body.Preview, 1)
	assert.Equal(t, "Melhorar o wifi", body.Preview[0].RawFormData["Sugestão"])
	assert.Equal(t, "Sugestão - Aluno - 01/06/2025", body.Preview[0].MappedSuggestion.Titulo)
}

func TestSyncPreviewHandler_SourceError(t *testing.T) {
	engine := &fakeSyncEngine{previewErr: errors.New("timeout")}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodGet, "/sync/google-forms/preview", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
