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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

type fakeSuggestionService struct {
	stats    application.DashboardStats
	statsErr error
}

func (f *fakeSuggestionService) List(context.Context, application.SuggestionFilter, application.Paging) ([]domain.Sugestao, error) {
	return nil, nil
}

func (f *fakeSuggestionService) Detail(context.Context, string) (*domain.Sugestao, error) {
	return nil, errors.New("não implementado")
}

func (f *fakeSuggestionService) Create(context.Context, application.CreateSuggestionCommand) (*domain.Sugestao, error) {
	return nil, errors.New("não implementado")
}

func (f *fakeSuggestionService) UpdateTriage(context.Context, string, application.TriageCommand, string) (*domain.Sugestao, error) {
	return nil, errors.New("não implementado")
}

func (f *fakeSuggestionService) Dashboard(context.Context) (application.DashboardStats, error) {
	if f.statsErr != nil {
		return application.DashboardStats{}, f.statsErr
	}
	return f.stats, nil
}

func newDashboardRouter(service *fakeSuggestionService) chi.Router {
	handler := NewHandler(Config{
		Logger:            log.New(io.Discard, "", 0),
		SuggestionService: service,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func TestDashboardHandler(t *testing.T) {
	service := &fakeSuggestionService{
		stats: application.DashboardStats{
			TotalSugestoes: 12,
			SugestoesNoMes: 4,
			Pendentes:      5,
			Aprovadas:      3,
			PorStatus: []application.StatusCount{
				{Status: "aprovada", Total: 3},
				{Status: "pendente", Total: 5},
			},
			PorMes: []application.MonthCount{
				{Mes: "2025-05", Total: 8},
				{Mes: "2025-06", Total: 4},
			},
		},
	}
	router := newDashboardRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body dashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Stats.TotalSuggestions)
	assert.Equal(t, 4, body.Stats.SuggestionsThisMonth)
	assert.Equal(t, 5, body.Stats.PendingSuggestions)
	assert.Equal(t, 3, body.Stats.ApprovedSuggestions)
	require.Len(t, body.SuggestionsByStatus, 2)
	assert.Equal(t, "pendente", body.SuggestionsByStatus[1].Status)
	assert.Equal(t, 5, body.SuggestionsByStatus[1].Count)
	require.Len(t, body.SuggestionsByMonth, 2)
	assert.Equal(t, "2025-06", body.SuggestionsByMonth[1].Month)
}

func TestDashboardHandler_ServiceError(t *testing.T) {
	service := &fakeSuggestionService{statsErr: errors.New("agregação falhou")}
	router := newDashboardRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
