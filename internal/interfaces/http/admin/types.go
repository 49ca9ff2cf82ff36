package admin

import (
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

type suggestionResponse struct {
	ID              string            `json:"id"`
	Titulo          string            `json:"titulo"`
	Descricao       string            `json:"descricao"`
	SetorOrigem     string            `json:"setor_origem,omitempty"`
	SetorDestino    string            `json:"setor_destino,omitempty"`
	Categoria       string            `json:"categoria,omitempty"`
	Prioridade      string            `json:"prioridade"`
	Status          string            `json:"status"`
	NomeAutor       string            `json:"nome_autor,omitempty"`
	EmailAutor      string            `json:"email_autor,omitempty"`
	TipoUsuario     string            `json:"tipo_usuario,omitempty"`
	Instituicao     string            `json:"instituicao,omitempty"`
	CategoriaCurso  string            `json:"categoria_curso,omitempty"`
	Fonte           string            `json:"fonte"`
	Observacoes     string            `json:"observacoes,omitempty"`
	DadosOriginais  map[string]string `json:"dados_originais,omitempty"`
	TimestampOrigem time.Time         `json:"timestamp_origem"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type suggestionListResponse struct {
	Items []suggestionResponse `json:"items"`
}

type updateSuggestionRequest struct {
	Status       *string `json:"status"`
	Prioridade   *string `json:"prioridade"`
	SetorDestino *string `json:"setor_destino"`
	Observacoes  *string `json:"observacoes"`
}

type logEntryResponse struct {
	ID        string    `json:"id"`
	UsuarioID string    `json:"usuario_id,omitempty"`
	Acao      string    `json:"acao"`
	Detalhes  string    `json:"detalhes"`
	Fonte     string    `json:"fonte,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type logListResponse struct {
	Items []logEntryResponse `json:"items"`
}

type dashboardStats struct {
	TotalSuggestions     int `json:"total_suggestions"`
	SuggestionsThisMonth int `json:"suggestions_this_month"`
	PendingSuggestions   int `json:"pending_suggestions"`
	ApprovedSuggestions  int `json:"approved_suggestions"`
}

type dashboardStatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type dashboardMonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type dashboardResponse struct {
	Stats               dashboardStats         `json:"stats"`
	SuggestionsByStatus []dashboardStatusCount `json:"suggestions_by_status"`
	SuggestionsByMonth  []dashboardMonthCount  `json:"suggestions_by_month"`
}

type syncManualResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Imported   int      `json:"imported"`
	TotalFound int      `json:"total_found"`
	Duplicates int      `json:"duplicates"`
	Errors     []string `json:"errors,omitempty"`
	SyncTime   string   `json:"sync_time"`
}

type syncStatusResponse struct {
	AutoSyncEnabled   bool   `json:"auto_sync_enabled"`
	SyncInterval      int    `json:"sync_interval"`
	GoogleSheetsID    string `json:"google_sheets_id"`
	LastSync          string `json:"last_sync"`
	GoogleAPIReady    bool   `json:"google_api_available"`
	BackgroundRunning bool   `json:"background_running"`
}

type syncPreviewItem struct {
	RawFormData      map[string]string  `json:"raw_form_data"`
	MappedSuggestion suggestionResponse `json:"mapped_suggestion"`
}

type syncPreviewResponse struct {
	TotalNewResponses int               `json:"total_new_responses"`
	Preview           []syncPreviewItem `json:"preview"`
	WouldImport       int               `json:"would_import"`
}

func suggestionDomainToResponse(sugestao domain.Sugestao) suggestionResponse {
	return suggestionResponse{
		ID:              sugestao.ID,
		Titulo:          sugestao.Titulo,
		Descricao:       sugestao.Descricao,
		SetorOrigem:     sugestao.SetorOrigem,
		SetorDestino:    sugestao.SetorDestino,
		Categoria:       sugestao.Categoria,
		Prioridade:      sugestao.Prioridade.String(),
		Status:          sugestao.Status.String(),
		NomeAutor:       sugestao.NomeAutor,
		EmailAutor:      sugestao.EmailAutor.String(),
		TipoUsuario:     sugestao.TipoUsuario.String(),
		Instituicao:     sugestao.Instituicao,
		CategoriaCurso:  sugestao.CategoriaCurso.String(),
		Fonte:           sugestao.Fonte,
		Observacoes:     sugestao.Observacoes,
		DadosOriginais:  sugestao.DadosOriginais,
		TimestampOrigem: sugestao.TimestampOrigem,
		CreatedAt:       sugestao.CreatedAt,
		UpdatedAt:       sugestao.UpdatedAt,
	}
}
