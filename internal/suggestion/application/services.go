package application

import (
	"context"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

// SuggestionRepository expõe as operações de persistência de sugestões.
type SuggestionRepository interface {
	Find(ctx context.Context, filter SuggestionFilter, paging Paging) ([]domain.Sugestao, error)
	FindByID(ctx context.Context, id string) (*domain.Sugestao, error)
	Insert(ctx context.Context, sugestao *domain.Sugestao) error
	Update(ctx context.Context, sugestao *domain.Sugestao) error
	Stats(ctx context.Context, ref time.Time) (DashboardStats, error)
}

// LogRepository permite registrar e listar entradas de auditoria.
type LogRepository interface {
	Append(ctx context.Context, entry domain.LogEntry) error
	List(ctx context.Context, paging Paging) ([]domain.LogEntry, error)
}

// SuggestionFilter expressa os critérios de busca da triagem.
type SuggestionFilter struct {
	Status      string
	Prioridade  string
	TipoUsuario string
	Fonte       string
	UsuarioID   string
	Keyword     string
}

// Paging controla a paginação das listagens.
type Paging struct {
	Page  int
	Limit int
}

// SuggestionService descreve os casos de uso de triagem (admin).
type SuggestionService interface {
	List(ctx context.Context, filter SuggestionFilter, paging Paging) ([]domain.Sugestao, error)
	Detail(ctx context.Context, id string) (*domain.Sugestao, error)
	Create(ctx context.Context, cmd CreateSuggestionCommand) (*domain.Sugestao, error)
	UpdateTriage(ctx context.Context, id string, cmd TriageCommand, actorID string) (*domain.Sugestao, error)
	Dashboard(ctx context.Context) (DashboardStats, error)
}

// StatusCount é o par status → quantidade da visão agregada.
type StatusCount struct {
	Status string
	Total  int
}

// MonthCount é o par mês (AAAA-MM) → quantidade, em ordem cronológica.
type MonthCount struct {
	Mes   string
	Total int
}

// DashboardStats agrega os números exibidos no painel administrativo.
type DashboardStats struct {
	TotalSugestoes int
	SugestoesNoMes int
	Pendentes      int
	Aprovadas      int
	PorStatus      []StatusCount
	PorMes         []MonthCount
}

// LogService descreve a consulta do log de auditoria.
type LogService interface {
	List(ctx context.Context, paging Paging) ([]domain.LogEntry, error)
}

// CreateSuggestionCommand carrega os dados de uma nova sugestão via API.
type CreateSuggestionCommand struct {
	Titulo       string
	Descricao    string
	SetorOrigem  string
	SetorDestino string
	Categoria    string
	Prioridade   string
	NomeAutor    string
	EmailAutor   string
	TipoUsuario  string
	UsuarioID    string
}

// TriageCommand carrega as alterações permitidas na triagem de uma sugestão.
type TriageCommand struct {
	Status       *string
	Prioridade   *string
	SetorDestino *string
	Observacoes  *string
}

// Clock abstrai o relógio para manter os serviços testáveis.
type Clock func() time.Time
