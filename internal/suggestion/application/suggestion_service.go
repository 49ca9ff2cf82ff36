package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

type suggestionService struct {
	repo SuggestionRepository
	logs LogRepository
	now  Clock
}

// NewSuggestionService monta o serviço de sugestões sobre os repositórios.
func NewSuggestionService(repo SuggestionRepository, logs LogRepository, now Clock) SuggestionService {
	if now == nil {
		now = time.Now
	}
	return &suggestionService{repo: repo, logs: logs, now: now}
}

func (s *suggestionService) List(ctx context.Context, filter SuggestionFilter, paging Paging) ([]domain.Sugestao, error) {
	return s.repo.Find(ctx, filter, paging)
}

func (s *suggestionService) Detail(ctx context.Context, id string) (*domain.Sugestao, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *suggestionService) Create(ctx context.Context, cmd CreateSuggestionCommand) (*domain.Sugestao, error) {
	sugestao, err := buildSugestaoFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sugestao.TimestampOrigem = now
	sugestao.CreatedAt = now
	sugestao.UpdatedAt = now
	if err := s.repo.Insert(ctx, sugestao); err != nil {
		return nil, err
	}
	s.appendLog(ctx, domain.LogEntry{
		UsuarioID: cmd.UsuarioID,
		Acao:      domain.AcaoCriarSugestao,
		Detalhes:  fmt.Sprintf("Sugestão criada via API: %s", sugestao.Titulo),
		Fonte:     domain.FonteAPI,
		CreatedAt: now,
	})
	return sugestao, nil
}

func (s *suggestionService) UpdateTriage(ctx context.Context, id string, cmd TriageCommand, actorID string) (*domain.Sugestao, error) {
	sugestao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if cmd.Status != nil {
		status, err := domain.NewStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		sugestao.Status = status
		changed = true
	}
	if cmd.Prioridade != nil {
		prioridade, err := domain.NewPrioridade(*cmd.Prioridade)
		if err != nil {
			return nil, err
		}
		sugestao.Prioridade = prioridade
		changed = true
	}
	if cmd.SetorDestino != nil {
		destino := strings.TrimSpace(*cmd.SetorDestino)
		if destino == "" {
			return nil, errors.New("setor de destino não pode ser vazio")
		}
		sugestao.SetorDestino = destino
		changed = true
	}
	if cmd.Observacoes != nil {
		sugestao.Observacoes = strings.TrimSpace(*cmd.Observacoes)
		changed = true
	}
	if !changed {
		return nil, errors.New("nenhuma alteração informada")
	}

	sugestao.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, sugestao); err != nil {
		return nil, err
	}
	s.appendLog(ctx, domain.LogEntry{
		UsuarioID: actorID,
		Acao:      domain.AcaoAtualizarSugestao,
		Detalhes:  fmt.Sprintf("Sugestão %s atualizada na triagem", sugestao.ID),
		Fonte:     domain.FonteAPI,
		CreatedAt: sugestao.UpdatedAt,
	})
	return sugestao, nil
}

func (s *suggestionService) Dashboard(ctx context.Context) (DashboardStats, error) {
	return s.repo.Stats(ctx, s.now().UTC())
}

// appendLog registra auditoria sem propagar falha: o log nunca deve
// desfazer uma operação de negócio já concluída.
func (s *suggestionService) appendLog(ctx context.Context, entry domain.LogEntry) {
	if s.logs == nil {
		return
	}
	_ = s.logs.Append(ctx, entry)
}

func buildSugestaoFromCommand(cmd CreateSuggestionCommand) (*domain.Sugestao, error) {
	titulo := strings.TrimSpace(cmd.Titulo)
	if titulo == "" {
		return nil, errors.New("título é obrigatório")
	}
	descricao := strings.TrimSpace(cmd.Descricao)
	if descricao == "" {
		return nil, errors.New("descrição é obrigatória")
	}
	prioridade, err := domain.NewPrioridade(cmd.Prioridade)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(cmd.EmailAutor)
	if err != nil {
		return nil, err
	}

	setorOrigem := strings.TrimSpace(cmd.SetorOrigem)
	if setorOrigem == "" {
		setorOrigem = "Externo"
	}
	setorDestino := strings.TrimSpace(cmd.SetorDestino)
	if setorDestino == "" {
		setorDestino = "Geral"
	}
	categoria := strings.TrimSpace(cmd.Categoria)
	if categoria == "" {
		categoria = "Geral"
	}

	return &domain.Sugestao{
		Titulo:       titulo,
		Descricao:    descricao,
		SetorOrigem:  setorOrigem,
		SetorDestino: setorDestino,
		Categoria:    categoria,
		Prioridade:   prioridade,
		Status:       domain.StatusPendente,
		NomeAutor:    strings.TrimSpace(cmd.NomeAutor),
		EmailAutor:   email,
		TipoUsuario:  domain.ClassifyTipoUsuario(cmd.TipoUsuario),
		Fonte:        domain.FonteAPI,
		UsuarioID:    cmd.UsuarioID,
	}, nil
}

type logService struct {
	repo LogRepository
}

// NewLogService monta o serviço de consulta do log de auditoria.
func NewLogService(repo LogRepository) LogService {
	return &logService{repo: repo}
}

func (s *logService) List(ctx context.Context, paging Paging) ([]domain.LogEntry, error) {
	return s.repo.List(ctx, paging)
}
