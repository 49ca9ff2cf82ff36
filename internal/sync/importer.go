package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

// SuggestionStore é a superfície de persistência que o importador precisa.
type SuggestionStore interface {
	FindByImportKey(ctx context.Context, key IdentityKey) (bool, error)
	Insert(ctx context.Context, sugestao *domain.Sugestao) error
}

// AuditLog registra uma entrada de auditoria por importação bem sucedida.
type AuditLog interface {
	Append(ctx context.Context, entry domain.LogEntry) error
}

// ImportResult agrega o resultado de um lote de candidatos.
type ImportResult struct {
	Imported   int
	Duplicates int
	Errors     []error
	// EarliestFailure é o timestamp da linha mais antiga que falhou ao
	// persistir. O orquestrador usa esse valor para não avançar o cursor
	// além dela, garantindo nova tentativa no próximo ciclo.
	EarliestFailure *time.Time
}

// Importer executa a etapa de deduplicação e persistência: consulta a chave
// de importação, grava quando inédita e registra auditoria. Falha em um
// candidato não aborta o restante do lote.
type Importer struct {
	store  SuggestionStore
	audit  AuditLog
	logger *log.Logger
	action string
}

// NewImporter monta o importador sobre o armazenamento e o log de auditoria.
func NewImporter(store SuggestionStore, audit AuditLog, logger *log.Logger) *Importer {
	return &Importer{store: store, audit: audit, logger: logger, action: domain.AcaoImportarSugestao}
}

// WithAction troca a ação de auditoria registrada (ex.: importação histórica).
func (i *Importer) WithAction(action string) *Importer {
	clone := *i
	clone.action = action
	return &clone
}

// Persist processa os candidatos em sequência, mantendo a checagem de
// duplicata consistente e o log ordenado.
func (i *Importer) Persist(ctx context.Context, candidates []Candidate) ImportResult {
	result := ImportResult{}

	for _, candidate := range candidates {
		exists, err := i.store.FindByImportKey(ctx, candidate.Key)
		if err != nil {
			i.recordFailure(&result, candidate, fmt.Errorf("consultar duplicata de %q: %w", candidate.Sugestao.Titulo, err))
			continue
		}
		if exists {
			result.Duplicates++
			if i.logger != nil {
				i.logger.Printf("sugestão já existe, ignorando: %s", candidate.Sugestao.Titulo)
			}
			continue
		}

		sugestao := candidate.Sugestao
		if err := i.store.Insert(ctx, &sugestao); err != nil {
			i.recordFailure(&result, candidate, fmt.Errorf("gravar sugestão %q: %w", candidate.Sugestao.Titulo, err))
			continue
		}
		result.Imported++

		if i.audit != nil {
			entry := domain.LogEntry{
				Acao:      i.action,
				Detalhes:  fmt.Sprintf("Importada sugestão via Google Forms: %s", sugestao.Titulo),
				Fonte:     domain.FonteGoogleForms,
				CreatedAt: time.Now().UTC(),
			}
			if err := i.audit.Append(ctx, entry); err != nil {
				// A sugestão já está gravada; desfazer reabriria a janela de
				// dupla escrita que a chave de importação fecha.
				result.Errors = append(result.Errors, fmt.Errorf("registrar auditoria de %q: %w", sugestao.Titulo, err))
				if i.logger != nil {
					i.logger.Printf("falha ao registrar auditoria: %v", err)
				}
			}
		}
	}

	return result
}

func (i *Importer) recordFailure(result *ImportResult, candidate Candidate, err error) {
	result.Errors = append(result.Errors, err)
	ts := candidate.Sugestao.TimestampOrigem
	if result.EarliestFailure == nil || ts.Before(*result.EarliestFailure) {
		result.EarliestFailure = &ts
	}
	if i.logger != nil {
		i.logger.Printf("erro ao processar candidato: %v", err)
	}
}
