package domain

import "time"

// LogEntry é um registro de auditoria append-only. UsuarioID vazio indica
// ação executada pelo próprio sistema (ex.: importação do Google Forms).
type LogEntry struct {
	ID        string
	UsuarioID string
	Acao      string
	Detalhes  string
	Fonte     string
	CreatedAt time.Time
}

// Ações de auditoria registradas por este backend.
const (
	AcaoImportarSugestao  = "IMPORT_SUGGESTION"
	AcaoImportarHistorico = "IMPORT_HISTORICAL_DATA"
	AcaoCriarSugestao     = "CREATE_SUGGESTION"
	AcaoAtualizarSugestao = "UPDATE_SUGGESTION"
)
