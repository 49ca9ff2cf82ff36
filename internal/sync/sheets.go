package sync

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig reúne os parâmetros de acesso à planilha do Google Forms.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	Scopes          []string
}

// SheetsSource lê as respostas do formulário direto da planilha de respaldo,
// via API do Google Sheets. Implementa RowSource.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSheetsSource inicializa o cliente do Google Sheets. Credencial ausente ou
// planilha não configurada não é erro fatal: a fonte fica desativada e toda
// busca responde vazio, para não travar o agendador por má configuração.
func NewSheetsSource(ctx context.Context, cfg SheetsConfig, logger *log.Logger) *SheetsSource {
	source := &SheetsSource{
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}

	if cfg.SpreadsheetID == "" {
		if logger != nil {
			logger.Printf("Google Sheets não configurado (GOOGLE_SHEETS_ID vazio)")
		}
		return source
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		if logger != nil {
			logger.Printf("arquivo de credenciais não encontrado: %s", cfg.CredentialsFile)
		}
		return source
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{sheets.SpreadsheetsReadonlyScope}
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(scopes...),
	)
	if err != nil {
		if logger != nil {
			logger.Printf("falha ao inicializar cliente Google Sheets: %v", err)
		}
		return source
	}

	source.service = service
	if logger != nil {
		logger.Printf("cliente Google Sheets inicializado")
	}
	return source
}

// Configured informa se o cliente externo está pronto para buscar dados.
func (s *SheetsSource) Configured() bool {
	return s.service != nil && s.spreadsheetID != ""
}

// Fetch busca a tabela inteira (A:Z) em uma única requisição. Falha de
// transporte em cliente inicializado é erro duro; fonte desativada responde
// vazio sem erro.
func (s *SheetsSource) Fetch(ctx context.Context) ([]string, [][]string, error) {
	if !s.Configured() {
		return nil, nil, nil
	}

	rangeName := fmt.Sprintf("%s!A:Z", s.sheetName)
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeName).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("buscar valores da planilha: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	headers := cellsToStrings(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rows = append(rows, cellsToStrings(row))
	}
	return headers, rows, nil
}

func cellsToStrings(cells []interface{}) []string {
	result := make([]string, 0, len(cells))
	for _, cell := range cells {
		result = append(result, fmt.Sprint(cell))
	}
	return result
}
