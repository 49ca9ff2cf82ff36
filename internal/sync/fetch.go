package sync

import (
	"context"
	"log"
	"time"
)

// RowSource abstrai a fonte tabular externa. Fetch devolve a tabela inteira
// (cabeçalho + linhas); a fonte não oferece consulta incremental, então o
// recorte por cursor acontece do lado do cliente.
type RowSource interface {
	// Configured indica se o cliente externo foi inicializado com sucesso.
	Configured() bool
	// Fetch retorna o cabeçalho e as linhas de dados. Fonte não configurada
	// retorna vazio sem erro; falha de transporte retorna erro.
	Fetch(ctx context.Context) (headers []string, rows [][]string, err error)
}

// FetchedRow é uma linha bruta com o timestamp resolvido.
type FetchedRow struct {
	Raw       RawRow
	Timestamp time.Time
}

// Formatos de data aceitos no campo de carimbo, em ordem de prioridade.
// O formato brasileiro dia/mês vem antes do americano.
var sheetDateLayouts = []string{
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
}

var timestampAliases = []string{"Timestamp", "Carimbo de data/hora"}

// FilterNewRows preenche linhas curtas até a largura do cabeçalho, monta o
// RawRow e mantém apenas linhas com timestamp estritamente maior que o cursor.
// As células do carimbo são hora de parede local, sem fuso; loc diz em que
// fuso interpretá-las para que a comparação com o cursor use instantes reais.
// Linha sem data interpretável recebe o horário atual: ela ainda é considerada
// nova exatamente uma vez, em vez de ser descartada.
func FilterNewRows(headers []string, rows [][]string, cursor time.Time, now func() time.Time, loc *time.Location, logger *log.Logger) []FetchedRow {
	if loc == nil {
		loc = time.Local
	}
	result := make([]FetchedRow, 0)
	for _, row := range rows {
		raw := zipRow(headers, row)

		var timestampRaw string
		for _, alias := range timestampAliases {
			if value := raw[alias]; value != "" {
				timestampRaw = value
				break
			}
		}

		resolved, ok := parseSheetDate(timestampRaw, loc)
		if !ok {
			if logger != nil {
				logger.Printf("não foi possível interpretar a data %q, usando horário atual", timestampRaw)
			}
			resolved = now()
		}

		if resolved.After(cursor) {
			result = append(result, FetchedRow{Raw: raw, Timestamp: resolved})
		}
	}
	return result
}

// zipRow alinha uma linha ao cabeçalho, tratando células finais ausentes
// como strings vazias.
func zipRow(headers []string, row []string) RawRow {
	raw := make(RawRow, len(headers))
	for i, header := range headers {
		if i < len(row) {
			raw[header] = row[i]
		} else {
			raw[header] = ""
		}
	}
	return raw
}

// parseSheetDate tenta os formatos conhecidos na ordem fixa de prioridade,
// interpretando o valor no fuso informado.
func parseSheetDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range sheetDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
