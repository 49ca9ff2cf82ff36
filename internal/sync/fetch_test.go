package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipRow_PadsShortRows(t *testing.T) {
	headers := []string{"Timestamp", "Nome", "Sugestão"}

	raw := zipRow(headers, []string{"01/06/2025 10:00:00"})

	assert.Equal(t, "01/06/2025 10:00:00", raw["Timestamp"])
	assert.Equal(t, "", raw["Nome"])
	assert.Equal(t, "", raw["Sugestão"])
}

func TestParseSheetDate_BrazilianLayoutWins(t *testing.T) {
	// 01/06/2025 é ambíguo; o formato dia/mês tem prioridade.
	parsed, ok := parseSheetDate("01/06/2025 10:00:00", time.UTC)

	require.True(t, ok)
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 1, parsed.Day())
}

func TestParseSheetDate_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "ISO com hora",
			value: "2025-06-01 10:00:00",
			want:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "data brasileira sem hora",
			value: "15/03/2025",
			want:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "ISO sem hora",
			value: "2025-03-15",
			want:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "texto livre",
			value: "ontem de manhã",
			ok:    false,
		},
		{
			name:  "vazio",
			value: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := parseSheetDate(tt.value, time.UTC)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, parsed.Equal(tt.want), "esperado %s, obtido %s", tt.want, parsed)
			}
		})
	}
}

func TestFilterNewRows_KeepsOnlyRowsAfterCursor(t *testing.T) {
	headers := []string{"Timestamp", "Sugestão"}
	rows := [][]string{
		{"01/05/2025 09:00:00", "antiga"},
		{"01/06/2025 10:00:00", "nova"},
		{"02/06/2025 11:00:00", "mais nova"},
	}
	cursor := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	fetched := FilterNewRows(headers, rows, cursor, time.Now, time.UTC, nil)

	require.Len(t, fetched, 2)
	assert.Equal(t, "nova", fetched[0].Raw["Sugestão"])
	assert.Equal(t, "mais nova", fetched[1].Raw["Sugestão"])
}

func TestFilterNewRows_RowAtCursorIsExcluded(t *testing.T) {
	headers := []string{"Timestamp", "Sugestão"}
	cursor := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := [][]string{
		{"01/06/2025 10:00:00", "exatamente no cursor"},
	}

	fetched := FilterNewRows(headers, rows, cursor, time.Now, time.UTC, nil)

	assert.Empty(t, fetched)
}

func TestFilterNewRows_UnparsableTimestampGetsNow(t *testing.T) {
	headers := []string{"Timestamp", "Sugestão"}
	rows := [][]string{
		{"data inválida", "sem carimbo legível"},
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cursor := now.Add(-time.Hour)

	fetched := FilterNewRows(headers, rows, cursor, func() time.Time { return now }, time.UTC, nil)

	require.Len(t, fetched, 1)
	assert.Equal(t, now, fetched[0].Timestamp)
}

func TestFilterNewRows_InterpretsCellsInConfiguredZone(t *testing.T) {
	// O carimbo da célula é hora de parede de Brasília. Com o cursor gravado
	// em instante real, uma resposta de um minuto depois do cursor precisa
	// aparecer; interpretada como UTC ela cairia 3h no passado e sumiria.
	brt := time.FixedZone("BRT", -3*60*60)
	headers := []string{"Timestamp", "Sugestão"}
	rows := [][]string{
		{"01/06/2025 10:01:00", "logo após o cursor"},
	}
	cursor := time.Date(2025, 6, 1, 10, 0, 0, 0, brt)

	fetched := FilterNewRows(headers, rows, cursor, time.Now, brt, nil)

	require.Len(t, fetched, 1)
	assert.True(t, fetched[0].Timestamp.Equal(time.Date(2025, 6, 1, 10, 1, 0, 0, brt)))
}

func TestFilterNewRows_AcceptsCarimboHeader(t *testing.T) {
	headers := []string{"Carimbo de data/hora", "Sugestão"}
	rows := [][]string{
		{"01/06/2025 10:00:00", "com cabeçalho em português"},
	}
	cursor := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	fetched := FilterNewRows(headers, rows, cursor, time.Now, time.UTC, nil)

	require.Len(t, fetched, 1)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), fetched[0].Timestamp)
}
