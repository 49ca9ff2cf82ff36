package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

func TestMapRow_GoogleFormsRow(t *testing.T) {
	observed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	raw := RawRow{
		"Timestamp":                 "01/06/2025 10:00:00",
		"Vínculo Institucional":     "Aluno",
		"Informe aqui sua sugestão:": "Melhorar o wifi",
	}

	candidate := MapRow(raw, observed)
	sugestao := candidate.Sugestao

	assert.Equal(t, "Sugestão - Aluno - 01/06/2025", sugestao.Titulo)
	assert.Equal(t, "Melhorar o wifi", sugestao.Descricao)
	assert.Equal(t, domain.StatusPendente, sugestao.Status)
	assert.Equal(t, domain.PrioridadeMedia, sugestao.Prioridade)
	assert.Equal(t, domain.TipoUsuarioAluno, sugestao.TipoUsuario)
	assert.Equal(t, domain.FonteGoogleForms, sugestao.Fonte)
	assert.Equal(t, DefaultNome, sugestao.NomeAutor)
	assert.Equal(t, DefaultEmail, sugestao.EmailAutor.String())
	assert.Equal(t, observed, sugestao.TimestampOrigem)
	assert.Equal(t, "Melhorar o wifi", sugestao.DadosOriginais["Informe aqui sua sugestão:"])
}

func TestMapRow_AllFieldsMissing(t *testing.T) {
	observed := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

	candidate := MapRow(RawRow{}, observed)
	sugestao := candidate.Sugestao

	assert.Equal(t, DefaultTitulo, sugestao.Titulo)
	assert.Equal(t, DefaultDescricao, sugestao.Descricao)
	assert.Equal(t, DefaultSetorOrigem, sugestao.SetorOrigem)
	assert.Equal(t, DefaultSetorDestino, sugestao.SetorDestino)
	assert.Equal(t, DefaultCategoria, sugestao.Categoria)
	assert.Equal(t, DefaultNome, sugestao.NomeAutor)
	assert.Equal(t, DefaultEmail, sugestao.EmailAutor.String())
	assert.Equal(t, domain.TipoUsuarioOutro, sugestao.TipoUsuario)
	assert.Equal(t, domain.CategoriaCursoOutro, sugestao.CategoriaCurso)
}

func TestMapRow_AliasPriority(t *testing.T) {
	observed := time.Now()
	raw := RawRow{
		"Título":      "Título oficial",
		"Assunto":     "Assunto alternativo",
		"Descrição":   "Descrição direta",
		"Sugestão":    "Sugestão alternativa",
		"E-mail":      "maria@ifes.edu.br",
		"Email":       "outro@ifes.edu.br",
		"Instituição": "Campus Serra",
	}

	candidate := MapRow(raw, observed)

	assert.Equal(t, "Título oficial", candidate.Sugestao.Titulo)
	assert.Equal(t, "Descrição direta", candidate.Sugestao.Descricao)
	assert.Equal(t, "maria@ifes.edu.br", candidate.Sugestao.EmailAutor.String())
	// Sem "Setor" explícito, a instituição vira o setor de origem.
	assert.Equal(t, "Campus Serra", candidate.Sugestao.SetorOrigem)
	assert.Equal(t, "Campus Serra", candidate.Sugestao.Instituicao)
}

func TestMapRow_Deterministic(t *testing.T) {
	observed := time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)
	raw := RawRow{
		"Nome":                  "João",
		"E-mail":                "joao@aluno.ifes.edu.br",
		"Vínculo Institucional": "Professor",
		"Sugestão":              "Mais tomadas na biblioteca",
	}

	first := MapRow(raw, observed)
	second := MapRow(raw, observed)

	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Key.Hash(), second.Key.Hash())
	assert.Equal(t, first.Sugestao, second.Sugestao)
}

func TestIdentityKey_HashChangesWithFields(t *testing.T) {
	base := IdentityKey{Email: "a@b.com", Titulo: "Título", RawTimestamp: "20/05/2025 14:00:00"}

	require.NotEmpty(t, base.Hash())
	assert.NotEqual(t, base.Hash(), IdentityKey{Email: "c@d.com", Titulo: "Título", RawTimestamp: "20/05/2025 14:00:00"}.Hash())
	assert.NotEqual(t, base.Hash(), IdentityKey{Email: "a@b.com", Titulo: "Outro", RawTimestamp: "20/05/2025 14:00:00"}.Hash())
	assert.NotEqual(t, base.Hash(), IdentityKey{Email: "a@b.com", Titulo: "Título", RawTimestamp: "20/05/2025 14:00:01"}.Hash())
}

func TestMapRow_KeyMatchesDerivedFields(t *testing.T) {
	observed := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	raw := RawRow{
		"Timestamp":             "02/07/2025 09:00:00",
		"Vínculo Institucional": "Servidor",
		"Sugestão":              "Ampliar o horário do restaurante",
	}

	candidate := MapRow(raw, observed)

	assert.Equal(t, candidate.Sugestao.EmailAutor.String(), candidate.Key.Email)
	assert.Equal(t, candidate.Sugestao.Titulo, candidate.Key.Titulo)
	assert.Equal(t, "02/07/2025 09:00:00", candidate.Key.RawTimestamp)
	assert.Equal(t, "02/07/2025 09:00:00", candidate.Sugestao.TimestampBruto)
	assert.Equal(t, candidate.Key.Hash(), candidate.Sugestao.ChaveImportacao)
}

func TestMapRow_UnparsableTimestampKeepsStableKey(t *testing.T) {
	// Linha cujo carimbo não é interpretável recebe horários observados
	// diferentes a cada ciclo; a chave fica no valor bruto da célula para
	// que a deduplicação continue reconhecendo a mesma linha.
	raw := RawRow{
		"Timestamp":             "ontem de manhã",
		"Vínculo Institucional": "Aluno",
		"Título":                "Pintar o bloco C",
		"Sugestão":              "Pintar o bloco C",
	}

	first := MapRow(raw, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	second := MapRow(raw, time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC))

	assert.Equal(t, "ontem de manhã", first.Key.RawTimestamp)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Sugestao.ChaveImportacao, second.Sugestao.ChaveImportacao)
}
