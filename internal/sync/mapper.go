package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

// RawRow é o mapeamento cabeçalho→valor de uma linha da planilha.
type RawRow map[string]string

// IdentityKey identifica deterministicamente uma linha importada. É derivada
// de (e-mail do autor, título derivado, carimbo bruto da célula), nunca de IDs
// gerados ou de horários resolvidos, para que a mesma linha rebuscada depois
// produza a mesma chave — inclusive quando o carimbo não é interpretável.
type IdentityKey struct {
	Email        string
	Titulo       string
	RawTimestamp string
}

// Hash retorna a forma compacta da chave, gravada junto do documento.
func (k IdentityKey) Hash() string {
	sum := sha256.Sum256([]byte(k.Email + "|" + k.Titulo + "|" + k.RawTimestamp))
	return hex.EncodeToString(sum[:])
}

// Candidate é uma sugestão mapeada ainda não conferida contra o banco.
type Candidate struct {
	Sugestao domain.Sugestao
	Key      IdentityKey
	Raw      RawRow
}

// Valores padrão aplicados quando o formulário não traz o campo. Nenhum campo
// lógico fica ausente no registro final.
const (
	DefaultNome         = "Usuário Anônimo"
	DefaultEmail        = "anonimo@forms.com"
	DefaultTitulo       = "Sugestão via Forms"
	DefaultDescricao    = "Sem descrição"
	DefaultSetorOrigem  = "Externo"
	DefaultSetorDestino = "Geral"
	DefaultCategoria    = "Geral"
)

// fieldAliases é a tabela estática de campo lógico → grafias de cabeçalho
// aceitas, em ordem de prioridade. O primeiro alias presente com valor não
// vazio vence.
var fieldAliases = []struct {
	campo   string
	aliases []string
}{
	{"nome", []string{"Nome", "Name", "Nome completo"}},
	{"email", []string{"E-mail", "Email", "Endereço de e-mail", "Endereço de email"}},
	{"titulo", []string{"Título", "Title", "Assunto", "Subject"}},
	{"descricao", []string{"Descrição", "Description", "Sugestão", "Suggestion", "Informe aqui sua sugestão:", "Comentário", "Comment", "Resposta", "Response"}},
	{"vinculo", []string{"Vínculo Institucional", "Vínculo", "Tipo de vínculo"}},
	{"instituicao", []string{"Instituição", "Institution", "Campus"}},
	{"categoriaCurso", []string{"Categoria de Curso", "Categoria do Curso", "Curso"}},
	{"setorOrigem", []string{"Setor", "Department"}},
	{"categoria", []string{"Categoria", "Category"}},
}

// MapRow traduz uma linha bruta no candidato canônico. É uma função pura:
// nenhuma E/S, mesmo par (linha, timestamp) produz sempre o mesmo resultado.
func MapRow(raw RawRow, observed time.Time) Candidate {
	fields := extractFields(raw)

	nome := fields["nome"]
	if nome == "" {
		nome = DefaultNome
	}
	email := fields["email"]
	if email == "" {
		email = DefaultEmail
	}

	vinculoRaw := fields["vinculo"]
	titulo := fields["titulo"]
	if titulo == "" {
		if vinculoRaw != "" {
			titulo = fmt.Sprintf("Sugestão - %s - %s", vinculoRaw, observed.Format("02/01/2006"))
		} else {
			titulo = DefaultTitulo
		}
	}

	descricao := fields["descricao"]
	if descricao == "" {
		descricao = DefaultDescricao
	}
	setorOrigem := fields["setorOrigem"]
	if setorOrigem == "" {
		if fields["instituicao"] != "" {
			setorOrigem = fields["instituicao"]
		} else {
			setorOrigem = DefaultSetorOrigem
		}
	}
	categoria := fields["categoria"]
	if categoria == "" {
		categoria = DefaultCategoria
	}

	dados := make(map[string]string, len(raw))
	for header, value := range raw {
		dados[header] = value
	}

	var rawTimestamp string
	for _, alias := range timestampAliases {
		if value := strings.TrimSpace(raw[alias]); value != "" {
			rawTimestamp = value
			break
		}
	}

	key := IdentityKey{Email: email, Titulo: titulo, RawTimestamp: rawTimestamp}

	sugestao := domain.Sugestao{
		Titulo:          titulo,
		Descricao:       descricao,
		SetorOrigem:     setorOrigem,
		SetorDestino:    DefaultSetorDestino,
		Categoria:       categoria,
		Prioridade:      domain.PrioridadeMedia,
		Status:          domain.StatusPendente,
		NomeAutor:       nome,
		EmailAutor:      domain.Email(email),
		TipoUsuario:     domain.ClassifyTipoUsuario(vinculoRaw),
		Instituicao:     fields["instituicao"],
		CategoriaCurso:  domain.ClassifyCategoriaCurso(fields["categoriaCurso"]),
		Fonte:           domain.FonteGoogleForms,
		ChaveImportacao: key.Hash(),
		TimestampBruto:  rawTimestamp,
		TimestampOrigem: observed,
		DadosOriginais:  dados,
		CreatedAt:       observed,
		UpdatedAt:       observed,
	}

	return Candidate{Sugestao: sugestao, Key: key, Raw: raw}
}

// extractFields percorre a tabela de aliases em ordem determinística.
func extractFields(raw RawRow) map[string]string {
	fields := make(map[string]string, len(fieldAliases))
	for _, mapping := range fieldAliases {
		for _, alias := range mapping.aliases {
			if value := strings.TrimSpace(raw[alias]); value != "" {
				fields[mapping.campo] = value
				break
			}
		}
	}
	return fields
}
