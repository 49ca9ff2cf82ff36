package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

type Status string

// Estados possíveis de uma sugestão no fluxo de triagem.
const (
	StatusPendente     Status = "pendente"
	StatusEmAnalise    Status = "em_analise"
	StatusAprovada     Status = "aprovada"
	StatusRejeitada    Status = "rejeitada"
	StatusImplementada Status = "implementada"
)

func NewStatus(value string) (Status, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	switch Status(trimmed) {
	case StatusPendente, StatusEmAnalise, StatusAprovada, StatusRejeitada, StatusImplementada:
		return Status(trimmed), nil
	}
	return "", fmt.Errorf("status inválido: %s", value)
}

func (s Status) String() string {
	return string(s)
}

type Prioridade string

const (
	PrioridadeBaixa   Prioridade = "baixa"
	PrioridadeMedia   Prioridade = "media"
	PrioridadeAlta    Prioridade = "alta"
	PrioridadeUrgente Prioridade = "urgente"
)

func NewPrioridade(value string) (Prioridade, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return PrioridadeMedia, nil
	}
	switch Prioridade(trimmed) {
	case PrioridadeBaixa, PrioridadeMedia, PrioridadeAlta, PrioridadeUrgente:
		return Prioridade(trimmed), nil
	}
	return "", fmt.Errorf("prioridade inválida: %s", value)
}

func (p Prioridade) String() string {
	return string(p)
}

// TipoUsuario classifica o vínculo institucional de quem sugeriu.
// Valores não reconhecidos caem em TipoUsuarioOutro, nunca em erro.
type TipoUsuario string

const (
	TipoUsuarioAluno     TipoUsuario = "aluno"
	TipoUsuarioProfessor TipoUsuario = "professor"
	TipoUsuarioServidor  TipoUsuario = "servidor"
	TipoUsuarioTecnico   TipoUsuario = "tecnico"
	TipoUsuarioEgresso   TipoUsuario = "egresso"
	TipoUsuarioOutro     TipoUsuario = "outro"
)

// ClassifyTipoUsuario normaliza o texto livre do formulário para o enum fechado.
func ClassifyTipoUsuario(value string) TipoUsuario {
	switch normalizeToken(value) {
	case "aluno", "aluna", "estudante", "discente", "student":
		return TipoUsuarioAluno
	case "professor", "professora", "docente", "teacher":
		return TipoUsuarioProfessor
	case "servidor", "servidora", "funcionario", "funcionaria":
		return TipoUsuarioServidor
	case "tecnico", "tecnica", "tecnico administrativo", "tecnico-administrativo":
		return TipoUsuarioTecnico
	case "egresso", "egressa", "ex-aluno", "ex-aluna", "alumni":
		return TipoUsuarioEgresso
	}
	return TipoUsuarioOutro
}

func (t TipoUsuario) String() string {
	return string(t)
}

// CategoriaCurso classifica a categoria de curso informada no formulário.
type CategoriaCurso string

const (
	CategoriaCursoGraduacao    CategoriaCurso = "graduacao"
	CategoriaCursoPosGraduacao CategoriaCurso = "pos_graduacao"
	CategoriaCursoTecnico      CategoriaCurso = "tecnico"
	CategoriaCursoExtensao     CategoriaCurso = "extensao"
	CategoriaCursoOutro        CategoriaCurso = "outro"
)

// ClassifyCategoriaCurso normaliza o texto livre para o enum fechado,
// com fallback em CategoriaCursoOutro.
func ClassifyCategoriaCurso(value string) CategoriaCurso {
	switch normalizeToken(value) {
	case "graduacao", "bacharelado", "licenciatura", "superior":
		return CategoriaCursoGraduacao
	case "pos", "pos-graduacao", "pos graduacao", "mestrado", "doutorado", "especializacao":
		return CategoriaCursoPosGraduacao
	case "tecnico", "curso tecnico", "medio tecnico":
		return CategoriaCursoTecnico
	case "extensao", "curso de extensao":
		return CategoriaCursoExtensao
	}
	return CategoriaCursoOutro
}

func (c CategoriaCurso) String() string {
	return string(c)
}

type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("e-mail muito longo")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("e-mail inválido: %w", err)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

// normalizeToken baixa a caixa e remove acentos comuns do português para
// comparação tolerante com o texto livre das planilhas.
func normalizeToken(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "ã", "a", "â", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "õ", "o", "ô", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
	return replacer.Replace(lowered)
}
