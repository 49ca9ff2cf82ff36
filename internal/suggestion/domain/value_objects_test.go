package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{name: "pendente", input: "pendente", want: StatusPendente},
		{name: "caixa alta é normalizada", input: "APROVADA", want: StatusAprovada},
		{name: "espaços são ignorados", input: "  em_analise  ", want: StatusEmAnalise},
		{name: "valor desconhecido", input: "arquivada", wantErr: true},
		{name: "vazio", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPrioridade(t *testing.T) {
	got, err := NewPrioridade("URGENTE")
	require.NoError(t, err)
	assert.Equal(t, PrioridadeUrgente, got)

	// Vazio assume o padrão em vez de falhar.
	got, err = NewPrioridade("")
	require.NoError(t, err)
	assert.Equal(t, PrioridadeMedia, got)

	_, err = NewPrioridade("altíssima")
	assert.Error(t, err)
}

func TestClassifyTipoUsuario(t *testing.T) {
	tests := []struct {
		input string
		want  TipoUsuario
	}{
		{"Aluno", TipoUsuarioAluno},
		{"aluna", TipoUsuarioAluno},
		{"ESTUDANTE", TipoUsuarioAluno},
		{"Professôr", TipoUsuarioProfessor},
		{"docente", TipoUsuarioProfessor},
		{"Servidor", TipoUsuarioServidor},
		{"funcionária", TipoUsuarioServidor},
		{"Técnico", TipoUsuarioTecnico},
		{"técnico-administrativo", TipoUsuarioTecnico},
		{"Egresso", TipoUsuarioEgresso},
		{"ex-aluna", TipoUsuarioEgresso},
		{"visitante", TipoUsuarioOutro},
		{"", TipoUsuarioOutro},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTipoUsuario(tt.input))
		})
	}
}

func TestClassifyCategoriaCurso(t *testing.T) {
	tests := []struct {
		input string
		want  CategoriaCurso
	}{
		{"Graduação", CategoriaCursoGraduacao},
		{"licenciatura", CategoriaCursoGraduacao},
		{"Pós-graduação", CategoriaCursoPosGraduacao},
		{"mestrado", CategoriaCursoPosGraduacao},
		{"Técnico", CategoriaCursoTecnico},
		{"Extensão", CategoriaCursoExtensao},
		{"livre", CategoriaCursoOutro},
		{"", CategoriaCursoOutro},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategoriaCurso(tt.input))
		})
	}
}

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("maria@ifes.edu.br")
	require.NoError(t, err)
	assert.Equal(t, "maria@ifes.edu.br", email.String())

	// Vazio é aceito: o formulário pode não pedir e-mail.
	email, err = NewEmail("")
	require.NoError(t, err)
	assert.Equal(t, "", email.String())

	_, err = NewEmail("sem-arroba")
	assert.Error(t, err)
}
