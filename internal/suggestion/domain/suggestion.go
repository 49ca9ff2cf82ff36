package domain

import "time"

// Sugestao representa uma sugestão registrada no sistema, seja criada por um
// usuário autenticado ou importada do formulário externo (Google Forms).
type Sugestao struct {
	ID              string
	Titulo          string
	Descricao       string
	SetorOrigem     string
	SetorDestino    string
	Categoria       string
	Prioridade      Prioridade
	Status          Status
	NomeAutor       string
	EmailAutor      Email
	TipoUsuario     TipoUsuario
	Instituicao     string
	CategoriaCurso  CategoriaCurso
	Fonte           string
	Observacoes     string
	UsuarioID       string
	ChaveImportacao string
	TimestampBruto  string
	TimestampOrigem time.Time
	DadosOriginais  map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Fontes reconhecidas de sugestões.
const (
	FonteAPI         = "api"
	FonteGoogleForms = "google_forms"
)
