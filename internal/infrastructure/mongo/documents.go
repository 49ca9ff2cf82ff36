package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SugestaoDocument é o esquema da coleção `sugestoes` no MongoDB.
// dadosOriginais preserva o par cabeçalho→valor bruto de linhas importadas
// do Google Forms para rastreabilidade.
type SugestaoDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Titulo          string             `bson:"titulo"`
	Descricao       string             `bson:"descricao"`
	SetorOrigem     string             `bson:"setorOrigem,omitempty"`
	SetorDestino    string             `bson:"setorDestino,omitempty"`
	Categoria       string             `bson:"categoria,omitempty"`
	Prioridade      string             `bson:"prioridade"`
	Status          string             `bson:"status"`
	NomeAutor       string             `bson:"nomeAutor,omitempty"`
	EmailAutor      string             `bson:"emailAutor,omitempty"`
	TipoUsuario     string             `bson:"tipoUsuario,omitempty"`
	Instituicao     string             `bson:"instituicao,omitempty"`
	CategoriaCurso  string             `bson:"categoriaCurso,omitempty"`
	Fonte           string             `bson:"fonte"`
	Observacoes     string             `bson:"observacoes,omitempty"`
	UsuarioID       string             `bson:"usuarioId,omitempty"`
	ChaveImportacao string             `bson:"chaveImportacao,omitempty"`
	TimestampBruto  string             `bson:"timestampOrigemBruto,omitempty"`
	TimestampOrigem time.Time          `bson:"timestampOrigem"`
	DadosOriginais  map[string]string  `bson:"dadosOriginais,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// LogDocument é o esquema da coleção `logs` (append-only).
type LogDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UsuarioID string             `bson:"usuarioId,omitempty"`
	Acao      string             `bson:"acao"`
	Detalhes  string             `bson:"detalhes"`
	Fonte     string             `bson:"fonte,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}
