package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
	syncengine "github.com/INV1906/CPA-FORMS-DASH/internal/sync"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestionRepository persiste o agregado Sugestao na coleção do MongoDB.
// Atende tanto a triagem administrativa quanto o motor de sincronização.
type SuggestionRepository struct {
	sugestoes *mongo.Collection
}

// NewSuggestionRepository vincula o repositório à coleção configurada.
func NewSuggestionRepository(db *mongo.Database, collection string) *SuggestionRepository {
	return &SuggestionRepository{sugestoes: db.Collection(collection)}
}

// Find converte o filtro de triagem em consulta Mongo e retorna a página pedida.
func (r *SuggestionRepository) Find(ctx context.Context, filter application.SuggestionFilter, paging application.Paging) ([]domain.Sugestao, error) {
	mongoFilter := bson.M{}
	if status := strings.TrimSpace(filter.Status); status != "" {
		mongoFilter["status"] = status
	}
	if prioridade := strings.TrimSpace(filter.Prioridade); prioridade != "" {
		mongoFilter["prioridade"] = prioridade
	}
	if tipo := strings.TrimSpace(filter.TipoUsuario); tipo != "" {
		mongoFilter["tipoUsuario"] = tipo
	}
	if fonte := strings.TrimSpace(filter.Fonte); fonte != "" {
		mongoFilter["fonte"] = fonte
	}
	if usuarioID := strings.TrimSpace(filter.UsuarioID); usuarioID != "" {
		mongoFilter["usuarioId"] = usuarioID
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"titulo": pattern},
			bson.M{"descricao": pattern},
			bson.M{"nomeAutor": pattern},
			bson.M{"setorOrigem": pattern},
		}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.sugestoes.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sugestoes := make([]domain.Sugestao, 0)
	for cursor.Next(ctx) {
		var doc SugestaoDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		sugestoes = append(sugestoes, mapSugestaoDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return sugestoes, nil
}

// FindByID converte o ID textual em ObjectID e restaura a entidade.
func (r *SuggestionRepository) FindByID(ctx context.Context, id string) (*domain.Sugestao, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	var doc SugestaoDocument
	if err := r.sugestoes.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}
	sugestao := mapSugestaoDocument(doc)
	return &sugestao, nil
}

// Insert grava uma nova sugestão e devolve o ID gerado na entidade.
func (r *SuggestionRepository) Insert(ctx context.Context, sugestao *domain.Sugestao) error {
	if sugestao == nil {
		return errors.New("sugestão vazia")
	}
	doc := mapDomainSugestaoToDocument(sugestao)
	doc.ID = primitive.NewObjectID()
	sugestao.ID = doc.ID.Hex()
	_, err := r.sugestoes.InsertOne(ctx, doc)
	return err
}

// Update substitui os campos mutáveis da triagem via $set.
func (r *SuggestionRepository) Update(ctx context.Context, sugestao *domain.Sugestao) error {
	if sugestao == nil {
		return errors.New("sugestão vazia")
	}
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(sugestao.ID))
	if err != nil {
		return err
	}
	update := bson.M{
		"status":       sugestao.Status.String(),
		"prioridade":   sugestao.Prioridade.String(),
		"setorDestino": sugestao.SetorDestino,
		"observacoes":  sugestao.Observacoes,
		"updatedAt":    sugestao.UpdatedAt,
	}
	_, err = r.sugestoes.UpdateByID(ctx, objectID, bson.M{"$set": update})
	return err
}

// Stats calcula os agregados do painel administrativo: total geral, recortes
// por status e a série dos últimos doze meses relativa a ref.
func (r *SuggestionRepository) Stats(ctx context.Context, ref time.Time) (application.DashboardStats, error) {
	stats := application.DashboardStats{}

	total, err := r.sugestoes.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	stats.TotalSugestoes = int(total)

	statusCursor, err := r.sugestoes.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return stats, err
	}
	defer statusCursor.Close(ctx)

	for statusCursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int    `bson:"count"`
		}
		if err := statusCursor.Decode(&row); err != nil {
			return stats, err
		}
		stats.PorStatus = append(stats.PorStatus, application.StatusCount{Status: row.Status, Total: row.Count})
		switch domain.Status(row.Status) {
		case domain.StatusPendente:
			stats.Pendentes = row.Count
		case domain.StatusAprovada:
			stats.Aprovadas = row.Count
		}
	}
	if err := statusCursor.Err(); err != nil {
		return stats, err
	}

	since := ref.AddDate(-1, 0, 0)
	monthCursor, err := r.sugestoes.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return stats, err
	}
	defer monthCursor.Close(ctx)

	currentMonth := ref.Format("2006-01")
	for monthCursor.Next(ctx) {
		var row struct {
			Month string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := monthCursor.Decode(&row); err != nil {
			return stats, err
		}
		stats.PorMes = append(stats.PorMes, application.MonthCount{Mes: row.Month, Total: row.Count})
		if row.Month == currentMonth {
			stats.SugestoesNoMes = row.Count
		}
	}
	if err := monthCursor.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}

// FindByImportKey verifica se já existe sugestão importada com a mesma chave
// composta (e-mail + título + carimbo bruto da planilha). É a garantia de
// idempotência do motor de sincronização.
func (r *SuggestionRepository) FindByImportKey(ctx context.Context, key syncengine.IdentityKey) (bool, error) {
	filter := bson.M{
		"emailAutor":           key.Email,
		"titulo":               key.Titulo,
		"timestampOrigemBruto": key.RawTimestamp,
	}
	err := r.sugestoes.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func mapSugestaoDocument(doc SugestaoDocument) domain.Sugestao {
	status, err := domain.NewStatus(doc.Status)
	if err != nil {
		status = domain.StatusPendente
	}
	prioridade, err := domain.NewPrioridade(doc.Prioridade)
	if err != nil {
		prioridade = domain.PrioridadeMedia
	}

	return domain.Sugestao{
		ID:              doc.ID.Hex(),
		Titulo:          doc.Titulo,
		Descricao:       doc.Descricao,
		SetorOrigem:     doc.SetorOrigem,
		SetorDestino:    doc.SetorDestino,
		Categoria:       doc.Categoria,
		Prioridade:      prioridade,
		Status:          status,
		NomeAutor:       doc.NomeAutor,
		EmailAutor:      domain.Email(doc.EmailAutor),
		TipoUsuario:     domain.TipoUsuario(doc.TipoUsuario),
		Instituicao:     doc.Instituicao,
		CategoriaCurso:  domain.CategoriaCurso(doc.CategoriaCurso),
		Fonte:           doc.Fonte,
		Observacoes:     doc.Observacoes,
		UsuarioID:       doc.UsuarioID,
		ChaveImportacao: doc.ChaveImportacao,
		TimestampBruto:  doc.TimestampBruto,
		TimestampOrigem: doc.TimestampOrigem,
		DadosOriginais:  doc.DadosOriginais,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func mapDomainSugestaoToDocument(sugestao *domain.Sugestao) SugestaoDocument {
	createdAt := sugestao.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := sugestao.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return SugestaoDocument{
		Titulo:          sugestao.Titulo,
		Descricao:       sugestao.Descricao,
		SetorOrigem:     sugestao.SetorOrigem,
		SetorDestino:    sugestao.SetorDestino,
		Categoria:       sugestao.Categoria,
		Prioridade:      sugestao.Prioridade.String(),
		Status:          sugestao.Status.String(),
		NomeAutor:       sugestao.NomeAutor,
		EmailAutor:      sugestao.EmailAutor.String(),
		TipoUsuario:     sugestao.TipoUsuario.String(),
		Instituicao:     sugestao.Instituicao,
		CategoriaCurso:  sugestao.CategoriaCurso.String(),
		Fonte:           sugestao.Fonte,
		Observacoes:     sugestao.Observacoes,
		UsuarioID:       sugestao.UsuarioID,
		ChaveImportacao: sugestao.ChaveImportacao,
		TimestampBruto:  sugestao.TimestampBruto,
		TimestampOrigem: sugestao.TimestampOrigem,
		DadosOriginais:  sugestao.DadosOriginais,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
