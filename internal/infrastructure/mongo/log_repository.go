package mongo

import (
	"context"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogRepository grava e lista o log de auditoria (somente inserção).
type LogRepository struct {
	logs *mongo.Collection
}

// NewLogRepository vincula o repositório à coleção de logs.
func NewLogRepository(db *mongo.Database, collection string) *LogRepository {
	return &LogRepository{logs: db.Collection(collection)}
}

// Append insere uma entrada; entradas nunca são alteradas ou removidas.
func (r *LogRepository) Append(ctx context.Context, entry domain.LogEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	doc := LogDocument{
		ID:        primitive.NewObjectID(),
		UsuarioID: entry.UsuarioID,
		Acao:      entry.Acao,
		Detalhes:  entry.Detalhes,
		Fonte:     entry.Fonte,
		CreatedAt: createdAt,
	}
	_, err := r.logs.InsertOne(ctx, doc)
	return err
}

// List retorna as entradas mais recentes primeiro.
func (r *LogRepository) List(ctx context.Context, paging application.Paging) ([]domain.LogEntry, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.logs.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]domain.LogEntry, 0)
	for cursor.Next(ctx) {
		var doc LogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		entries = append(entries, domain.LogEntry{
			ID:        doc.ID.Hex(),
			UsuarioID: doc.UsuarioID,
			Acao:      doc.Acao,
			Detalhes:  doc.Detalhes,
			Fonte:     doc.Fonte,
			CreatedAt: doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
