package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodoc "github.com/INV1906/CPA-FORMS-DASH/internal/infrastructure/mongo"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
	syncengine "github.com/INV1906/CPA-FORMS-DASH/internal/sync"
)

type importOptions struct {
	spreadsheetID   string
	sheetName       string
	credentialsFile string
	cursorFile      string
	advanceCursor   bool
	timeout         time.Duration
}

// Importa todo o histórico da planilha do Google Forms, ignorando o cursor de
// sincronização. A chave de importação garante que execuções repetidas não
// dupliquem sugestões já gravadas.
func main() {
	logger := log.New(os.Stdout, "[cpa-forms-import] ", log.LstdFlags)
	opts := parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "cpa-forms")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatalf("falha ao conectar ao MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)
	suggestionRepo := mongodoc.NewSuggestionRepository(db, envOrDefault("SUGGESTION_COLLECTION", "sugestoes"))
	logRepo := mongodoc.NewLogRepository(db, envOrDefault("LOG_COLLECTION", "logs"))

	source := syncengine.NewSheetsSource(ctx, syncengine.SheetsConfig{
		SpreadsheetID:   opts.spreadsheetID,
		SheetName:       opts.sheetName,
		CredentialsFile: opts.credentialsFile,
	}, logger)
	if !source.Configured() {
		logger.Fatal("fonte Google Sheets não configurada; verifique -sheets-id e o arquivo de credenciais")
	}

	headers, rows, err := source.Fetch(ctx)
	if err != nil {
		logger.Fatalf("falha ao buscar a planilha: %v", err)
	}
	logger.Printf("planilha carregada: %d linhas de dados", len(rows))

	loc, err := time.LoadLocation(envOrDefault("TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
		logger.Printf("falha ao carregar fuso horário: %v, usando BRT", err)
	}

	// Cursor zero: toda linha da planilha conta como nova.
	fetched := syncengine.FilterNewRows(headers, rows, time.Time{}, time.Now, loc, logger)

	candidates := make([]syncengine.Candidate, 0, len(fetched))
	for _, row := range fetched {
		candidates = append(candidates, syncengine.MapRow(row.Raw, row.Timestamp))
	}

	importer := syncengine.NewImporter(suggestionRepo, logRepo, logger).
		WithAction(domain.AcaoImportarHistorico)
	result := importer.Persist(ctx, candidates)

	if opts.advanceCursor && len(result.Errors) == 0 {
		cursor := syncengine.NewFileCursorStore(opts.cursorFile, logger)
		if err := cursor.Write(time.Now()); err != nil {
			logger.Printf("falha ao gravar cursor: %v", err)
		} else {
			logger.Printf("cursor avançado para o horário atual")
		}
	}

	logger.Printf("importação histórica concluída: %d importadas, %d duplicadas, %d erros",
		result.Imported, result.Duplicates, len(result.Errors))
	for _, err := range result.Errors {
		logger.Printf("erro: %v", err)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func parseFlags() importOptions {
	var opts importOptions
	flag.StringVar(&opts.spreadsheetID, "sheets-id", envOrDefault("GOOGLE_SHEETS_ID", ""), "ID da planilha do Google Forms")
	flag.StringVar(&opts.sheetName, "sheet", envOrDefault("GOOGLE_SHEETS_NAME", "forms"), "nome da aba da planilha")
	flag.StringVar(&opts.credentialsFile, "credentials", envOrDefault("GOOGLE_SHEETS_CREDENTIALS_FILE", "config/google-credentials.json"), "arquivo de credenciais da conta de serviço")
	flag.StringVar(&opts.cursorFile, "cursor-file", envOrDefault("LAST_SYNC_TIMESTAMP_FILE", "data/last_sync.txt"), "arquivo do cursor de sincronização")
	flag.BoolVar(&opts.advanceCursor, "advance-cursor", false, "avança o cursor para agora após importar sem erros")
	flag.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "prazo máximo da importação")
	flag.Parse()
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
