package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// SheetsConfig groups the Google Sheets access settings.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	Scopes          []string
}

// SyncConfig groups the background synchronization settings.
type SyncConfig struct {
	Enabled    bool
	Interval   time.Duration
	CursorFile string
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	MongoURI             string
	MongoDatabase        string
	SuggestionCollection string
	LogCollection        string
	Timeout              time.Duration
	Timezone             string
	ServerLog            *log.Logger
	JWTSecret            []byte
	JWTIssuer            string
	JWTAudience          string
	AllowedOrigins       []string
	Sheets               SheetsConfig
	Sync                 SyncConfig
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	jwtSecret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if jwtSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be configured")
	}

	syncInterval := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SYNC_INTERVAL")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			syncInterval = time.Duration(seconds) * time.Second
		}
	}

	syncEnabled := true
	if raw := strings.TrimSpace(os.Getenv("AUTO_SYNC_ENABLED")); raw != "" {
		syncEnabled = strings.EqualFold(raw, "true")
	}

	cfg := Config{
		Addr:                 envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "cpa-forms"),
		SuggestionCollection: envOrDefault("SUGGESTION_COLLECTION", "sugestoes"),
		LogCollection:        envOrDefault("LOG_COLLECTION", "logs"),
		Timeout:              timeout,
		Timezone:             envOrDefault("TIMEZONE", "America/Sao_Paulo"),
		ServerLog:            log.New(os.Stdout, "[cpa-forms-api] ", log.LstdFlags|log.Lshortfile),
		JWTSecret:            []byte(jwtSecret),
		JWTIssuer:            envOrDefault("AUTH_JWT_ISSUER", "cpa-forms-auth"),
		JWTAudience:          strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		Sheets: SheetsConfig{
			SpreadsheetID:   strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_ID")),
			SheetName:       envOrDefault("GOOGLE_SHEETS_NAME", "forms"),
			CredentialsFile: envOrDefault("GOOGLE_SHEETS_CREDENTIALS_FILE", "config/google-credentials.json"),
			Scopes:          parseList("GOOGLE_SHEETS_SCOPES", nil),
		},
		Sync: SyncConfig{
			Enabled:    syncEnabled,
			Interval:   syncInterval,
			CursorFile: envOrDefault("LAST_SYNC_TIMESTAMP_FILE", "data/last_sync.txt"),
		},
	}

	cfg.ServerLog.Printf("loaded config: sheetsID=%q sheetName=%q autoSync=%t interval=%s", cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, cfg.Sync.Enabled, cfg.Sync.Interval)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
