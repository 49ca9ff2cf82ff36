package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/INV1906/CPA-FORMS-DASH/internal/config"
	mongodoc "github.com/INV1906/CPA-FORMS-DASH/internal/infrastructure/mongo"
	adminhttp "github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/admin"
	commonhttp "github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/common"
	publichttp "github.com/INV1906/CPA-FORMS-DASH/internal/interfaces/http/public"
	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/application"
	syncengine "github.com/INV1906/CPA-FORMS-DASH/internal/sync"
)

// Server gerencia o ciclo de vida do servidor HTTP e injeta dependências nos
// handlers Public/Admin. É a raiz de composição da aplicação: aqui os
// repositórios, serviços e o motor de sincronização são ligados entre si.
type Server struct {
	logger            *log.Logger
	client            *mongo.Client
	database          *mongo.Database
	location          *time.Location
	suggestionService application.SuggestionService
	logService        application.LogService
	syncer            *syncengine.Syncer
	jwtSecret         []byte
	jwtIssuer         string
	jwtAudience       string
	addr              string
	allowedOrigins    []string
}

type authenticatedUser = commonhttp.AuthenticatedUser

// New recebe Config e o cliente Mongo e monta os serviços, handlers e o motor
// de sincronização. Funciona como fábrica e ponto de partida da resolução de
// dependências.
func New(cfg config.Config, client *mongo.Client) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
		cfg.ServerLog.Printf("falha ao carregar fuso horário %s: %v, usando BRT", cfg.Timezone, err)
	}

	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		location:       loc,
		jwtSecret:      append([]byte(nil), cfg.JWTSecret...),
		jwtIssuer:      cfg.JWTIssuer,
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	suggestionRepo := mongodoc.NewSuggestionRepository(srv.database, cfg.SuggestionCollection)
	logRepo := mongodoc.NewLogRepository(srv.database, cfg.LogCollection)
	srv.suggestionService = application.NewSuggestionService(suggestionRepo, logRepo, time.Now)
	srv.logService = application.NewLogService(logRepo)

	source := syncengine.NewSheetsSource(context.Background(), syncengine.SheetsConfig{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SheetName:       cfg.Sheets.SheetName,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		Scopes:          cfg.Sheets.Scopes,
	}, cfg.ServerLog)
	cursor := syncengine.NewFileCursorStore(cfg.Sync.CursorFile, cfg.ServerLog)
	importer := syncengine.NewImporter(suggestionRepo, logRepo, cfg.ServerLog)
	srv.syncer = syncengine.NewSyncer(source, cursor, importer, cfg.ServerLog, syncengine.Config{
		Enabled:  cfg.Sync.Enabled,
		Interval: cfg.Sync.Interval,
		SourceID: cfg.Sheets.SpreadsheetID,
		Location: loc,
	})

	return srv
}

// Run sobe o servidor HTTP, monta rotas e middlewares e inicia a tarefa de
// sincronização em segundo plano. Restrito à inicialização de infraestrutura;
// nenhuma lógica de domínio vive aqui.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:            s.logger,
		SuggestionService: s.suggestionService,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:            s.logger,
		SuggestionService: s.suggestionService,
		LogService:        s.logService,
		SyncEngine:        s.syncer,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(requireAdmin(s.logger))
		adminHandler.Register(r)
	})

	syncCtx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()
	if err := s.syncer.Start(syncCtx); err != nil {
		s.logger.Printf("falha ao iniciar sincronização automática: %v", err)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("servidor HTTP iniciado: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS devolve o middleware que aplica os cabeçalhos CORS conforme a
// lista de origens permitidas.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed verifica se a origem informada consta da lista de permissão.
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler responde às sondas de monitoramento verificando a conexão
// com o MongoDB. Retorna apenas o estado da infraestrutura, não do domínio.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// authMiddleware valida o JWT do cabeçalho Authorization e injeta o usuário
// autenticado no contexto. Concentrado no Server por servir às rotas Public
// e Admin.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "cabeçalho Authorization ausente"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "informe um token Bearer"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token de acesso vazio"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{
			ID:          claims.Subject,
			Nome:        claims.Nome,
			Email:       claims.Email,
			TipoUsuario: claims.TipoUsuario,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin bloqueia o acesso de principais sem papel administrativo.
// Pressupõe authMiddleware aplicado antes na cadeia.
func requireAdmin(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := commonhttp.UserFromContext(r.Context())
			if !ok || !user.IsAdmin() {
				logger.Printf("acesso administrativo negado: usuário=%s tipo=%s", user.ID, user.TipoUsuario)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "acesso restrito a administradores"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseAuthToken valida assinatura, emissor e audiência do token.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtSecret, nil
	}, jwt.WithLeeway(30*time.Second))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token de acesso inválido")
	}
	if s.jwtIssuer != "" && claims.Issuer != s.jwtIssuer {
		return nil, fmt.Errorf("token de acesso inválido")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token de acesso inválido")
	}
	if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
		return nil, fmt.Errorf("token de acesso inválido")
	}

	return claims, nil
}

// contains é a checagem simples de inclusão usada na validação de audiência.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Nome        string `json:"nome,omitempty"`
	Email       string `json:"email,omitempty"`
	TipoUsuario string `json:"tipo_usuario,omitempty"`
}

// writeJSON centraliza a escrita de respostas JSON do servidor.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("falha ao codificar JSON: %v", err)
	}
}

// shutdown desconecta o cliente Mongo com prazo, evitando vazamento de
// recursos no encerramento do processo.
func (s *Server) shutdown(ctx context.Context) {
	s.syncer.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("erro ao desconectar do MongoDB: %v", err)
	}
}

// waitForShutdown observa o término do ListenAndServe e os sinais do SO para
// realizar o encerramento gracioso.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("servidor encerrou com erro: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("sinal %s recebido, iniciando encerramento do servidor", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("erro ao encerrar servidor: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
