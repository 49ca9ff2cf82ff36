package sync

import (
	"context"
	"fmt"
	"log"
	stdsync "sync"
	"time"

	"github.com/INV1906/CPA-FORMS-DASH/internal/suggestion/domain"
)

// Summary resume um ciclo de sincronização completo.
type Summary struct {
	Success    bool
	Message    string
	Imported   int
	TotalFound int
	Duplicates int
	Errors     []string
}

// Status descreve o estado corrente do motor de sincronização.
type Status struct {
	Enabled     bool
	Interval    time.Duration
	SourceID    string
	LastCursor  time.Time
	ClientReady bool
	Running     bool
}

// PreviewItem emparelha a linha bruta com a sugestão mapeada, para inspeção
// do operador antes de confirmar uma importação.
type PreviewItem struct {
	Raw      RawRow
	Sugestao domain.Sugestao
}

// Config parametriza o orquestrador. Location é o fuso em que os carimbos da
// planilha (hora de parede, sem offset) são interpretados.
type Config struct {
	Enabled      bool
	Interval     time.Duration
	ErrorBackoff time.Duration
	SourceID     string
	Location     *time.Location
}

// Syncer coordena o ciclo Busca → Mapeamento → Persistência → Avanço do
// cursor, tanto sob demanda quanto como tarefa de fundo recorrente.
type Syncer struct {
	source   RowSource
	cursor   CursorStore
	importer *Importer
	logger   *log.Logger

	enabled      bool
	interval     time.Duration
	errorBackoff time.Duration
	sourceID     string
	loc          *time.Location
	now          func() time.Time

	// cycleMu garante no máximo um ciclo em execução: o disparo manual e o
	// laço de fundo leriam o mesmo cursor e buscariam linhas sobrepostas.
	cycleMu stdsync.Mutex

	mu       stdsync.Mutex
	running  bool
	stopChan chan struct{}
	wg       stdsync.WaitGroup
}

// NewSyncer monta o orquestrador com suas dependências explícitas.
func NewSyncer(source RowSource, cursor CursorStore, importer *Importer, logger *log.Logger, cfg Config) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = 60 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Syncer{
		source:       source,
		cursor:       cursor,
		importer:     importer,
		logger:       logger,
		enabled:      cfg.Enabled,
		interval:     cfg.Interval,
		errorBackoff: cfg.ErrorBackoff,
		sourceID:     cfg.SourceID,
		loc:          cfg.Location,
		now:          time.Now,
	}
}

// RunOnce executa um ciclo completo de forma síncrona e devolve o resumo.
// O cursor só avança depois da etapa de persistência; em falha de busca ou
// de escrita do cursor, ele permanece intocado ou aquém do ponto falho.
func (s *Syncer) RunOnce(ctx context.Context) Summary {
	if !s.enabled {
		return Summary{Success: false, Message: "sincronização desabilitada"}
	}

	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	since := s.cursor.Read()

	headers, rows, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Printf("falha ao buscar respostas: %v", err)
		return Summary{
			Success: false,
			Message: fmt.Sprintf("erro na sincronização: %v", err),
			Errors:  []string{err.Error()},
		}
	}

	fetched := FilterNewRows(headers, rows, since, s.now, s.loc, s.logger)
	if len(fetched) == 0 {
		return Summary{Success: true, Message: "nenhuma nova resposta encontrada"}
	}
	s.logger.Printf("encontradas %d novas respostas desde %s", len(fetched), since.Format(time.RFC3339))

	candidates := make([]Candidate, 0, len(fetched))
	for _, row := range fetched {
		candidates = append(candidates, MapRow(row.Raw, row.Timestamp))
	}

	result := s.importer.Persist(ctx, candidates)

	watermark := s.now()
	if result.EarliestFailure != nil {
		// Linhas que falharam precisam reaparecer no próximo ciclo; a chave
		// de importação protege as que já persistiram.
		watermark = result.EarliestFailure.Add(-time.Nanosecond)
	}
	if err := s.cursor.Write(watermark); err != nil {
		s.logger.Printf("falha ao gravar cursor: %v", err)
		return Summary{
			Success:    false,
			Message:    fmt.Sprintf("falha ao gravar cursor: %v", err),
			Imported:   result.Imported,
			TotalFound: len(fetched),
			Duplicates: result.Duplicates,
			Errors:     append(errorStrings(result.Errors), err.Error()),
		}
	}

	s.logger.Printf("sincronização concluída: %d importadas, %d duplicadas, %d erros",
		result.Imported, result.Duplicates, len(result.Errors))

	return Summary{
		Success:    true,
		Message:    "sincronização concluída com sucesso",
		Imported:   result.Imported,
		TotalFound: len(fetched),
		Duplicates: result.Duplicates,
		Errors:     errorStrings(result.Errors),
	}
}

// Preview executa Busca + Mapeamento sem persistir nada e devolve até `limit`
// candidatos com suas linhas de origem, além do total encontrado.
func (s *Syncer) Preview(ctx context.Context, limit int) (int, []PreviewItem, error) {
	headers, rows, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, nil, err
	}

	fetched := FilterNewRows(headers, rows, s.cursor.Read(), s.now, s.loc, s.logger)
	items := make([]PreviewItem, 0, limit)
	for _, row := range fetched {
		if len(items) >= limit {
			break
		}
		candidate := MapRow(row.Raw, row.Timestamp)
		items = append(items, PreviewItem{Raw: candidate.Raw, Sugestao: candidate.Sugestao})
	}
	return len(fetched), items, nil
}

// Status expõe o estado do motor para o endpoint administrativo.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return Status{
		Enabled:     s.enabled,
		Interval:    s.interval,
		SourceID:    redactSourceID(s.sourceID),
		LastCursor:  s.cursor.Read(),
		ClientReady: s.source.Configured(),
		Running:     running,
	}
}

// Start inicia o laço recorrente em segundo plano. Sem efeito quando a
// sincronização está desabilitada por configuração.
func (s *Syncer) Start(ctx context.Context) error {
	if !s.enabled {
		s.logger.Printf("sincronização automática desabilitada")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sincronização já em execução")
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.logger.Printf("sincronização automática iniciada (intervalo: %s)", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
	return nil
}

// Stop encerra o laço de forma graciosa: nenhum ciclo novo é aceito e o
// ciclo em andamento termina antes do retorno.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Printf("sincronização automática encerrada")
}

func (s *Syncer) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if !s.safeCycle(ctx) {
				// Pânico dentro do ciclo: espera estendida antes da próxima
				// tentativa, sem derrubar a tarefa recorrente.
				select {
				case <-ctx.Done():
					return
				case <-s.stopChan:
					return
				case <-time.After(s.errorBackoff):
				}
			}
		}
	}
}

// safeCycle roda um ciclo protegido contra pânico. Retorna false apenas
// quando um pânico foi recuperado.
func (s *Syncer) safeCycle(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("pânico no ciclo de sincronização: %v", r)
			ok = false
		}
	}()

	summary := s.RunOnce(ctx)
	if summary.Success && summary.Imported > 0 {
		s.logger.Printf("auto-sync: %d sugestões importadas", summary.Imported)
	}
	return true
}

// redactSourceID expõe só o prefixo do identificador da planilha.
func redactSourceID(id string) string {
	if id == "" {
		return "não configurado"
	}
	if len(id) <= 10 {
		return id + "..."
	}
	return id[:10] + "..."
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	result := make([]string, 0, len(errs))
	for _, err := range errs {
		result = append(result, err.Error())
	}
	return result
}
