package sync

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CursorStore persiste a marca d'água da última sincronização concluída.
type CursorStore interface {
	Read() time.Time
	Write(t time.Time) error
}

// FileCursorStore guarda o cursor como um único timestamp RFC3339 em arquivo.
// A escrita substitui o valor inteiro via arquivo temporário + rename, sem
// janela de escrita parcial.
type FileCursorStore struct {
	path   string
	logger *log.Logger
	now    func() time.Time
}

// NewFileCursorStore cria o armazenamento de cursor no caminho informado.
func NewFileCursorStore(path string, logger *log.Logger) *FileCursorStore {
	return &FileCursorStore{path: path, logger: logger, now: time.Now}
}

// Read devolve o cursor gravado. Falha de leitura não é fatal: o padrão é
// 24 horas atrás, para que a primeira execução capture um histórico recente
// sem varrer a planilha inteira.
func (s *FileCursorStore) Read() time.Time {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Printf("falha ao ler cursor de sincronização: %v", err)
		}
		return s.defaultCursor()
	}

	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(string(raw)))
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("cursor de sincronização inválido (%q): %v", strings.TrimSpace(string(raw)), err)
		}
		return s.defaultCursor()
	}
	return parsed
}

// Write grava o cursor de forma atômica. Falha aqui deve chegar ao
// orquestrador: o ciclo não pode acreditar que o cursor avançou.
func (s *FileCursorStore) Write(t time.Time) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("criar diretório do cursor: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "last_sync-*.tmp")
	if err != nil {
		return fmt.Errorf("criar arquivo temporário do cursor: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(t.Format(time.RFC3339)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("gravar cursor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("fechar arquivo do cursor: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("substituir cursor: %w", err)
	}
	return nil
}

func (s *FileCursorStore) defaultCursor() time.Time {
	return s.now().Add(-24 * time.Hour)
}
