package batch

import (
	"sync"
	"time"

	"github.com/evolve1/redactor/pkg/redact"
)

// DocumentReport is the per-document processing summary written alongside the
// redacted output and kept in the batch record.
type DocumentReport struct {
	File                string              `json:"file"`
	Template            string              `json:"template"`
	Pages               []redact.PageReport `json:"pages"`
	SearchableRequested bool                `json:"searchable_requested"`
	SearchableSucceeded bool                `json:"searchable_succeeded"`
	SearchableError     string              `json:"searchable_error,omitempty"`
	ExportImages        bool                `json:"export_images"`
	Error               string              `json:"error,omitempty"`
}

// Record is the bookkeeping entry for one processed batch.
type Record struct {
	ID        string           `json:"batch_id"`
	Template  string           `json:"template"`
	ZipPath   string           `json:"zip_path"`
	Count     int              `json:"count"`
	Documents []DocumentReport `json:"documents"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store keeps batch records by ID. The lifecycle of the store is owned by the
// caller; the processing pipeline only writes into it.
type Store interface {
	Put(id string, rec Record)
	Get(id string) (Record, bool)
}

// MemoryStore is an in-process Store, safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Put(id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
}

func (s *MemoryStore) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}
