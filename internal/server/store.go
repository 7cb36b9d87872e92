package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/pipeline"
)

// Case is one intake session: the uploaded documents, the broker-entered
// details, and the latest validation result. State lives only in memory; a
// restart starts everyone over, which matches the wizard workflow.
type Case struct {
	ID        uuid.UUID                 `json:"id"`
	CreatedAt time.Time                 `json:"created_at"`
	Documents []entity.UploadedDocument `json:"-"`
	Details   entity.CaseDetails        `json:"details"`
	Result    *pipeline.Result          `json:"result,omitempty"`
}

// Store is the in-memory case registry.
type Store struct {
	mu    sync.RWMutex
	cases map[uuid.UUID]*Case
}

func NewStore() *Store {
	return &Store{cases: make(map[uuid.UUID]*Case)}
}

// Create opens a new case session.
func (s *Store) Create() *Case {
	c := &Case{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	s.mu.Lock()
	s.cases[c.ID] = c
	s.mu.Unlock()
	return c
}

// Get returns the case, or common.ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

// Update applies fn to the case under the write lock.
func (s *Store) Update(id uuid.UUID, fn func(*Case)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[id]
	if !ok {
		return common.ErrNotFound
	}
	fn(c)
	return nil
}

// Snapshot returns a copy of the case safe to read without the lock. The
// document contents are shared (read-only by contract), the slices are not.
func (s *Store) Snapshot(id uuid.UUID) (Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return Case{}, common.ErrNotFound
	}
	out := *c
	out.Documents = append([]entity.UploadedDocument(nil), c.Documents...)
	if c.Result != nil {
		r := *c.Result
		out.Result = &r
	}
	return out, nil
}
