package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/datetime"
)

// MemoryStore keeps everything in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[uuid.UUID]preapproval.Document
	agents map[uuid.UUID]preapproval.Agent
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[uuid.UUID]preapproval.Document),
		agents: make(map[uuid.UUID]preapproval.Agent),
	}
}

func (s *MemoryStore) GetDocument(_ context.Context, id uuid.UUID) (preapproval.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return preapproval.Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) InsertDocument(_ context.Context, doc preapproval.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; ok {
		return fmt.Errorf("document %s: %w", doc.ID, ErrAlreadyExists)
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) ReplaceDocument(_ context.Context, doc preapproval.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		return fmt.Errorf("document %s: %w", doc.ID, ErrNotFound)
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) DeleteDocuments(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.docs, id)
	}
	return nil
}

func (s *MemoryStore) ListDocuments(_ context.Context, userID uuid.UUID) ([]preapproval.Document, error) {
	return s.filter(func(doc preapproval.Document) bool {
		return doc.UserID == userID
	}), nil
}

func (s *MemoryStore) ListCreatedBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error) {
	return s.filter(func(doc preapproval.Document) bool {
		return doc.UserID == userID && datetime.InRange(doc.CreatedAt, from, to)
	}), nil
}

func (s *MemoryStore) ListPreApprovedBetween(_ context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error) {
	return s.filter(func(doc preapproval.Document) bool {
		return doc.UserID == userID && preApprovedBetween(doc, from, to)
	}), nil
}

func (s *MemoryStore) filter(keep func(preapproval.Document) bool) []preapproval.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []preapproval.Document{}
	for _, doc := range s.docs {
		if keep(doc) {
			out = append(out, doc.Clone())
		}
	}
	return out
}

func (s *MemoryStore) GetAgent(_ context.Context, id uuid.UUID) (preapproval.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agent, ok := s.agents[id]
	if !ok {
		return preapproval.Agent{}, fmt.Errorf("agent %s: %w", id, ErrNotFound)
	}
	return agent, nil
}

func (s *MemoryStore) PutAgent(_ context.Context, agent preapproval.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[agent.ID] = agent
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
