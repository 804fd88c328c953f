package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/notes-api/internal/model"
)

// In-memory UserStore/NoteStore implementations. They exist for tests
// that exercise handlers and middleware without a database; the mutex
// stands in for the serialization MySQL provides.

type MemoryUserStore struct {
	mu    sync.Mutex
	seq   uint64
	users map[uint64]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uint64]model.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, name, email, passwordHash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return 0, ErrEmailExists
		}
	}
	s.seq++
	now := time.Now().UTC()
	s.users[s.seq] = model.User{
		ID: s.seq, Name: name, Email: email, PasswordHash: passwordHash,
		CreatedAt: now, UpdatedAt: now,
	}
	return s.seq, nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// Len reports how many users are persisted.
func (s *MemoryUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type MemoryNoteStore struct {
	mu    sync.Mutex
	seq   uint64
	notes map[uint64]model.Note
}

func NewMemoryNoteStore() *MemoryNoteStore {
	return &MemoryNoteStore{notes: make(map[uint64]model.Note)}
}

func (s *MemoryNoteStore) ListByOwner(ctx context.Context, userID uint64) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Note{}
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryNoteStore) Create(ctx context.Context, n *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now().UTC()
	n.ID = s.seq
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notes[n.ID] = *n
	return nil
}

func (s *MemoryNoteStore) GetByID(ctx context.Context, id uint64) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return model.Note{}, ErrNoteNotFound
	}
	return n, nil
}

func (s *MemoryNoteStore) Update(ctx context.Context, id, ownerID uint64, patch model.NotePatch) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || n.UserID != ownerID {
		return model.Note{}, ErrNoteNotFound
	}
	if patch.Title != "" {
		n.Title = patch.Title
	}
	if patch.Description != "" {
		n.Description = patch.Description
	}
	if patch.Tag != "" {
		n.Tag = patch.Tag
	}
	n.UpdatedAt = time.Now().UTC()
	s.notes[id] = n
	return n, nil
}

func (s *MemoryNoteStore) Delete(ctx context.Context, id, ownerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok || n.UserID != ownerID {
		return ErrNoteNotFound
	}
	delete(s.notes, id)
	return nil
}

// Len reports how many notes are persisted across all owners.
func (s *MemoryNoteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}
