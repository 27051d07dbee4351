package gamemaster

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"adventurego/internal/models"
)

// ErrGameNotFound reports an unknown game id.
var ErrGameNotFound = errors.New("game not found")

// SessionStore keeps per-game conversation history. Implementations must be
// safe for concurrent use by independent games; two turns against the same
// game id are not serialized against each other.
type SessionStore interface {
	Create(initial []*models.Message) string
	Get(gameID string) ([]*models.Message, error)
	Append(gameID string, msg *models.Message) error
}

// MemoryStore holds sessions for the lifetime of the process. Histories are
// never evicted; durable storage is out of scope.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]*models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]*models.Message)}
}

// Create stores the initial history under a fresh game id.
func (s *MemoryStore) Create(initial []*models.Message) string {
	id := newGameID()
	history := make([]*models.Message, len(initial))
	copy(history, initial)

	s.mu.Lock()
	s.games[id] = history
	s.mu.Unlock()
	return id
}

// Get returns the stored history for the game id.
func (s *MemoryStore) Get(gameID string) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return history, nil
}

// Append adds one message to the game's history.
func (s *MemoryStore) Append(gameID string, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return ErrGameNotFound
	}
	s.games[gameID] = append(s.games[gameID], msg)
	return nil
}

// newGameID returns a 128-bit random token in hex.
func newGameID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err) // crypto/rand does not fail
	}
	return hex.EncodeToString(b[:])
}
