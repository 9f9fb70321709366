package storage

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aliskhannn/etymo-roots/internal/service"
)

// QuizStorage provides in-memory storage for running quizzes keyed by session.
// Entries not touched for longer than the idle timeout are evicted by Sweep.
type QuizStorage struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	idle     time.Duration
	sessions map[string]*quizSession
}

type quizSession struct {
	quiz     *service.Quiz
	lastSeen time.Time
}

// NewQuizStorage creates a new QuizStorage. A non-positive idle timeout
// disables eviction.
func NewQuizStorage(clock clockwork.Clock, idle time.Duration) *QuizStorage {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &QuizStorage{
		clock:    clock,
		idle:     idle,
		sessions: make(map[string]*quizSession),
	}
}

// Get returns the quiz stored under key and marks it as used.
func (s *QuizStorage) Get(key string) (*service.Quiz, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.clock.Now()
	return sess.quiz, true
}

// GetOrCreate returns the quiz stored under key, creating it with create
// when absent. The second result reports whether a quiz was created.
func (s *QuizStorage) GetOrCreate(key string, create func() *service.Quiz) (*service.Quiz, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if sess, ok := s.sessions[key]; ok {
		sess.lastSeen = now
		return sess.quiz, false
	}

	q := create()
	s.sessions[key] = &quizSession{quiz: q, lastSeen: now}
	return q, true
}

// Delete removes and closes the quiz stored under key.
func (s *QuizStorage) Delete(key string) {
	s.mu.Lock()
	sess, ok := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()

	if ok {
		sess.quiz.Close()
	}
}

// Len returns the number of stored quizzes.
func (s *QuizStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and removes quizzes idle for longer than the idle timeout.
// It returns the number of evicted quizzes.
func (s *QuizStorage) Sweep() int {
	if s.idle <= 0 {
		return 0
	}

	cutoff := s.clock.Now().Add(-s.idle)

	s.mu.Lock()
	var evicted []*service.Quiz
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			evicted = append(evicted, sess.quiz)
			delete(s.sessions, key)
		}
	}
	s.mu.Unlock()

	for _, q := range evicted {
		q.Close()
	}

	return len(evicted)
}
