package storage

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

func newQuiz() *service.Quiz {
	return service.NewQuiz("roots", entities.LangEN, nil, service.QuizOptions{})
}

func TestQuizStorage_GetOrCreate(t *testing.T) {
	s := NewQuizStorage(clockwork.NewFakeClock(), time.Minute)

	q1, created := s.GetOrCreate("a", newQuiz)
	require.True(t, created)

	q2, created := s.GetOrCreate("a", newQuiz)
	assert.False(t, created)
	assert.Same(t, q1, q2)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Same(t, q1, got)

	_, ok = s.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestQuizStorage_Delete(t *testing.T) {
	s := NewQuizStorage(clockwork.NewFakeClock(), time.Minute)
	s.GetOrCreate("a", newQuiz)

	s.Delete("a")
	s.Delete("missing")

	assert.Equal(t, 0, s.Len())
}

func TestQuizStorage_SweepEvictsIdleSessions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewQuizStorage(clock, 10*time.Minute)

	s.GetOrCreate("old", newQuiz)
	clock.Advance(6 * time.Minute)
	s.GetOrCreate("fresh", newQuiz)
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, s.Sweep())

	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("fresh")
	assert.True(t, ok)
}

func TestQuizStorage_GetKeepsSessionAlive(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewQuizStorage(clock, 10*time.Minute)

	s.GetOrCreate("a", newQuiz)
	clock.Advance(8 * time.Minute)
	s.Get("a")
	clock.Advance(8 * time.Minute)

	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestQuizStorage_NoIdleTimeoutNeverEvicts(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewQuizStorage(clock, 0)

	s.GetOrCreate("a", newQuiz)
	clock.Advance(24 * time.Hour)

	assert.Equal(t, 0, s.Sweep())
}
