package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
)

// DefaultAdvanceDelay is how long a correct answer stays on screen
// before the quiz moves to the next root.
const DefaultAdvanceDelay = time.Second

var ErrEmptyDataset = errors.New("dataset is empty")

// QuizStatus is the loading state of a quiz.
type QuizStatus string

const (
	QuizLoading QuizStatus = "loading"
	QuizReady   QuizStatus = "ready"
	QuizFailed  QuizStatus = "failed"
)

// QuizOptions tunes a Quiz. Zero values select the defaults.
type QuizOptions struct {
	Clock        clockwork.Clock // drives the auto-advance timer
	Rand         *rand.Rand      // picks questions; owned by the quiz afterwards
	AdvanceDelay time.Duration   // delay between a correct answer and the next question
	Logger       *zap.Logger
}

// Quiz is the state of one learner working through one dataset:
// the loaded entries, the current question, the typed answer and the
// feedback shown for it.
type Quiz struct {
	dataset string
	loader  DatasetLoader
	clock   clockwork.Clock
	delay   time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	rnd        *rand.Rand
	lang       entities.Lang
	status     QuizStatus
	loadErr    error
	data       []entities.RootEntry
	current    int
	answer     string
	feedback   entities.Feedback
	pending    clockwork.Timer
	advanceSeq uint64
	onAdvance  func(QuizView)
	closed     bool
}

// QuizView is a snapshot of a quiz for rendering.
type QuizView struct {
	Dataset        string
	Lang           entities.Lang
	Status         QuizStatus
	Text           locale.Messages
	Meaning        string // meaning in Lang, or the localized placeholder
	Answer         string
	Feedback       entities.Feedback
	AdvancePending bool
	AdvanceDelay   time.Duration
	Err            string
	Index          int
	Size           int
}

// NewQuiz creates a quiz over dataset. The quiz starts in the loading
// state; call Load to fetch the data.
func NewQuiz(dataset string, lang entities.Lang, loader DatasetLoader, opts QuizOptions) *Quiz {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.AdvanceDelay <= 0 {
		opts.AdvanceDelay = DefaultAdvanceDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Quiz{
		dataset: dataset,
		loader:  loader,
		clock:   opts.Clock,
		delay:   opts.AdvanceDelay,
		logger:  opts.Logger,
		rnd:     opts.Rand,
		lang:    lang,
		status:  QuizLoading,
	}
}

// Load fetches the dataset and picks a random first question.
// On failure the quiz enters the failed state and keeps the error for display.
func (q *Quiz) Load(ctx context.Context) error {
	q.mu.Lock()
	q.status = QuizLoading
	q.loadErr = nil
	q.mu.Unlock()

	data, err := q.loader.Load(ctx, q.dataset)
	if err == nil && len(data) == 0 {
		err = fmt.Errorf("%w: %s", ErrEmptyDataset, q.dataset)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err != nil {
		q.status = QuizFailed
		q.loadErr = err
		q.logger.Error("quiz dataset load failed",
			zap.String("dataset", q.dataset),
			zap.Error(err),
		)
		return err
	}

	q.stopPending()
	q.data = data
	q.current = q.rnd.Intn(len(data))
	q.status = QuizReady
	q.resetInput()

	q.logger.Debug("quiz loaded",
		zap.String("dataset", q.dataset),
		zap.Int("entries", len(data)),
	)

	return nil
}

// Retry reloads the dataset after a failed load.
func (q *Quiz) Retry(ctx context.Context) error {
	return q.Load(ctx)
}

// SetLang switches the display language. A change clears the answer and feedback.
func (q *Quiz) SetLang(lang entities.Lang) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lang == lang {
		return
	}
	q.lang = lang
	q.resetInput()
}

// SetAnswer stores the typed answer without checking it.
func (q *Quiz) SetAnswer(answer string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.answer = answer
}

// Submit stores answer and checks it.
func (q *Quiz) Submit(answer string) entities.Feedback {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.answer = answer
	return q.check()
}

// Check compares the stored answer with the current root, ignoring case
// and surrounding whitespace. A correct answer schedules one move to the
// next question after the advance delay. Without a current question it
// returns empty feedback.
func (q *Quiz) Check() entities.Feedback {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.check()
}

func (q *Quiz) check() entities.Feedback {
	entry, ok := q.currentEntry()
	if !ok {
		return entities.Feedback{}
	}

	text := locale.For(q.lang)
	input := strings.ToLower(strings.TrimSpace(q.answer))
	correct := strings.ToLower(entry.Root)
	examples := entry.JoinExamples(locale.ExamplesSeparator)

	if input == correct {
		q.feedback = entities.Feedback{
			Correct: true,
			Text:    text.CorrectFeedback(correct, examples),
		}
		q.scheduleAdvance()
		return q.feedback
	}

	q.feedback = entities.Feedback{
		Correct: false,
		Text:    text.IncorrectFeedback(correct, examples),
	}
	return q.feedback
}

// Next moves to a random question different from the current one and
// cancels a pending auto-advance. With one entry or none it does nothing.
func (q *Quiz) Next() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.stopPending()
	q.next()
}

// OnAdvance registers fn to run after every automatic advance.
func (q *Quiz) OnAdvance(fn func(QuizView)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onAdvance = fn
}

// Current returns the entry being asked, if any.
func (q *Quiz) Current() (entities.RootEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.currentEntry()
}

// View returns a snapshot of the quiz for rendering.
func (q *Quiz) View() QuizView {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.view()
}

// Close stops a pending auto-advance. The quiz must not be used afterwards.
func (q *Quiz) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.stopPending()
}

func (q *Quiz) currentEntry() (entities.RootEntry, bool) {
	if q.status != QuizReady || q.current < 0 || q.current >= len(q.data) {
		return entities.RootEntry{}, false
	}
	return q.data[q.current], true
}

// next resamples until the index differs from the current one.
func (q *Quiz) next() bool {
	if len(q.data) <= 1 {
		return false
	}

	n := q.current
	for n == q.current {
		n = q.rnd.Intn(len(q.data))
	}
	q.current = n
	q.resetInput()

	return true
}

func (q *Quiz) resetInput() {
	q.answer = ""
	q.feedback = entities.Feedback{}
}

func (q *Quiz) scheduleAdvance() {
	if q.pending != nil || q.closed {
		return
	}

	q.advanceSeq++
	seq := q.advanceSeq
	q.pending = q.clock.AfterFunc(q.delay, func() {
		q.autoAdvance(seq)
	})
}

func (q *Quiz) stopPending() {
	if q.pending == nil {
		return
	}
	q.pending.Stop()
	q.pending = nil
	q.advanceSeq++
}

func (q *Quiz) autoAdvance(seq uint64) {
	q.mu.Lock()
	if q.closed || q.pending == nil || seq != q.advanceSeq {
		q.mu.Unlock()
		return
	}

	q.pending = nil
	moved := q.next()
	view := q.view()
	fn := q.onAdvance
	q.mu.Unlock()

	if moved && fn != nil {
		fn(view)
	}
}

func (q *Quiz) view() QuizView {
	text := locale.For(q.lang)
	v := QuizView{
		Dataset:        q.dataset,
		Lang:           q.lang,
		Status:         q.status,
		Text:           text,
		Answer:         q.answer,
		Feedback:       q.feedback,
		AdvancePending: q.pending != nil,
		AdvanceDelay:   q.delay,
		Index:          q.current,
		Size:           len(q.data),
	}

	if q.loadErr != nil {
		v.Err = q.loadErr.Error()
	}

	if entry, ok := q.currentEntry(); ok {
		v.Meaning = text.MeaningOrPlaceholder(entry.Meaning(q.lang))
	}

	return v
}

// QuizFactory creates quizzes sharing one loader, clock and delay.
// Every quiz gets its own random source.
type QuizFactory struct {
	loader DatasetLoader
	opts   QuizOptions
}

// NewQuizFactory creates a QuizFactory. opts.Rand is ignored.
func NewQuizFactory(loader DatasetLoader, opts QuizOptions) *QuizFactory {
	opts.Rand = nil
	return &QuizFactory{loader: loader, opts: opts}
}

// New creates a quiz over dataset in the loading state.
func (f *QuizFactory) New(dataset string, lang entities.Lang) *Quiz {
	return NewQuiz(dataset, lang, f.loader, f.opts)
}
