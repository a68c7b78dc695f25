package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

const DefaultTotal = 10

var (
	ErrInvalidTransition = errors.New("invalid quiz state transition")
	ErrInvalidChoice     = errors.New("invalid answer choice")
)

type Options struct {
	// Total is the number of questions per round.
	Total      int
	Generation int
	Lang       model.LocalizationCode
	// Pokemon allows creatures as defenders besides bare types.
	Pokemon bool
	Rand    *rand.Rand
}

type Result struct {
	Choice  typechart.Bucket `json:"choice"`
	Answer  typechart.Bucket `json:"answer"`
	Correct bool             `json:"correct"`
}

// Snapshot is a copy of a session's visible state.
type Snapshot struct {
	ID        uuid.UUID `json:"id"`
	State     State     `json:"state"`
	Number    int       `json:"number"`
	Total     int       `json:"total"`
	Score     int       `json:"score"`
	Exhausted bool      `json:"exhausted"`
	// LastScore is the score of the most recently finished round.
	LastScore int       `json:"lastScore"`
	Question  *Question `json:"question,omitempty"`
	Result    *Result   `json:"result,omitempty"`
}

// Session runs rounds of type matchup questions. All methods are safe for
// concurrent use.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	drawer    drawer
	total     int
	state     State
	number    int
	score     int
	lastScore int
	exhausted bool
	question  *Question
	answer    typechart.Bucket
	result    *Result
}

func NewSession(deck Deck, opts Options) *Session {
	if opts.Total <= 0 {
		opts.Total = DefaultTotal
	}
	if opts.Generation <= 0 {
		opts.Generation = deck.LatestGeneration()
	}
	if opts.Lang == "" {
		opts.Lang = model.DefaultLocalizationCode
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Session{
		ID: uuid.New(),
		drawer: drawer{
			deck:       deck,
			rng:        opts.Rand,
			generation: opts.Generation,
			lang:       opts.Lang,
			pokemon:    opts.Pokemon,
		},
		total: opts.Total,
		state: StateIdle,
	}
}

// load draws the next question; the caller holds mu. On failure the
// session returns to from.
func (s *Session) load(from State) error {
	s.state = StateLoading
	q, answer, err := s.drawer.draw(s.number + 1)
	if err != nil {
		s.state = from
		return fmt.Errorf("error while drawing question: %w", err)
	}

	s.number++
	s.question = &q
	s.answer = answer
	s.result = nil
	s.state = StateReady
	return nil
}

// Generate starts a round from Idle or from an exhausted Ready state.
func (s *Session) Generate() (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle && !(s.state == StateReady && s.exhausted) {
		return Question{}, fmt.Errorf("generate in state %s: %w", s.state, ErrInvalidTransition)
	}

	from := s.state
	s.exhausted = false
	if err := s.load(from); err != nil {
		s.exhausted = from == StateReady
		return Question{}, err
	}
	return s.question.clone(), nil
}

// Submit answers the current question. The score only moves on an exact
// bucket match.
func (s *Session) Submit(choice typechart.Bucket) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.question == nil {
		return Result{}, fmt.Errorf("answer in state %s: %w", s.state, ErrInvalidTransition)
	}
	if !choice.IsABucket() {
		return Result{}, fmt.Errorf("choice %d: %w", choice, ErrInvalidChoice)
	}

	res := Result{Choice: choice, Answer: s.answer, Correct: choice == s.answer}
	if res.Correct {
		s.score++
	}
	s.result = &res
	s.state = StateAnswered
	return res, nil
}

// Next moves past an answered question. After the last question of a round
// the index and score reset and the session waits in an exhausted Ready
// state for Generate.
func (s *Session) Next() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnswered {
		return Snapshot{}, fmt.Errorf("next in state %s: %w", s.state, ErrInvalidTransition)
	}

	if s.number >= s.total {
		s.lastScore = s.score
		s.number = 0
		s.score = 0
		s.question = nil
		s.result = nil
		s.exhausted = true
		s.state = StateReady
		return s.snapshot(), nil
	}

	if err := s.load(StateAnswered); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(), nil
}

// Reset abandons the round and returns to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.number = 0
	s.score = 0
	s.lastScore = 0
	s.exhausted = false
	s.question = nil
	s.result = nil
}

func (s *Session) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exhausted
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.ID,
		State:     s.state,
		Number:    s.number,
		Total:     s.total,
		Score:     s.score,
		Exhausted: s.exhausted,
		LastScore: s.lastScore,
	}
	if s.question != nil {
		q := s.question.clone()
		snap.Question = &q
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
