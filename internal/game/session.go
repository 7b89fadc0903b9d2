package game

import (
	"fmt"
	"strings"

	"derdiedas/internal/grammar"
	"derdiedas/internal/models"
	"derdiedas/internal/quiz"
	"derdiedas/internal/random"
)

// State is a snapshot of one drill session. Apply never modifies a State in place.
type State struct {
	Phase     models.Phase
	Word      models.Word
	Challenge *quiz.Challenge
	Score     models.Score

	selector Selector
}

// Remaining is the number of words left before the current lap ends
func (s State) Remaining() int {
	return s.selector.Remaining()
}

// PoolSize is the number of words the session drills
func (s State) PoolSize() int {
	return s.selector.Size()
}

// Event is an input to the session state machine
type Event interface {
	isEvent()
}

// Guess is the learner's gender guess for the presented word
type Guess struct {
	Article string
}

// Submit answers the remedial challenge
type Submit struct {
	Article string
	Ending  string
}

// Restart begins a fresh lap with a zero score
type Restart struct{}

func (Guess) isEvent()   {}
func (Submit) isEvent()  {}
func (Restart) isEvent() {}

// Outcome describes the answer an event evaluated. It is the zero value for Restart.
type Outcome struct {
	Evaluated       bool
	Word            models.Word
	Correct         bool
	ExpectedArticle string
	ExpectedEnding  string
	Challenge       *quiz.Challenge
}

// Start creates a session presenting the first word of pool
func Start(pool []models.Word, rng random.Source) (State, error) {
	sel, err := NewSelector(pool)
	if err != nil {
		return State{}, err
	}
	sel, word := sel.Next(rng)
	return State{Phase: models.PhasePresenting, Word: word, selector: sel}, nil
}

// Apply runs one event against state. On error the input state is returned unchanged.
func Apply(state State, event Event, rng random.Source) (State, Outcome, error) {
	switch e := event.(type) {
	case Guess:
		return applyGuess(state, e, rng)
	case Submit:
		return applySubmit(state, e, rng)
	case Restart:
		sel, word := state.selector.Reset().Next(rng)
		return State{Phase: models.PhasePresenting, Word: word, selector: sel}, Outcome{}, nil
	default:
		return state, Outcome{}, fmt.Errorf("unknown event %T", event)
	}
}

func applyGuess(state State, e Guess, rng random.Source) (State, Outcome, error) {
	if state.Phase != models.PhasePresenting {
		return state, Outcome{}, fmt.Errorf("%w: guess while %s", ErrWrongPhase, state.Phase)
	}
	guess, err := grammar.ParseGender(e.Article)
	if err != nil {
		return state, Outcome{}, fmt.Errorf("%w: %v", ErrInvalidGuess, err)
	}

	correct := guess == state.Word.Article
	out := Outcome{
		Evaluated:       true,
		Word:            state.Word,
		Correct:         correct,
		ExpectedArticle: string(state.Word.Article),
	}

	next := state
	next.Score = state.Score.Record(correct)
	if correct {
		next.selector, next.Word = state.selector.Next(rng)
		return next, out, nil
	}

	challenge := quiz.Generate(rng)
	next.Phase = models.PhaseQuizzing
	next.Challenge = &challenge
	return next, out, nil
}

func applySubmit(state State, e Submit, rng random.Source) (State, Outcome, error) {
	if state.Phase != models.PhaseQuizzing || state.Challenge == nil {
		return state, Outcome{}, fmt.Errorf("%w: submit while %s", ErrWrongPhase, state.Phase)
	}

	article := strings.ToLower(strings.TrimSpace(e.Article))
	ending := strings.ToLower(strings.TrimSpace(e.Ending))
	if !grammar.IsArticleChoice(article) {
		return state, Outcome{}, fmt.Errorf("%w: article %q", ErrInvalidGuess, e.Article)
	}
	if !grammar.IsEndingChoice(ending) {
		return state, Outcome{}, fmt.Errorf("%w: ending %q", ErrInvalidGuess, e.Ending)
	}

	c := state.Challenge.Case()
	expectedArticle := grammar.ResolveArticle(state.Word.Article, c)
	expectedEnding := grammar.ResolveEnding(state.Word.Article, c)
	correct := article == expectedArticle && ending == expectedEnding

	out := Outcome{
		Evaluated:       true,
		Word:            state.Word,
		Correct:         correct,
		ExpectedArticle: expectedArticle,
		ExpectedEnding:  expectedEnding,
		Challenge:       state.Challenge,
	}

	next := state
	next.Score = state.Score.Record(correct)
	next.Phase = models.PhasePresenting
	next.Challenge = nil
	next.selector, next.Word = state.selector.Next(rng)
	return next, out, nil
}
