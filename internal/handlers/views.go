package handlers

import (
	"time"

	"derdiedas/internal/game"
	"derdiedas/internal/grammar"
	"derdiedas/internal/models"
	"derdiedas/internal/quiz"
	"derdiedas/internal/service"
)

// ScoreView is the score with its rounded percentage
type ScoreView struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// StateView is the JSON shape of a drill session
type StateView struct {
	Phase          models.Phase    `json:"phase"`
	Word           models.Word     `json:"word"`
	Challenge      *quiz.Challenge `json:"challenge,omitempty"`
	Score          ScoreView       `json:"score"`
	Remaining      int             `json:"remaining"`
	PoolSize       int             `json:"pool_size"`
	ArticleChoices []string        `json:"article_choices"`
	EndingChoices  []string        `json:"ending_choices,omitempty"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

// OutcomeView reports the evaluated answer and the expected one
type OutcomeView struct {
	Word            models.Word     `json:"word"`
	Correct         bool            `json:"correct"`
	ExpectedArticle string          `json:"expected_article"`
	ExpectedEnding  string          `json:"expected_ending,omitempty"`
	Challenge       *quiz.Challenge `json:"challenge,omitempty"`
}

type startResponse struct {
	State     StateView `json:"state"`
	CSRFToken string    `json:"csrf_token"`
}

type answerResponse struct {
	Outcome OutcomeView `json:"outcome"`
	State   StateView   `json:"state"`
}

func newStateView(snap service.Snapshot) StateView {
	s := snap.State
	v := StateView{
		Phase:     s.Phase,
		Word:      s.Word,
		Challenge: s.Challenge,
		Score: ScoreView{
			Correct:    s.Score.Correct,
			Total:      s.Score.Total,
			Percentage: s.Score.Percentage(),
		},
		Remaining: s.Remaining(),
		PoolSize:  s.PoolSize(),
		ExpiresAt: snap.ExpiresAt,
	}
	if s.Phase == models.PhaseQuizzing {
		v.ArticleChoices = grammar.ArticleChoices
		v.EndingChoices = grammar.EndingChoices
	} else {
		v.ArticleChoices = []string{string(models.Der), string(models.Die), string(models.Das)}
	}
	return v
}

func newOutcomeView(out game.Outcome) OutcomeView {
	return OutcomeView{
		Word:            out.Word,
		Correct:         out.Correct,
		ExpectedArticle: out.ExpectedArticle,
		ExpectedEnding:  out.ExpectedEnding,
		Challenge:       out.Challenge,
	}
}
