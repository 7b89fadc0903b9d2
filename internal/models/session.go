package models

// Phase is the step a drill session is waiting in
type Phase string

const (
	// PhasePresenting shows a word and awaits a gender guess
	PhasePresenting Phase = "presenting"
	// PhaseQuizzing shows a remedial challenge and awaits article and ending
	PhaseQuizzing Phase = "quizzing"
)

// Score tracks answers within one drill session
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Record adds one evaluated answer to the score
func (s Score) Record(correct bool) Score {
	s.Total++
	if correct {
		s.Correct++
	}
	return s
}

// Percentage returns the rounded share of correct answers
func (s Score) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Correct*100 + s.Total/2) / s.Total
}
