package assessment

import "math"

// Question is a single multiple-choice question.
type Question struct {
	ID            int      `json:"id"`
	Category      string   `json:"category"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// Unanswered marks a question without a selected option.
const Unanswered = -1

// CorrectCount returns how many answers match their question. answers[i]
// belongs to questions[i]; missing or Unanswered entries count as wrong.
func CorrectCount(answers []int, questions []Question) int {
	correct := 0
	for i, a := range answers {
		if i < len(questions) && questions[i].IsCorrect(a) {
			correct++
		}
	}
	return correct
}

// Score returns the percentage of correct answers, rounded half up.
// An empty question list scores 0.
func Score(answers []int, questions []Question) int {
	if len(questions) == 0 {
		return 0
	}
	pct := float64(CorrectCount(answers, questions)) / float64(len(questions)) * 100
	return int(math.Floor(pct + 0.5))
}
