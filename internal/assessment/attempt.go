package assessment

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
)

// Attempt is one pass through a module's questions.
type Attempt struct {
	ID        string
	Module    registry.Module
	Questions []Question
	StartedAt time.Time

	answers []int
	current int
}

// NewAttempt starts an attempt at m using questions from bank.
//
// The attempt serves m.QuestionCount questions. When the bank holds more,
// a subset is drawn with rng (the global source when nil) and kept in bank
// order; otherwise every bank question is served.
func NewAttempt(m registry.Module, bank Bank, rng *rand.Rand, now time.Time) (*Attempt, error) {
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBank, m.ID)
	}

	questions := selectQuestions(bank.Questions, m.QuestionCount, rng)
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = Unanswered
	}

	return &Attempt{
		ID:        uuid.New().String(),
		Module:    m,
		Questions: questions,
		StartedAt: now,
		answers:   answers,
	}, nil
}

func selectQuestions(pool []Question, n int, rng *rand.Rand) []Question {
	if n <= 0 || n >= len(pool) {
		return slices.Clone(pool)
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(len(pool))
	} else {
		perm = rand.Perm(len(pool))
	}
	picked := perm[:n]
	slices.Sort(picked)

	out := make([]Question, 0, n)
	for _, i := range picked {
		out = append(out, pool[i])
	}
	return out
}

// Len returns the number of questions in the attempt.
func (a *Attempt) Len() int {
	return len(a.Questions)
}

// Index returns the zero-based position of the current question.
func (a *Attempt) Index() int {
	return a.current
}

// Current returns the question being shown.
func (a *Attempt) Current() Question {
	return a.Questions[a.current]
}

// Selected returns the option chosen for the current question, or Unanswered.
func (a *Attempt) Selected() int {
	return a.answers[a.current]
}

// Select records option as the answer to the current question. Out-of-range
// options are ignored.
func (a *Attempt) Select(option int) bool {
	if option < 0 || option >= len(a.Current().Options) {
		return false
	}
	a.answers[a.current] = option
	return true
}

// CanAdvance reports whether the current question has an answer.
func (a *Attempt) CanAdvance() bool {
	return a.Selected() != Unanswered
}

// IsFirst reports whether the current question is the first one.
func (a *Attempt) IsFirst() bool {
	return a.current == 0
}

// IsLast reports whether the current question is the last one.
func (a *Attempt) IsLast() bool {
	return a.current == len(a.Questions)-1
}

// Next moves to the following question. It does nothing on the last question
// or while the current question is unanswered.
func (a *Attempt) Next() bool {
	if a.IsLast() || !a.CanAdvance() {
		return false
	}
	a.current++
	return true
}

// Previous moves back one question, keeping recorded answers.
func (a *Attempt) Previous() bool {
	if a.IsFirst() {
		return false
	}
	a.current--
	return true
}

// Answered returns how many questions have an answer.
func (a *Attempt) Answered() int {
	n := 0
	for _, ans := range a.answers {
		if ans != Unanswered {
			n++
		}
	}
	return n
}

// Progress returns the position of the current question as a fraction in (0, 1].
func (a *Attempt) Progress() float64 {
	return float64(a.current+1) / float64(len(a.Questions))
}

// Answers returns a copy of the recorded answers.
func (a *Attempt) Answers() []int {
	return slices.Clone(a.answers)
}

// ReviewItem pairs a question with the answer given.
type ReviewItem struct {
	Question Question
	Chosen   int
}

// Correct reports whether the chosen option was right.
func (r ReviewItem) Correct() bool {
	return r.Question.IsCorrect(r.Chosen)
}

// Result is the outcome of a finished attempt.
type Result struct {
	AttemptID string
	ModuleID  string
	Correct   int
	Total     int
	Score     int
	Passed    bool
	Duration  time.Duration
	Review    []ReviewItem
}

// Finish scores the attempt. Unanswered questions count as wrong.
func (a *Attempt) Finish(now time.Time) Result {
	review := make([]ReviewItem, len(a.Questions))
	for i, q := range a.Questions {
		review[i] = ReviewItem{Question: q, Chosen: a.answers[i]}
	}

	score := Score(a.answers, a.Questions)
	return Result{
		AttemptID: a.ID,
		ModuleID:  a.Module.ID,
		Correct:   CorrectCount(a.answers, a.Questions),
		Total:     len(a.Questions),
		Score:     score,
		Passed:    a.Module.Passed(score),
		Duration:  now.Sub(a.StartedAt),
		Review:    review,
	}
}

// Missed returns the review items answered incorrectly.
func (r Result) Missed() []ReviewItem {
	var out []ReviewItem
	for _, item := range r.Review {
		if !item.Correct() {
			out = append(out, item)
		}
	}
	return out
}

// Update returns the progress update recorded for this result. The module is
// marked completed only when the attempt passed.
func (r Result) Update() progress.Update {
	secs := int(r.Duration.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return progress.Update{
		Completed: progress.Bool(r.Passed),
		Score:     progress.Int(r.Score),
		TimeSpent: progress.Int(secs),
	}
}
