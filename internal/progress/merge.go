package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Merge applies u to prior and returns the new record.
//
// Present fields overwrite prior values, with three derived exceptions:
// BestScore becomes max(u.Score, prior best or 0) when a score is given,
// Attempts grows by one only when u marks the module completed, and
// CompletedAt is set to now under the same condition.
func Merge(prior ModuleProgress, u Update, now time.Time) ModuleProgress {
	next := prior

	if u.Completed != nil {
		next.Completed = *u.Completed
	}
	if u.Score != nil {
		score := *u.Score
		next.Score = &score

		best := 0
		if prior.BestScore != nil {
			best = *prior.BestScore
		}
		best = max(score, best)
		next.BestScore = &best
	}
	if u.TimeSpent != nil {
		spent := *u.TimeSpent
		next.TimeSpent = &spent
	}

	if u.Completed != nil && *u.Completed {
		next.Attempts = prior.Attempts + 1
		at := now
		next.CompletedAt = &at
	}

	return next
}

// Summarize computes the aggregate statistics over every record in d,
// including records for modules that are no longer registered.
func Summarize(d Data) Overall {
	var o Overall
	o.TotalModules = len(d)

	var scoreSum, scored int
	for _, p := range d {
		if p.Completed {
			o.CompletedModules++
		}
		if p.BestScore != nil {
			scoreSum += *p.BestScore
			scored++
		}
	}

	if o.TotalModules > 0 {
		o.CompletionRate = roundPercent(float64(o.CompletedModules) / float64(o.TotalModules) * 100)
	}
	if scored > 0 {
		o.AverageScore = roundPercent(float64(scoreSum) / float64(scored))
	}
	return o
}

// roundPercent rounds half up, matching how scores are rounded elsewhere.
func roundPercent(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Encode serializes d into the persisted blob format.
func Encode(d Data) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode progress: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted blob.
func Decode(raw string) (Data, error) {
	var d Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return d, nil
}

// overlay returns a copy of base with every entry of top applied on top of it.
// Keys present only in top are kept.
func overlay(base, top Data) Data {
	out := make(Data, len(base)+len(top))
	for id, p := range base {
		out[id] = p
	}
	for id, p := range top {
		out[id] = p
	}
	return out
}
