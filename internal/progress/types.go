package progress

import "time"

// ModuleProgress is the mutable completion state of one module.
type ModuleProgress struct {
	Completed   bool       `json:"completed"`
	Score       *int       `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Attempts    int        `json:"attempts"`
	BestScore   *int       `json:"bestScore,omitempty"`
	TimeSpent   *int       `json:"timeSpent,omitempty"` // seconds
}

// Data maps module IDs to their progress records. It is also the layout of
// the persisted JSON blob.
type Data map[string]ModuleProgress

// Update is a partial progress record. Nil fields are left untouched.
//
// BestScore, Attempts and CompletedAt are accepted for shape compatibility
// but are always derived by Merge; values supplied here are ignored.
type Update struct {
	Completed   *bool
	Score       *int
	CompletedAt *time.Time
	Attempts    *int
	TimeSpent   *int
	BestScore   *int
}

// Overall holds the aggregate statistics shown on the dashboard.
type Overall struct {
	CompletedModules int `json:"completedModules"`
	TotalModules     int `json:"totalModules"`
	AverageScore     int `json:"averageScore"`
	CompletionRate   int `json:"completionRate"`
}

// Default returns the record of a module that has never been attempted.
func Default() ModuleProgress {
	return ModuleProgress{Completed: false, Attempts: 0}
}

// Defaults returns a fresh Data with one default record per id.
func Defaults(ids []string) Data {
	d := make(Data, len(ids))
	for _, id := range ids {
		d[id] = Default()
	}
	return d
}

// Int returns a pointer to v, for building Updates.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building Updates.
func Bool(v bool) *bool { return &v }
