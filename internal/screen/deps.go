package screen

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
)

// Deps carries the services screens read from and write to.
type Deps struct {
	Registry *registry.Registry
	Progress *progress.Store
	Catalog  *assessment.Catalog

	// Now and Rand default to the wall clock and the global source.
	Now  func() time.Time
	Rand *rand.Rand
}

// Clock returns the current time from d.Now, or time.Now when unset.
func (d Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
