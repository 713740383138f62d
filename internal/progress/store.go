package progress

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/abhisek/wardtrain/internal/registry"
)

// DefaultKey is the storage key the progress blob is saved under.
const DefaultKey = "medical-training-progress"

// KV is the key-value storage the Store persists to.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Config configures a Store.
type Config struct {
	Key    string
	Logger *log.Logger
	Now    func() time.Time
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Key:    DefaultKey,
		Logger: log.New(io.Discard, "", 0),
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Store tracks per-module progress for the modules of a registry and keeps
// the persisted blob in sync with it.
//
// Nothing is written to the KV until Load has run; after that every mutation
// rewrites the full blob. Storage failures are logged, never returned.
type Store struct {
	mu       sync.Mutex
	registry *registry.Registry
	kv       KV
	key      string
	logger   *log.Logger
	now      func() time.Time
	data     Data
	loaded   bool
}

// NewStore creates a Store holding default records for every module in reg.
// Call Load to restore persisted progress.
func NewStore(reg *registry.Registry, kv KV, cfg Config) *Store {
	def := DefaultConfig()
	if cfg.Key == "" {
		cfg.Key = def.Key
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Store{
		registry: reg,
		kv:       kv,
		key:      cfg.Key,
		logger:   cfg.Logger,
		now:      cfg.Now,
		data:     Defaults(reg.IDs()),
	}
}

// Load restores persisted progress on top of fresh defaults for the
// registered modules. Persisted records win; records for modules that are no
// longer registered are kept. A missing blob yields the defaults, and an
// unreadable or unparseable one is logged and replaced by them.
//
// Load replaces any in-memory changes made before it ran.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := Defaults(s.registry.IDs())

	raw, ok, err := s.kv.Get(ctx, s.key)
	switch {
	case err != nil:
		s.logger.Printf("warning: failed to read saved progress: %v", err)
	case ok:
		parsed, err := Decode(raw)
		if err != nil {
			s.logger.Printf("warning: failed to parse saved progress: %v", err)
			break
		}
		data = overlay(data, parsed)
	}

	s.data = data
	s.loaded = true
	s.persist(ctx)
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// UpdateProgress merges u into the record for moduleID and returns the new
// record. Unknown module IDs get a new record.
func (s *Store) UpdateProgress(ctx context.Context, moduleID string, u Update) ModuleProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior, ok := s.data[moduleID]
	if !ok {
		prior = Default()
	}
	next := Merge(prior, u, s.now())
	s.data[moduleID] = next
	s.persist(ctx)
	return next
}

// Get returns the record for moduleID.
func (s *Store) Get(moduleID string) (ModuleProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[moduleID]
	return p, ok
}

// Snapshot returns a copy of every record.
func (s *Store) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return overlay(nil, s.data)
}

// Overall computes the aggregate statistics over the current records.
func (s *Store) Overall() Overall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.data)
}

// Reset discards the progress of a single module.
func (s *Store) Reset(ctx context.Context, moduleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[moduleID] = Default()
	s.persist(ctx)
}

// ResetAll replaces every record with defaults for the currently registered
// modules. Records of unregistered modules are dropped.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = Defaults(s.registry.IDs())
	s.persist(ctx)
}

// persist writes the full map. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if !s.loaded {
		return
	}
	raw, err := Encode(s.data)
	if err != nil {
		s.logger.Printf("warning: %v", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.logger.Printf("warning: failed to save progress: %v", err)
	}
}
