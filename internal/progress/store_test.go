package progress

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wardtrain/internal/registry"
)

// memKV is an in-memory KV with optional failure injection.
type memKV struct {
	values map[string]string
	sets   int
	getErr error
	setErr error
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func twoModules() *registry.Registry {
	return registry.New(
		registry.Module{ID: "alpha", PassingScore: 80, QuestionCount: 5},
		registry.Module{ID: "beta", PassingScore: 80, QuestionCount: 5},
	)
}

func testStore(t *testing.T, reg *registry.Registry, kv KV) (*Store, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s := NewStore(reg, kv, Config{
		Logger: log.New(&logs, "", 0),
		Now:    func() time.Time { return t0 },
	})
	return s, &logs
}

func TestStore_LoadWithoutSavedData(t *testing.T) {
	kv := newMemKV()
	s, logs := testStore(t, twoModules(), kv)
	ctx := context.Background()

	s.Load(ctx)

	assert.True(t, s.Loaded())
	assert.Equal(t, Data{"alpha": Default(), "beta": Default()}, s.Snapshot())
	assert.Empty(t, logs.String())

	saved, err := Decode(kv.values[DefaultKey])
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), saved)
}

func TestStore_LoadMergesSavedData(t *testing.T) {
	kv := newMemKV()
	kv.values[DefaultKey] = `{
		"alpha": {"completed": true, "attempts": 3, "score": 85, "bestScore": 95},
		"retired": {"completed": true, "attempts": 1, "bestScore": 70}
	}`
	s, _ := testStore(t, twoModules(), kv)

	s.Load(context.Background())

	alpha, ok := s.Get("alpha")
	require.True(t, ok)
	assert.True(t, alpha.Completed)
	assert.Equal(t, 3, alpha.Attempts)
	assert.Equal(t, 95, *alpha.BestScore)

	beta, ok := s.Get("beta")
	require.True(t, ok)
	assert.Equal(t, Default(), beta)

	_, ok = s.Get("retired")
	assert.True(t, ok, "stale module ids are kept")
	assert.Equal(t, 3, s.Overall().TotalModules)
}

func TestStore_LoadUnparseableFallsBack(t *testing.T) {
	kv := newMemKV()
	kv.values[DefaultKey] = "{not json"
	s, logs := testStore(t, twoModules(), kv)

	s.Load(context.Background())

	assert.True(t, s.Loaded())
	assert.Equal(t, Data{"alpha": Default(), "beta": Default()}, s.Snapshot())
	assert.Contains(t, logs.String(), "failed to parse saved progress")
}

func TestStore_LoadReadErrorFallsBack(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	s, logs := testStore(t, twoModules(), kv)

	s.Load(context.Background())

	assert.True(t, s.Loaded())
	assert.Len(t, s.Snapshot(), 2)
	assert.Contains(t, logs.String(), "disk on fire")
}

func TestStore_NoWritesBeforeLoad(t *testing.T) {
	kv := newMemKV()
	kv.values[DefaultKey] = `{"alpha": {"completed": true, "attempts": 4, "bestScore": 100}}`
	s, _ := testStore(t, twoModules(), kv)
	ctx := context.Background()

	s.UpdateProgress(ctx, "alpha", Update{Completed: Bool(false), Score: Int(10)})
	s.Reset(ctx, "beta")
	s.ResetAll(ctx)
	assert.Equal(t, 0, kv.sets)

	s.Load(ctx)
	alpha, _ := s.Get("alpha")
	assert.Equal(t, 4, alpha.Attempts, "persisted data survives pre-load changes")
}

func TestStore_UpdateProgressScenario(t *testing.T) {
	kv := newMemKV()
	s, _ := testStore(t, twoModules(), kv)
	ctx := context.Background()
	s.Load(ctx)

	got := s.UpdateProgress(ctx, "alpha", Update{Completed: Bool(true), Score: Int(60)})
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, 60, *got.BestScore)

	s.UpdateProgress(ctx, "alpha", Update{Completed: Bool(true), Score: Int(90)})
	got = s.UpdateProgress(ctx, "alpha", Update{Completed: Bool(false), Score: Int(40)})
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, 90, *got.BestScore)
	assert.Equal(t, 40, *got.Score)

	saved, err := Decode(kv.values[DefaultKey])
	require.NoError(t, err)
	assert.Equal(t, got, saved["alpha"])

	s.Reset(ctx, "alpha")
	alpha, _ := s.Get("alpha")
	assert.Equal(t, Default(), alpha)
	assert.Nil(t, alpha.BestScore)
	assert.Nil(t, alpha.Score)

	saved, err = Decode(kv.values[DefaultKey])
	require.NoError(t, err)
	assert.Equal(t, Default(), saved["alpha"])
}

func TestStore_UnknownModuleCreatesEntry(t *testing.T) {
	s, _ := testStore(t, twoModules(), newMemKV())
	ctx := context.Background()
	s.Load(ctx)

	s.UpdateProgress(ctx, "ghost", Update{Completed: Bool(true), Score: Int(100)})

	ghost, ok := s.Get("ghost")
	require.True(t, ok)
	assert.Equal(t, 1, ghost.Attempts)
	assert.Equal(t, 3, s.Overall().TotalModules)
}

func TestStore_Overall(t *testing.T) {
	s, _ := testStore(t, twoModules(), newMemKV())
	ctx := context.Background()
	s.Load(ctx)

	s.UpdateProgress(ctx, "alpha", Update{Completed: Bool(true), Score: Int(80)})

	assert.Equal(t, Overall{
		CompletedModules: 1,
		TotalModules:     2,
		CompletionRate:   50,
		AverageScore:     80,
	}, s.Overall())
}

func TestStore_OverallEmptyRegistry(t *testing.T) {
	s, _ := testStore(t, registry.New(), newMemKV())
	s.Load(context.Background())
	assert.Equal(t, Overall{}, s.Overall())
}

func TestStore_ResetAllUsesLiveRegistry(t *testing.T) {
	kv := newMemKV()
	kv.values[DefaultKey] = `{"retired": {"completed": true, "attempts": 1}}`
	reg := twoModules()
	s, _ := testStore(t, reg, kv)
	ctx := context.Background()
	s.Load(ctx)

	reg.Add(registry.Module{ID: "gamma"})
	s.ResetAll(ctx)

	assert.Equal(t, Data{"alpha": Default(), "beta": Default(), "gamma": Default()}, s.Snapshot())
}

func TestStore_WriteFailureIsSwallowed(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("quota exceeded")
	s, logs := testStore(t, twoModules(), kv)
	ctx := context.Background()
	s.Load(ctx)

	got := s.UpdateProgress(ctx, "alpha", Update{Completed: Bool(true), Score: Int(90)})

	assert.Equal(t, 1, got.Attempts)
	alpha, _ := s.Get("alpha")
	assert.Equal(t, got, alpha, "in-memory state still advances")
	assert.Contains(t, logs.String(), "quota exceeded")
}

func TestStore_RoundTripAcrossSessions(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()

	first, _ := testStore(t, twoModules(), kv)
	first.Load(ctx)
	first.UpdateProgress(ctx, "alpha", Update{Completed: Bool(true), Score: Int(88), TimeSpent: Int(412)})
	first.UpdateProgress(ctx, "beta", Update{Completed: Bool(false), Score: Int(45)})

	second, _ := testStore(t, twoModules(), kv)
	second.Load(ctx)

	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestStore_CustomKey(t *testing.T) {
	kv := newMemKV()
	s := NewStore(twoModules(), kv, Config{Key: "ward-7"})
	s.Load(context.Background())

	_, ok := kv.values["ward-7"]
	assert.True(t, ok)
	_, ok = kv.values[DefaultKey]
	assert.False(t, ok)
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s, _ := testStore(t, twoModules(), newMemKV())
	s.Load(context.Background())

	snap := s.Snapshot()
	snap["alpha"] = ModuleProgress{Completed: true}

	alpha, _ := s.Get("alpha")
	assert.False(t, alpha.Completed)
}
