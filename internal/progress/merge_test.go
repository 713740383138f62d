package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func TestMerge_ScenarioSequence(t *testing.T) {
	p := Default()

	p = Merge(p, Update{Completed: Bool(true), Score: Int(60)}, t0)
	assert.True(t, p.Completed)
	assert.Equal(t, 60, *p.Score)
	assert.Equal(t, 60, *p.BestScore)
	assert.Equal(t, 1, p.Attempts)
	require.NotNil(t, p.CompletedAt)
	assert.True(t, p.CompletedAt.Equal(t0))

	t1 := t0.Add(time.Hour)
	p = Merge(p, Update{Completed: Bool(true), Score: Int(90)}, t1)
	assert.Equal(t, 90, *p.BestScore)
	assert.Equal(t, 2, p.Attempts)
	assert.True(t, p.CompletedAt.Equal(t1))

	p = Merge(p, Update{Completed: Bool(false), Score: Int(40)}, t1.Add(time.Hour))
	assert.False(t, p.Completed)
	assert.Equal(t, 40, *p.Score)
	assert.Equal(t, 90, *p.BestScore)
	assert.Equal(t, 2, p.Attempts)
	assert.True(t, p.CompletedAt.Equal(t1), "completedAt kept when not completing")
}

func TestMerge_BestScoreIsMaxOfScores(t *testing.T) {
	scores := []int{55, 72, 30, 100, 64}
	p := Default()
	for _, s := range scores {
		p = Merge(p, Update{Score: Int(s)}, t0)
	}
	require.NotNil(t, p.BestScore)
	assert.Equal(t, 100, *p.BestScore)
}

func TestMerge_NoScoreKeepsBest(t *testing.T) {
	p := Merge(Default(), Update{Completed: Bool(true)}, t0)
	assert.Nil(t, p.BestScore)
	assert.Nil(t, p.Score)

	p = Merge(p, Update{Score: Int(70)}, t0)
	p = Merge(p, Update{TimeSpent: Int(120)}, t0)
	assert.Equal(t, 70, *p.BestScore)
	assert.Equal(t, 120, *p.TimeSpent)
}

func TestMerge_ZeroScoreSetsBest(t *testing.T) {
	p := Merge(Default(), Update{Score: Int(0)}, t0)
	require.NotNil(t, p.BestScore)
	assert.Equal(t, 0, *p.BestScore)
}

func TestMerge_DerivedFieldsIgnoreCallerValues(t *testing.T) {
	other := t0.Add(-48 * time.Hour)
	p := Merge(Default(), Update{
		Score:       Int(50),
		BestScore:   Int(99),
		Attempts:    Int(7),
		CompletedAt: &other,
	}, t0)

	assert.Equal(t, 50, *p.BestScore)
	assert.Equal(t, 0, p.Attempts)
	assert.Nil(t, p.CompletedAt)
}

func TestMerge_AttemptsCountCompletedCalls(t *testing.T) {
	calls := []Update{
		{Completed: Bool(true), Score: Int(10)},
		{Completed: Bool(false), Score: Int(20)},
		{Score: Int(30)},
		{Completed: Bool(true), Score: Int(40)},
		{Completed: Bool(true)},
	}
	p := Default()
	for _, u := range calls {
		p = Merge(p, u, t0)
	}
	assert.Equal(t, 3, p.Attempts)
}

func TestMerge_DoesNotAliasUpdate(t *testing.T) {
	score := 80
	p := Merge(Default(), Update{Score: &score}, t0)
	score = 10
	assert.Equal(t, 80, *p.Score)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want Overall
	}{
		{
			name: "empty",
			data: Data{},
			want: Overall{},
		},
		{
			name: "one completed one untouched",
			data: Data{
				"alpha": {Completed: true, Attempts: 1, BestScore: Int(80), Score: Int(80)},
				"beta":  Default(),
			},
			want: Overall{CompletedModules: 1, TotalModules: 2, CompletionRate: 50, AverageScore: 80},
		},
		{
			name: "average excludes unscored",
			data: Data{
				"a": {BestScore: Int(70)},
				"b": {BestScore: Int(85)},
				"c": Default(),
			},
			want: Overall{TotalModules: 3, AverageScore: 78},
		},
		{
			name: "completion rate rounds",
			data: Data{
				"a": {Completed: true},
				"b": Default(),
				"c": Default(),
			},
			want: Overall{CompletedModules: 1, TotalModules: 3, CompletionRate: 33},
		},
		{
			name: "two of three rounds up",
			data: Data{
				"a": {Completed: true},
				"b": {Completed: true},
				"c": Default(),
			},
			want: Overall{CompletedModules: 2, TotalModules: 3, CompletionRate: 67},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.data))
		})
	}
}

func TestEncodeDecode_Layout(t *testing.T) {
	d := Data{
		"alpha": Merge(Default(), Update{Completed: Bool(true), Score: Int(90), TimeSpent: Int(300)}, t0),
		"beta":  Default(),
	}
	raw, err := Encode(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"alpha": {"completed": true, "score": 90, "bestScore": 90, "attempts": 1,
		          "completedAt": "2024-03-14T09:30:00Z", "timeSpent": 300},
		"beta":  {"completed": false, "attempts": 0}
	}`, raw)

	back, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDecode_BrowserTimestamp(t *testing.T) {
	d, err := Decode(`{"sepsis":{"completed":true,"attempts":2,"completedAt":"2024-05-01T10:20:30.123Z","bestScore":88}}`)
	require.NoError(t, err)
	p := d["sepsis"]
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, 2024, p.CompletedAt.Year())
	assert.Equal(t, 88, *p.BestScore)
}

func TestDecode_Invalid(t *testing.T) {
	for _, raw := range []string{"{", "[1,2]", `"text"`, `{"a": {"attempts": "many"}}`} {
		_, err := Decode(raw)
		assert.Error(t, err, raw)
	}
}
