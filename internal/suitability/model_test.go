package suitability

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

func newTestModel() *Model {
	return NewModel(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParseCondition(t *testing.T) {
	t.Run("known labels", func(t *testing.T) {
		for _, raw := range []string{"sunny", "Cloudy", " RAINY ", "snowy", "windy"} {
			cond, err := ParseCondition(raw)
			require.NoError(t, err)
			assert.NotEmpty(t, cond)
		}
	})

	t.Run("unseen label is an invalid feature", func(t *testing.T) {
		_, err := ParseCondition("foggy")
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrInvalidFeature))
	})

	t.Run("empty label", func(t *testing.T) {
		_, err := ParseCondition("")
		assert.True(t, errors.Is(err, types.ErrInvalidFeature))
	})
}

func TestModelScoreBootstrapRules(t *testing.T) {
	model := newTestModel()

	tests := []struct {
		name  string
		cond  Condition
		hour  int
		prefs types.Preferences
		want  float64
	}{
		{"rainy with outdoor preference", ConditionRainy, 10, types.Preferences{Outdoor: true}, 0.2},
		{"sunny with indoor preference", ConditionSunny, 15, types.Preferences{Indoor: true}, 0.6},
		{"lunch hour with crowd tolerance", ConditionCloudy, 12, types.Preferences{Crowded: true}, 0.4},
		{"late lunch hour with crowd tolerance", ConditionWindy, 13, types.Preferences{Crowded: true}, 0.4},
		{"plain good conditions", ConditionCloudy, 10, types.Preferences{Outdoor: true}, 0.8},
		{"sunny outdoor only", ConditionSunny, 9, types.Preferences{Outdoor: true}, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Score(tt.cond, tt.hour, tt.prefs)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestModelScoreUnseenWeather(t *testing.T) {
	model := newTestModel()

	_, err := model.Score(Condition("hail"), 10, types.Preferences{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidFeature))
}

// Two independently bootstrapped models must agree on every input in
// the training domain.
func TestBootstrapDeterminism(t *testing.T) {
	a := newTestModel()
	b := newTestModel()
	require.NoError(t, a.Train(nil))
	require.NoError(t, b.Train(nil))

	bools := []bool{true, false}
	for _, cond := range Vocabulary() {
		for hour := 9; hour < 18; hour++ {
			for _, indoor := range bools {
				for _, outdoor := range bools {
					for _, crowded := range bools {
						prefs := types.Preferences{Indoor: indoor, Outdoor: outdoor, Crowded: crowded}
						sa, err := a.Score(cond, hour, prefs)
						require.NoError(t, err)
						sb, err := b.Score(cond, hour, prefs)
						require.NoError(t, err)
						assert.Equal(t, sa, sb)
					}
				}
			}
		}
	}
}

func TestModelRetrain(t *testing.T) {
	model := newTestModel()

	// Historical data contradicting a bootstrap rule.
	samples := []Sample{
		{Weather: ConditionRainy, Hour: 10, Outdoor: true, Success: 0.9},
		{Weather: ConditionRainy, Hour: 11, Outdoor: true, Success: 0.9},
		{Weather: ConditionSunny, Hour: 10, Outdoor: true, Success: 0.1},
		{Weather: ConditionSunny, Hour: 11, Outdoor: true, Success: 0.1},
	}
	require.NoError(t, model.Train(samples))

	got, err := model.Score(ConditionRainy, 10, types.Preferences{Outdoor: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, got, 1e-9)
}

func TestModelRetrainRejectsUnknownWeather(t *testing.T) {
	model := newTestModel()
	err := model.Train([]Sample{{Weather: Condition("monsoon"), Hour: 10, Success: 0.5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidFeature))
}

func TestModelScoreClamped(t *testing.T) {
	model := newTestModel()
	require.NoError(t, model.Train([]Sample{
		{Weather: ConditionSunny, Hour: 10, Success: 1.7},
		{Weather: ConditionRainy, Hour: 10, Success: -0.4},
	}))

	high, err := model.Score(ConditionSunny, 10, types.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, high)

	low, err := model.Score(ConditionRainy, 10, types.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, low)
}

func TestModelConcurrentScoring(t *testing.T) {
	model := newTestModel()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := model.Score(ConditionCloudy, 10, types.Preferences{Outdoor: true})
			assert.NoError(t, err)
			assert.InDelta(t, 0.8, got, 1e-9)
		}()
	}
	wg.Wait()
}
