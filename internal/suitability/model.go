// Package suitability scores how well an attraction fits the current
// weather, hour of day, and traveler preferences. The score comes from
// a regression tree trained either on supplied historical samples or,
// absent any history, on a deterministic synthetic bootstrap set.
package suitability

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

// Sample is one training observation. The feature schema is fixed:
// [weather code, hour of day, indoor flag, outdoor flag, crowded flag]
// against a success score in [0,1].
type Sample struct {
	Weather Condition `json:"weather"`
	Hour    int       `json:"hour_of_day"`
	Indoor  bool      `json:"preference_indoor"`
	Outdoor bool      `json:"preference_outdoor"`
	Crowded bool      `json:"preference_crowded"`
	Success float64   `json:"success_score"`
}

// Model is a context-conditioned suitability scorer. A single Model may
// serve concurrent readers; training is a rare, exclusive operation
// serialized behind the write lock. The zero value is not usable, use
// NewModel.
type Model struct {
	logger *slog.Logger

	mu   sync.RWMutex
	root *treeNode
}

// NewModel returns an untrained model. The first Score call trains it
// on the bootstrap set if Train was never called.
func NewModel(logger *slog.Logger) *Model {
	return &Model{logger: logger}
}

// Train fits the tree on the given historical samples, replacing any
// previous fit. An empty or nil slice falls back to the bootstrap set.
// Training with identical input always produces an identical tree.
func (m *Model) Train(samples []Sample) error {
	if len(samples) == 0 {
		samples = BootstrapSamples()
	}

	xs := make([][]float64, 0, len(samples))
	ys := make([]float64, 0, len(samples))
	for _, s := range samples {
		x, err := featureVector(s.Weather, s.Hour, types.Preferences{
			Indoor:  s.Indoor,
			Outdoor: s.Outdoor,
			Crowded: s.Crowded,
		})
		if err != nil {
			return fmt.Errorf("invalid training sample: %w", err)
		}
		xs = append(xs, x)
		ys = append(ys, s.Success)
	}

	root := buildTree(xs, ys)

	m.mu.Lock()
	m.root = root
	m.mu.Unlock()

	m.logger.Info("suitability model trained", slog.Int("samples", len(samples)))
	return nil
}

// Score predicts suitability in [0,1] for an attraction visited at the
// given hour under the given weather and preferences. An unseen weather
// label fails with types.ErrInvalidFeature. The prediction is clamped
// into [0,1] to guard against extrapolation outside the training range.
func (m *Model) Score(cond Condition, hour int, prefs types.Preferences) (float64, error) {
	x, err := featureVector(cond, hour, prefs)
	if err != nil {
		return 0, err
	}

	m.mu.RLock()
	root := m.root
	m.mu.RUnlock()

	if root == nil {
		if err := m.Train(nil); err != nil {
			return 0, fmt.Errorf("lazy bootstrap training: %w", err)
		}
		m.mu.RLock()
		root = m.root
		m.mu.RUnlock()
	}

	score := root.predict(x)
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return score, nil
}

// BootstrapSamples enumerates the full cross product of the weather
// vocabulary, hours 9 through 17, and the three preference flags, each
// labeled by a fixed rule set. The enumeration order and labels never
// change, so two independent bootstrap trainings agree everywhere.
func BootstrapSamples() []Sample {
	bools := []bool{true, false}

	var samples []Sample
	for _, cond := range Vocabulary() {
		for hour := 9; hour < 18; hour++ {
			for _, indoor := range bools {
				for _, outdoor := range bools {
					for _, crowded := range bools {
						var score float64
						switch {
						case cond == ConditionRainy && outdoor:
							score = 0.2
						case cond == ConditionSunny && indoor:
							score = 0.6
						case (hour == 12 || hour == 13) && crowded:
							score = 0.4
						default:
							score = 0.8
						}
						samples = append(samples, Sample{
							Weather: cond,
							Hour:    hour,
							Indoor:  indoor,
							Outdoor: outdoor,
							Crowded: crowded,
							Success: score,
						})
					}
				}
			}
		}
	}
	return samples
}

func featureVector(cond Condition, hour int, prefs types.Preferences) ([]float64, error) {
	code, err := cond.code()
	if err != nil {
		return nil, err
	}
	return []float64{code, float64(hour), boolFeature(prefs.Indoor), boolFeature(prefs.Outdoor), boolFeature(prefs.Crowded)}, nil
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
