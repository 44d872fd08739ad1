package rulebook_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
)

func validEffect(id string) *effects.Definition {
	return &effects.Definition{
		ID:       id,
		Name:     id,
		Category: effects.CategoryBuff,
		Duration: effects.DurationPermanent,
		Stacking: effects.StackingReplace,
	}
}

func TestBuild_Valid(t *testing.T) {
	cat, err := rulebook.Build(
		[]*effects.Definition{validEffect("a"), validEffect("b")},
		[]*disease.Definition{{
			ID:         "rot",
			Name:       "Rot",
			BaseChance: 0.2,
			Stages:     []disease.Stage{{Name: "only", EffectID: "a"}},
		}},
		[]*weather.Definition{{
			ID: "rain", Name: "Rain", BaseWeight: 10, DurationMin: 1, DurationMax: 3,
		}},
		[]*hazard.Definition{{
			ID: "pit", Name: "Pit", BaseChance: 0.5,
			Save: &hazard.StatSave{Stat: "agility", DifficultyClass: 10},
			OnFailure: hazard.EffectBundle{Damage: 2, EffectIDs: []string{"b"}},
		}},
		nil,
	)
	require.NoError(t, err)

	_, ok := cat.Effect("a")
	assert.True(t, ok)
	_, ok = cat.Disease("rot")
	assert.True(t, ok)
	_, ok = cat.Weather("rain")
	assert.True(t, ok)
	_, ok = cat.Hazard("pit")
	assert.True(t, ok)
	assert.Len(t, cat.WeatherDefinitions(), 1)
	assert.Len(t, cat.Hazards(), 1)
}

func TestBuild_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		effects []*effects.Definition
		build   func() error
	}{
		{
			name: "duplicate effect id",
			build: func() error {
				_, err := rulebook.Build([]*effects.Definition{validEffect("dup"), validEffect("dup")}, nil, nil, nil, nil)
				return err
			},
		},
		{
			name: "unknown modifier name",
			build: func() error {
				def := validEffect("typo")
				def.Modifiers = []effects.Modifier{
					{Target: effects.TargetStat, Name: "strenght", Kind: effects.KindFlat, Value: 1},
				}
				_, err := rulebook.Build([]*effects.Definition{def}, nil, nil, nil, nil)
				return err
			},
		},
		{
			name: "unknown blocked effect",
			build: func() error {
				def := validEffect("lonely")
				def.Conditions.Blocks = []string{"ghost"}
				_, err := rulebook.Build([]*effects.Definition{def}, nil, nil, nil, nil)
				return err
			},
		},
		{
			name: "turns duration without value",
			build: func() error {
				def := validEffect("short")
				def.Duration = effects.DurationTurns
				_, err := rulebook.Build([]*effects.Definition{def}, nil, nil, nil, nil)
				return err
			},
		},
		{
			name: "stack mode without max stacks",
			build: func() error {
				def := validEffect("pile")
				def.Stacking = effects.StackingStack
				_, err := rulebook.Build([]*effects.Definition{def}, nil, nil, nil, nil)
				return err
			},
		},
		{
			name: "disease without stages",
			build: func() error {
				_, err := rulebook.Build(nil, []*disease.Definition{{ID: "empty", BaseChance: 0.1}}, nil, nil, nil)
				return err
			},
		},
		{
			name: "disease stage references unknown effect",
			build: func() error {
				_, err := rulebook.Build(nil, []*disease.Definition{{
					ID: "bad", BaseChance: 0.1,
					Stages: []disease.Stage{{Name: "s", EffectID: "missing"}},
				}}, nil, nil, nil)
				return err
			},
		},
		{
			name: "weather defines clear",
			build: func() error {
				_, err := rulebook.Build(nil, nil, []*weather.Definition{{
					ID: "clear", BaseWeight: 1, DurationMin: 1, DurationMax: 2,
				}}, nil, nil)
				return err
			},
		},
		{
			name: "weather with inverted duration range",
			build: func() error {
				_, err := rulebook.Build(nil, nil, []*weather.Definition{{
					ID: "fog", BaseWeight: 1, DurationMin: 5, DurationMax: 2,
				}}, nil, nil)
				return err
			},
		},
		{
			name: "hazard with unknown save stat",
			build: func() error {
				_, err := rulebook.Build(nil, nil, nil, []*hazard.Definition{{
					ID: "zap", BaseChance: 0.1,
					Save: &hazard.StatSave{Stat: "luck", DifficultyClass: 5},
				}}, nil)
				return err
			},
		},
		{
			name: "hazard bundle references unknown effect",
			build: func() error {
				_, err := rulebook.Build(nil, nil, nil, []*hazard.Definition{{
					ID: "trap", BaseChance: 0.1,
					OnFailure: hazard.EffectBundle{EffectIDs: []string{"missing"}},
				}}, nil)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.build())
		})
	}
}

func TestLoad_FromDirectory(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"effects.json": `[
			{"id": "chill", "name": "Chill", "category": "debuff",
			 "duration": "turns", "duration_value": 3, "stacking": "refresh",
			 "modifiers": [{"target": "stat", "name": "agility", "kind": "flat", "value": -1}]}
		]`,
		"diseases.json": `[
			{"id": "shivers", "name": "Shivers", "base_chance": 0.2,
			 "base_recovery_chance": 0.1,
			 "stages": [{"name": "cold", "effect_id": "chill"}]}
		]`,
		"weather.json": `[
			{"id": "sleet", "name": "Sleet", "base_weight": 5,
			 "duration_min": 2, "duration_max": 4}
		]`,
		"hazards.json": `[
			{"id": "ice_patch", "name": "Ice Patch", "base_chance": 0.3,
			 "save": {"stat": "agility", "difficulty_class": 8},
			 "on_success": {}, "on_failure": {"damage": 1}}
		]`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	cat, err := rulebook.Load(&rulebook.LoaderConfig{Dir: dir})
	require.NoError(t, err)

	def, ok := cat.Effect("chill")
	require.True(t, ok)
	assert.Equal(t, effects.DurationTurns, def.Duration)
	assert.Equal(t, 3, def.DurationValue)

	dis, ok := cat.Disease("shivers")
	require.True(t, ok)
	assert.Equal(t, "chill", dis.Stages[0].EffectID)

	_, ok = cat.Weather("sleet")
	assert.True(t, ok)
	_, ok = cat.Hazard("ice_patch")
	assert.True(t, ok)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := rulebook.Load(&rulebook.LoaderConfig{Dir: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestLoad_MissingConfig(t *testing.T) {
	_, err := rulebook.Load(nil)
	assert.Error(t, err)
}
