package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
)

// TestEffectDefinitions returns a representative effect catalog
func TestEffectDefinitions() []*effects.Definition {
	return []*effects.Definition{
		{
			ID:            "trail_blessing",
			Name:          "Trail Blessing",
			Category:      effects.CategoryBuff,
			Duration:      effects.DurationTurns,
			DurationValue: 6,
			Stacking:      effects.StackingRefresh,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetSkill, Name: "survival", Kind: effects.KindFlat, Value: 2},
			},
		},
		{
			ID:            "war_paint",
			Name:          "War Paint",
			Category:      effects.CategoryBuff,
			Duration:      effects.DurationTurns,
			DurationValue: 5,
			Stacking:      effects.StackingReplace,
			Conditions:    effects.Conditions{Blocks: []string{"trail_blessing"}},
			Modifiers: []effects.Modifier{
				{Target: effects.TargetStat, Name: "strength", Kind: effects.KindFlat, Value: 1},
			},
		},
		{
			ID:            "snake_venom",
			Name:          "Snake Venom",
			Category:      effects.CategoryDebuff,
			Duration:      effects.DurationTurns,
			DurationValue: 10,
			Stacking:      effects.StackingStack,
			MaxStacks:     3,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetStat, Name: "fortitude", Kind: effects.KindFlat, Value: -1},
			},
			Triggers: []effects.Trigger{
				{Event: "turn_start", Action: effects.ActionDamage, Value: 1, Probability: 1.0},
			},
		},
		{
			ID:         "iron_ward",
			Name:       "Iron Ward",
			Category:   effects.CategoryTalent,
			Duration:   effects.DurationPermanent,
			Stacking:   effects.StackingNone,
			Conditions: effects.Conditions{Immunities: []string{"snake_venom"}},
		},
		{
			ID:            "fever_stage_0",
			Name:          "Festering Fever (Onset)",
			Category:      effects.CategoryDisease,
			Duration:      effects.DurationPermanent,
			Stacking:      effects.StackingReplace,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetStat, Name: "strength", Kind: effects.KindFlat, Value: -1},
			},
		},
		{
			ID:            "fever_stage_1",
			Name:          "Festering Fever (Grip)",
			Category:      effects.CategoryDisease,
			Duration:      effects.DurationPermanent,
			Stacking:      effects.StackingReplace,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetStat, Name: "strength", Kind: effects.KindFlat, Value: -2},
				{Target: effects.TargetMultiplier, Name: "fatigue_rate", Kind: effects.KindPercentage, Value: 0.25},
			},
		},
		{
			ID:            "fever_stage_2",
			Name:          "Festering Fever (Delirium)",
			Category:      effects.CategoryDisease,
			Duration:      effects.DurationPermanent,
			Stacking:      effects.StackingReplace,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetStat, Name: "strength", Kind: effects.KindFlat, Value: -4},
			},
		},
		{
			ID:            "grit_cloud",
			Name:          "Stinging Grit",
			Category:      effects.CategoryEnvironmental,
			Duration:      effects.DurationPermanent,
			Stacking:      effects.StackingReplace,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetDerived, Name: "visibility_range", Kind: effects.KindPercentage, Value: -0.5},
			},
		},
		{
			ID:            "sprain",
			Name:          "Sprained Ankle",
			Category:      effects.CategoryDebuff,
			Duration:      effects.DurationTurns,
			DurationValue: 4,
			Stacking:      effects.StackingNone,
			Modifiers: []effects.Modifier{
				{Target: effects.TargetMultiplier, Name: "travel_speed", Kind: effects.KindPercentage, Value: -0.3},
			},
		},
		{
			ID:            "second_wind_omen",
			Name:          "Second Wind Omen",
			Category:      effects.CategoryStatus,
			Duration:      effects.DurationDays,
			DurationValue: 2,
			Stacking:      effects.StackingNone,
			Triggers: []effects.Trigger{
				{Event: effects.EventExpire, Action: effects.ActionCustom, Target: "omen_faded", Probability: 1.0},
			},
		},
	}
}

// TestDiseaseDefinitions returns a representative disease catalog
func TestDiseaseDefinitions() []*disease.Definition {
	return []*disease.Definition{
		{
			ID:                 "festering_fever",
			Name:               "Festering Fever",
			BaseChance:         0.3,
			IncubationTurns:    3,
			BaseRecoveryChance: 0.05,
			RestRecoveryBonus:  0.1,
			ImmunityDays:       5,
			Stages: []disease.Stage{
				{Name: "onset", DurationTurns: 5, EffectID: "fever_stage_0", Symptom: "feverish chills", ThirstRate: 1.5},
				{Name: "grip", DurationTurns: 5, EffectID: "fever_stage_1", Symptom: "burning fever", HPLossPerTurn: 1, FatigueRate: 1.5},
				{Name: "delirium", EffectID: "fever_stage_2", Symptom: "delirious shaking", HPLossPerTurn: 2},
			},
			Treatments: []disease.Treatment{
				{ID: "herbal_poultice", Name: "Herbal Poultice", CureChance: 0.4, StageReduction: 1},
				{ID: "bitter_tonic", Name: "Bitter Tonic", CureChance: 0.0, StageReduction: 1},
			},
		},
		{
			ID:                 "marsh_rot",
			Name:               "Marsh Rot",
			BaseChance:         0.15,
			IncubationTurns:    0,
			BaseRecoveryChance: 0.1,
			Stages: []disease.Stage{
				{Name: "itch", DurationTurns: 8, EffectID: "sprain"},
			},
		},
	}
}

// TestWeatherDefinitions returns a representative weather catalog
func TestWeatherDefinitions() []*weather.Definition {
	return []*weather.Definition{
		{
			ID:              "dust_storm",
			Name:            "Dust Storm",
			BaseWeight:      30,
			BlockedTerrains: []string{"swamp"},
			DurationMin:     3,
			DurationMax:     6,
			DamagePerTurn:   1,
			EarlyEndChance:  0.1,
			EffectID:        "grit_cloud",
			TravelSpeed:     0.5,
			Visibility:      0.3,
			ThirstRate:      1.5,
		},
		{
			ID:              "drizzle",
			Name:            "Drizzle",
			BaseWeight:      50,
			TimeRestriction: []string{"morning", "dusk"},
			DurationMin:     4,
			DurationMax:     8,
			EncounterRate:   0.8,
		},
		{
			ID:               "heat_haze",
			Name:             "Heat Haze",
			BaseWeight:       20,
			AllowedTerrains:  []string{"desert", "badlands"},
			TerrainModifiers: map[string]float64{"desert": 2.0},
			DurationMin:      2,
			DurationMax:      4,
			TemperatureOffset: 10,
			FatigueRate:      1.3,
		},
	}
}

// TestHazardDefinitions returns a representative hazard catalog
func TestHazardDefinitions() []*hazard.Definition {
	return []*hazard.Definition{
		{
			ID:         "rockslide",
			Name:       "Rockslide",
			Terrains:   []string{"mountains"},
			BaseChance: 0.35,
			Save:       &hazard.StatSave{Stat: "fortitude", DifficultyClass: 12},
			OnSuccess:  hazard.EffectBundle{Damage: 1},
			OnFailure:  hazard.EffectBundle{Damage: 5, EffectIDs: []string{"sprain"}, TurnCost: 2},
		},
		{
			ID:         "quicksand",
			Name:       "Quicksand",
			Terrains:   []string{"swamp"},
			BaseChance: 0.25,
			Save:       &hazard.StatSave{Stat: "strength", DifficultyClass: 10},
			OnFailure:  hazard.EffectBundle{Damage: 2, TurnCost: 3},
		},
		{
			ID:         "night_chill",
			Name:       "Night Chill",
			TimesOfDay: []string{"night"},
			BaseChance: 0.5,
			OnFailure:  hazard.EffectBundle{Damage: 1},
		},
	}
}

// TestCatalog builds a validated catalog from the fixture definitions
func TestCatalog(t *testing.T) *rulebook.Catalog {
	t.Helper()

	cat, err := rulebook.Build(
		TestEffectDefinitions(),
		TestDiseaseDefinitions(),
		TestWeatherDefinitions(),
		TestHazardDefinitions(),
		nil,
	)
	require.NoError(t, err)
	return cat
}
