package rulebook

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
	apperrors "github.com/KirkDiggler/hexcrawl-survival/internal/errors"
)

// Catalog file names inside the catalog directory
const (
	effectsFile  = "effects.json"
	diseasesFile = "diseases.json"
	weatherFile  = "weather.json"
	hazardsFile  = "hazards.json"
)

// LoaderConfig holds configuration for catalog loading
type LoaderConfig struct {
	Dir      string
	Registry *TargetRegistry // nil uses DefaultTargetRegistry
}

// Load reads and validates the four rule catalogs from disk. Unlike
// runtime rule processing, loading is strict: a broken catalog fails
// the load instead of degrading, so authoring errors surface before a
// session starts.
func Load(cfg *LoaderConfig) (*Catalog, error) {
	if cfg == nil || cfg.Dir == "" {
		return nil, apperrors.InvalidArgument("catalog directory is required")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = DefaultTargetRegistry()
	}

	var (
		effectDefs  []*effects.Definition
		diseaseDefs []*disease.Definition
		weatherDefs []*weather.Definition
		hazardDefs  []*hazard.Definition
	)

	var g errgroup.Group
	g.Go(func() error { return readCatalogFile(cfg.Dir, effectsFile, &effectDefs) })
	g.Go(func() error { return readCatalogFile(cfg.Dir, diseasesFile, &diseaseDefs) })
	g.Go(func() error { return readCatalogFile(cfg.Dir, weatherFile, &weatherDefs) })
	g.Go(func() error { return readCatalogFile(cfg.Dir, hazardsFile, &hazardDefs) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Build(effectDefs, diseaseDefs, weatherDefs, hazardDefs, registry)
}

// Build validates in-memory definitions into a Catalog. Exposed
// separately so tests and embedded rule sets skip the filesystem.
func Build(
	effectDefs []*effects.Definition,
	diseaseDefs []*disease.Definition,
	weatherDefs []*weather.Definition,
	hazardDefs []*hazard.Definition,
	registry *TargetRegistry,
) (*Catalog, error) {
	if registry == nil {
		registry = DefaultTargetRegistry()
	}

	cat := &Catalog{
		effects:    make(map[string]*effects.Definition, len(effectDefs)),
		diseaseIdx: make(map[string]*disease.Definition, len(diseaseDefs)),
		diseases:   diseaseDefs,
		weatherIdx: make(map[string]*weather.Definition, len(weatherDefs)),
		weather:    weatherDefs,
		hazardIdx:  make(map[string]*hazard.Definition, len(hazardDefs)),
		hazards:    hazardDefs,
	}

	for _, def := range effectDefs {
		if def.ID == "" {
			return nil, apperrors.Validation("effect definition missing id")
		}
		if _, exists := cat.effects[def.ID]; exists {
			return nil, apperrors.Validationf("duplicate effect id %q", def.ID)
		}
		if err := validateEffect(def, registry); err != nil {
			return nil, err
		}
		cat.effects[def.ID] = def
	}

	// Cross-references between effects are checked after the full index exists
	for _, def := range effectDefs {
		if err := validateEffectRefs(def, cat); err != nil {
			return nil, err
		}
	}

	for _, def := range diseaseDefs {
		if err := validateDisease(def, cat); err != nil {
			return nil, err
		}
		cat.diseaseIdx[def.ID] = def
	}

	for _, def := range weatherDefs {
		if err := validateWeather(def, cat); err != nil {
			return nil, err
		}
		cat.weatherIdx[def.ID] = def
	}

	for _, def := range hazardDefs {
		if err := validateHazard(def, cat, registry); err != nil {
			return nil, err
		}
		cat.hazardIdx[def.ID] = def
	}

	return cat, nil
}

func readCatalogFile(dir, name string, out any) error {
	data, err := os.ReadFile(filepath.Clean(filepath.Join(dir, name)))
	if err != nil {
		return apperrors.Wrapf(err, "failed to read catalog %s", name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeValidation, "failed to parse catalog "+name)
	}
	return nil
}

func validateEffect(def *effects.Definition, registry *TargetRegistry) error {
	switch def.Duration {
	case effects.DurationPermanent, effects.DurationInstant:
	case effects.DurationTurns, effects.DurationDays:
		if def.DurationValue <= 0 {
			return apperrors.Validationf("effect %q: %s duration needs a positive duration_value", def.ID, def.Duration)
		}
	default:
		return apperrors.Validationf("effect %q: unknown duration type %q", def.ID, def.Duration)
	}

	switch def.Stacking {
	case effects.StackingNone, effects.StackingReplace, effects.StackingRefresh:
	case effects.StackingStack:
		if def.MaxStacks <= 0 {
			return apperrors.Validationf("effect %q: stack mode needs a positive max_stacks", def.ID)
		}
	default:
		return apperrors.Validationf("effect %q: unknown stacking mode %q", def.ID, def.Stacking)
	}

	for _, mod := range def.Modifiers {
		if mod.Kind != effects.KindFlat && mod.Kind != effects.KindPercentage {
			return apperrors.Validationf("effect %q: unknown modifier kind %q", def.ID, mod.Kind)
		}
		if !registry.Knows(mod.Target, mod.Name) {
			return apperrors.Validationf("effect %q: unknown %s modifier name %q", def.ID, mod.Target, mod.Name)
		}
	}

	for _, trig := range def.Triggers {
		if trig.Probability < 0 || trig.Probability > 1 {
			return apperrors.Validationf("effect %q: trigger probability %v out of [0,1]", def.ID, trig.Probability)
		}
	}

	return nil
}

func validateEffectRefs(def *effects.Definition, cat *Catalog) error {
	refs := make([]string, 0, len(def.Conditions.Requires)+len(def.Conditions.Blocks)+len(def.Conditions.Immunities))
	refs = append(refs, def.Conditions.Requires...)
	refs = append(refs, def.Conditions.Blocks...)
	refs = append(refs, def.Conditions.Immunities...)
	for _, ref := range refs {
		if _, ok := cat.effects[ref]; !ok {
			return apperrors.Validationf("effect %q: condition references unknown effect %q", def.ID, ref)
		}
	}

	for _, trig := range def.Triggers {
		switch trig.Action {
		case effects.ActionApplyEffect, effects.ActionRemoveEffect:
			if _, ok := cat.effects[trig.Target]; !ok {
				return apperrors.Validationf("effect %q: trigger %s references unknown effect %q", def.ID, trig.Action, trig.Target)
			}
		}
	}

	return nil
}

func validateDisease(def *disease.Definition, cat *Catalog) error {
	if def.ID == "" {
		return apperrors.Validation("disease definition missing id")
	}
	if _, exists := cat.diseaseIdx[def.ID]; exists {
		return apperrors.Validationf("duplicate disease id %q", def.ID)
	}
	if len(def.Stages) == 0 {
		return apperrors.Validationf("disease %q has no stages", def.ID)
	}
	if def.BaseChance < 0 || def.BaseChance > 1 {
		return apperrors.Validationf("disease %q: base_chance %v out of [0,1]", def.ID, def.BaseChance)
	}

	for i, stage := range def.Stages {
		if stage.DurationTurns <= 0 && i < len(def.Stages)-1 {
			return apperrors.Validationf("disease %q: stage %d needs a positive duration_turns", def.ID, i)
		}
		if stage.EffectID != "" {
			if _, ok := cat.effects[stage.EffectID]; !ok {
				return apperrors.Validationf("disease %q: stage %d references unknown effect %q", def.ID, i, stage.EffectID)
			}
		}
	}

	seen := make(map[string]struct{}, len(def.Treatments))
	for _, tr := range def.Treatments {
		if tr.ID == "" {
			return apperrors.Validationf("disease %q: treatment missing id", def.ID)
		}
		if _, dup := seen[tr.ID]; dup {
			return apperrors.Validationf("disease %q: duplicate treatment id %q", def.ID, tr.ID)
		}
		seen[tr.ID] = struct{}{}
		if tr.CureChance < 0 || tr.CureChance > 1 {
			return apperrors.Validationf("disease %q: treatment %q cure_chance out of [0,1]", def.ID, tr.ID)
		}
	}

	return nil
}

func validateWeather(def *weather.Definition, cat *Catalog) error {
	if def.ID == "" {
		return apperrors.Validation("weather definition missing id")
	}
	if def.ID == weather.TypeClear {
		return apperrors.Validation("clear is the implicit rest state and cannot be defined in the catalog")
	}
	if _, exists := cat.weatherIdx[def.ID]; exists {
		return apperrors.Validationf("duplicate weather id %q", def.ID)
	}
	if def.BaseWeight < 0 {
		return apperrors.Validationf("weather %q: base_weight must not be negative", def.ID)
	}
	if def.DurationMin <= 0 || def.DurationMax < def.DurationMin {
		return apperrors.Validationf("weather %q: duration range [%d,%d] is invalid", def.ID, def.DurationMin, def.DurationMax)
	}
	if def.EffectID != "" {
		if _, ok := cat.effects[def.EffectID]; !ok {
			return apperrors.Validationf("weather %q references unknown effect %q", def.ID, def.EffectID)
		}
	}
	return nil
}

func validateHazard(def *hazard.Definition, cat *Catalog, registry *TargetRegistry) error {
	if def.ID == "" {
		return apperrors.Validation("hazard definition missing id")
	}
	if _, exists := cat.hazardIdx[def.ID]; exists {
		return apperrors.Validationf("duplicate hazard id %q", def.ID)
	}
	if def.BaseChance < 0 || def.BaseChance > 1 {
		return apperrors.Validationf("hazard %q: base_chance %v out of [0,1]", def.ID, def.BaseChance)
	}
	if def.Save != nil && !registry.Knows(effects.TargetStat, def.Save.Stat) {
		return apperrors.Validationf("hazard %q: unknown save stat %q", def.ID, def.Save.Stat)
	}

	for _, bundle := range []hazard.EffectBundle{def.OnSuccess, def.OnFailure} {
		for _, effectID := range bundle.EffectIDs {
			if _, ok := cat.effects[effectID]; !ok {
				return apperrors.Validationf("hazard %q references unknown effect %q", def.ID, effectID)
			}
		}
	}

	return nil
}
