package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/hexcrawl-survival/internal/config"
	"github.com/KirkDiggler/hexcrawl-survival/internal/dice"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	"github.com/KirkDiggler/hexcrawl-survival/internal/interfaces"
	"github.com/KirkDiggler/hexcrawl-survival/internal/repositories/snapshots"
	diseasesvc "github.com/KirkDiggler/hexcrawl-survival/internal/services/disease"
	effectsvc "github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
	hazardsvc "github.com/KirkDiggler/hexcrawl-survival/internal/services/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/simulation"
	weathersvc "github.com/KirkDiggler/hexcrawl-survival/internal/services/weather"
)

const characterID = "wanderer"

var periods = []string{"night", "morning", "midday", "dusk"}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Running session %q with seed %d", cfg.Simulation.SessionID, seed)

	catalog, err := rulebook.Load(&rulebook.LoaderConfig{Dir: cfg.Simulation.CatalogDir})
	if err != nil {
		log.Fatalf("Failed to load catalogs: %v", err)
	}

	roller := dice.NewSeededRoller(seed)
	eventBus := events.NewEventBus()
	subscribeLogger(eventBus)

	ledger := newDemoLedger(roller)
	survival := newDemoSurvival()
	terrain := newDemoTerrain()

	effects := effectsvc.NewService(&effectsvc.ServiceConfig{
		Catalog:  catalog,
		Roller:   roller,
		EventBus: eventBus,
		Ledger:   ledger,
		Survival: survival,
	})
	diseases := diseasesvc.NewService(&diseasesvc.ServiceConfig{
		Catalog:  catalog,
		Roller:   roller,
		EventBus: eventBus,
		Effects:  effects,
		Ledger:   ledger,
		Survival: survival,
	})
	weather := weathersvc.NewService(&weathersvc.ServiceConfig{
		Catalog:  catalog,
		Roller:   roller,
		EventBus: eventBus,
		Survival: survival,
		Effects:  effects,
	})
	hazards := hazardsvc.NewService(&hazardsvc.ServiceConfig{
		Catalog:  catalog,
		Roller:   roller,
		EventBus: eventBus,
		Weather:  weather,
		Ledger:   ledger,
		Survival: survival,
		Effects:  effects,
	})

	engine := simulation.NewEngine(&simulation.EngineConfig{
		CharacterID: characterID,
		Effects:     effects,
		Diseases:    diseases,
		Weather:     weather,
		Hazards:     hazards,
		Terrain:     terrain,
		EventBus:    eventBus,
	})

	day := 0
	for turn := 1; turn <= cfg.Simulation.Turns; turn++ {
		if (turn-1)%cfg.Simulation.TurnsPerDay == 0 {
			day++
			engine.OnDayBegan(day)
		}
		period := periods[((turn-1)/(cfg.Simulation.TurnsPerDay/len(periods)))%len(periods)]
		terrain.period = period
		engine.OnTurnBegan(turn, day, period)

		// Cross a hex boundary every third turn
		if turn%3 == 0 {
			terrain.advance()
			if result := engine.OnMove(); result != nil && result.Triggered {
				log.Printf("  hazard %s: save=%v damage=%d", result.HazardID, result.SaveSuccess, result.Damage)
			}
		}

		// Ambient disease exposure once a day at dusk
		if period == "dusk" && turn%cfg.Simulation.TurnsPerDay == 0 {
			diseases.TryContract(characterID, "festering_fever", -1, "exposure")
		}
	}

	log.Printf("Simulation done: hp=%d, weather=%s", survival.hp, weather.Current().TypeID)

	saveSnapshot(cfg, engine)
}

func saveSnapshot(cfg *config.Config, engine simulation.Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var repo snapshots.Repository
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable (%v), keeping snapshot in memory", err)
		repo = snapshots.NewInMemoryRepository()
	} else {
		repo = snapshots.NewRedisRepository(&snapshots.RedisRepoConfig{Client: client})
		defer func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close Redis client: %v", err)
			}
		}()
	}

	if err := repo.Save(ctx, cfg.Simulation.SessionID, engine.ToSnapshot()); err != nil {
		log.Printf("Failed to save snapshot: %v", err)
		return
	}
	log.Printf("Saved snapshot for session %q", cfg.Simulation.SessionID)
}

// eventLogger prints state transitions as they happen
type eventLogger struct{}

func (l *eventLogger) HandleEvent(event *events.GameEvent) error {
	switch event.Type {
	case events.OnTurnBegan, events.OnDayBegan:
		return nil
	}
	log.Printf("  [%s] %v", event.Type, event.Context)
	return nil
}

func (l *eventLogger) Priority() int { return 100 }

func subscribeLogger(bus *events.EventBus) {
	logger := &eventLogger{}
	for _, t := range []events.EventType{
		events.OnEffectApplied, events.OnEffectRemoved, events.OnEffectExpired,
		events.OnCustomTrigger,
		events.OnDiseaseContracted, events.OnDiseaseStaged, events.OnDiseaseSymptom,
		events.OnDiseaseCured, events.OnImmunityExpired,
		events.OnWeatherStarted, events.OnWeatherEnded,
		events.OnHazardTriggered,
	} {
		bus.Subscribe(t, logger)
	}
}

// demoLedger is a minimal attribute ledger for the demo runner; the
// real game supplies its own.
type demoLedger struct {
	roller dice.Roller
	base   map[string]float64
	mods   map[string][]ledgerMod
}

type ledgerMod struct {
	stat  string
	value float64
}

func newDemoLedger(roller dice.Roller) *demoLedger {
	return &demoLedger{
		roller: roller,
		base: map[string]float64{
			"strength": 12, "agility": 11, "fortitude": 13,
			"intellect": 10, "willpower": 10, "charisma": 9,
		},
		mods: make(map[string][]ledgerMod),
	}
}

func (l *demoLedger) AddModifier(statName string, value float64, sourceTag string) {
	l.mods[sourceTag] = append(l.mods[sourceTag], ledgerMod{stat: statName, value: value})
}

func (l *demoLedger) RemoveModifiersBySource(sourceTag string) {
	delete(l.mods, sourceTag)
}

func (l *demoLedger) effective(statName string) int {
	total := l.base[statName]
	for _, mods := range l.mods {
		for _, m := range mods {
			if m.stat == statName {
				total += m.value
			}
		}
	}
	return int(total)
}

func (l *demoLedger) RollCheck(statName string, difficultyClass, bonus int) (*interfaces.CheckResult, error) {
	stat := l.effective(statName)
	roll, err := l.roller.Roll(1, 20, (stat-10)/2+bonus)
	if err != nil {
		return nil, err
	}
	return &interfaces.CheckResult{
		Success: roll.Total >= difficultyClass,
		Margin:  roll.Total - difficultyClass,
	}, nil
}

func (l *demoLedger) HungerStage(string) string  { return "well_fed" }
func (l *demoLedger) ThirstStage(string) string  { return "hydrated" }
func (l *demoLedger) FatigueStage(string) string { return "rested" }

// demoSurvival tracks hit points for the demo runner
type demoSurvival struct {
	hp int
}

func newDemoSurvival() *demoSurvival {
	return &demoSurvival{hp: 30}
}

func (s *demoSurvival) ModifyHealth(_ string, delta int, sourceTag string) {
	s.hp += delta
	if delta < 0 {
		log.Printf("  %d damage from %s (hp %d)", -delta, sourceTag, s.hp)
	}
}

func (s *demoSurvival) IsResting(string) bool { return false }

// demoTerrain walks a fixed terrain loop
type demoTerrain struct {
	terrains []string
	index    int
	period   string
}

func newDemoTerrain() *demoTerrain {
	return &demoTerrain{
		terrains: []string{"plains", "mountains", "desert", "swamp"},
		period:   "night",
	}
}

func (t *demoTerrain) advance() {
	t.index = (t.index + 1) % len(t.terrains)
}

func (t *demoTerrain) CurrentTerrain() string { return t.terrains[t.index] }
func (t *demoTerrain) CurrentPeriod() string  { return t.period }
