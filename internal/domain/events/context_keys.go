package events

// Context keys used across simulation events
const (
	ContextCharacterID = "character_id"
	ContextEffectID    = "effect_id"
	ContextSource      = "source"
	ContextStacks      = "stacks"
	ContextDiseaseID   = "disease_id"
	ContextStage       = "stage"
	ContextSymptom     = "symptom"
	ContextWeatherID   = "weather_id"
	ContextDuration    = "duration"
	ContextHazardID    = "hazard_id"
	ContextTriggered   = "triggered"
	ContextSaveSuccess = "save_success"
	ContextDamage      = "damage"
	ContextTurnCost    = "turn_cost"
	ContextAction      = "action"
	ContextValue       = "value"
	ContextTurn        = "turn"
	ContextDay         = "day"
	ContextPeriod      = "period"
	ContextTerrain     = "terrain"
)
