package events

// EventType represents the type of simulation event
type EventType int

const (
	// Effect Engine events
	OnEffectApplied EventType = iota
	OnEffectRemoved
	OnEffectExpired
	OnEffectTrigger
	OnCustomTrigger

	// Disease Progression events
	OnDiseaseContracted
	OnDiseaseStaged
	OnDiseaseSymptom
	OnDiseaseCured
	OnImmunityExpired

	// Weather Selection events
	OnWeatherStarted
	OnWeatherEnded

	// Hazard Resolution events
	OnHazardChecked
	OnHazardTriggered

	// Scheduler events
	OnTurnBegan
	OnDayBegan
)

// String returns the string representation of the event type
func (e EventType) String() string {
	names := [...]string{
		"OnEffectApplied",
		"OnEffectRemoved",
		"OnEffectExpired",
		"OnEffectTrigger",
		"OnCustomTrigger",
		"OnDiseaseContracted",
		"OnDiseaseStaged",
		"OnDiseaseSymptom",
		"OnDiseaseCured",
		"OnImmunityExpired",
		"OnWeatherStarted",
		"OnWeatherEnded",
		"OnHazardChecked",
		"OnHazardTriggered",
		"OnTurnBegan",
		"OnDayBegan",
	}

	if int(e) < len(names) {
		return names[e]
	}
	return "Unknown"
}
