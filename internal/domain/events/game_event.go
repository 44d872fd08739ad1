package events

// GameEvent represents a simulation event published on the bus.
// The core only publishes; presentation layers subscribe.
type GameEvent struct {
	Type      EventType
	Context   map[string]interface{} // Flexible context data
	Cancelled bool                   // Listeners can stop later listeners
}

// NewGameEvent creates a new game event
func NewGameEvent(eventType EventType) *GameEvent {
	return &GameEvent{
		Type:    eventType,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context data to the event
func (e *GameEvent) WithContext(key string, value interface{}) *GameEvent {
	e.Context[key] = value
	return e
}

// Cancel marks the event as cancelled
func (e *GameEvent) Cancel() {
	e.Cancelled = true
}

// IsCancelled returns whether the event has been cancelled
func (e *GameEvent) IsCancelled() bool {
	return e.Cancelled
}

// GetContext retrieves a value from the context
func (e *GameEvent) GetContext(key string) (interface{}, bool) {
	val, exists := e.Context[key]
	return val, exists
}

// GetIntContext retrieves an int value from the context
func (e *GameEvent) GetIntContext(key string) (int, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	intVal, ok := val.(int)
	return intVal, ok
}

// GetBoolContext retrieves a bool value from the context
func (e *GameEvent) GetBoolContext(key string) (value, exists bool) {
	val, exists := e.Context[key]
	if !exists {
		return false, false
	}
	boolVal, ok := val.(bool)
	return boolVal, ok
}

// GetStringContext retrieves a string value from the context
func (e *GameEvent) GetStringContext(key string) (string, bool) {
	val, exists := e.Context[key]
	if !exists {
		return "", false
	}
	strVal, ok := val.(string)
	return strVal, ok
}

// GetFloatContext retrieves a float64 value from the context
func (e *GameEvent) GetFloatContext(key string) (float64, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	floatVal, ok := val.(float64)
	return floatVal, ok
}
