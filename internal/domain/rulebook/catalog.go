package rulebook

import (
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
)

// Catalog is the read-only rule data for a session. Built once by the
// loader; slices preserve file order so weighted and uniform selection
// iterate deterministically.
type Catalog struct {
	effects    map[string]*effects.Definition
	diseaseIdx map[string]*disease.Definition
	diseases   []*disease.Definition
	weatherIdx map[string]*weather.Definition
	weather    []*weather.Definition
	hazardIdx  map[string]*hazard.Definition
	hazards    []*hazard.Definition
}

// Effect looks up an effect definition by id
func (c *Catalog) Effect(id string) (*effects.Definition, bool) {
	def, ok := c.effects[id]
	return def, ok
}

// Disease looks up a disease definition by id
func (c *Catalog) Disease(id string) (*disease.Definition, bool) {
	def, ok := c.diseaseIdx[id]
	return def, ok
}

// Diseases returns all disease definitions in file order
func (c *Catalog) Diseases() []*disease.Definition {
	return c.diseases
}

// Weather looks up a weather definition by id
func (c *Catalog) Weather(id string) (*weather.Definition, bool) {
	def, ok := c.weatherIdx[id]
	return def, ok
}

// WeatherDefinitions returns all weather definitions in file order
func (c *Catalog) WeatherDefinitions() []*weather.Definition {
	return c.weather
}

// Hazard looks up a hazard definition by id
func (c *Catalog) Hazard(id string) (*hazard.Definition, bool) {
	def, ok := c.hazardIdx[id]
	return def, ok
}

// Hazards returns all hazard definitions in file order
func (c *Catalog) Hazards() []*hazard.Definition {
	return c.hazards
}
