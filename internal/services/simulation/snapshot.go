package simulation

import (
	apperrors "github.com/KirkDiggler/hexcrawl-survival/internal/errors"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/weather"
)

// SchemaVersion is embedded in every snapshot so future catalog
// changes can migrate old saves.
const SchemaVersion = 1

// Snapshot is the full persisted state of a session: exactly the
// mutable state of the three stateful components. Hazards keep no
// state between checks.
type Snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	Effects       *effect.Snapshot  `json:"effects"`
	Diseases      *disease.Snapshot `json:"diseases"`
	Weather       *weather.Snapshot `json:"weather"`
}

func (e *engine) ToSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		Effects:       e.effects.ToSnapshot(),
		Diseases:      e.diseases.ToSnapshot(),
		Weather:       e.weather.ToSnapshot(),
	}
}

func (e *engine) RestoreSnapshot(snap *Snapshot) error {
	if snap == nil {
		return apperrors.InvalidArgument("snapshot cannot be nil")
	}
	if snap.SchemaVersion > SchemaVersion {
		return apperrors.Validationf("snapshot schema version %d is newer than supported %d",
			snap.SchemaVersion, SchemaVersion)
	}

	// Effects load first; the disease restore then reconciles any
	// stage effect its counterpart snapshot is missing.
	e.effects.RestoreSnapshot(snap.Effects)
	e.diseases.RestoreSnapshot(snap.Diseases)
	e.weather.RestoreSnapshot(snap.Weather)
	return nil
}
