package disease

import (
	diseasedomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
)

// CharacterSnapshot holds one character's disease states and immunities
type CharacterSnapshot struct {
	Diseases   []*diseasedomain.State    `json:"diseases"`
	Immunities []*diseasedomain.Immunity `json:"immunities,omitempty"`
}

// Snapshot is the disease service's mutable state
type Snapshot struct {
	Characters map[string]*CharacterSnapshot `json:"characters"`
}

func (s *service) ToSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{Characters: make(map[string]*CharacterSnapshot, len(s.characters))}
	for characterID, st := range s.characters {
		cs := &CharacterSnapshot{}
		for _, id := range st.order {
			if state := st.byID[id]; state != nil {
				copied := *state
				cs.Diseases = append(cs.Diseases, &copied)
			}
		}
		for _, immunity := range st.immunities {
			copied := *immunity
			cs.Immunities = append(cs.Immunities, &copied)
		}
		snap.Characters[characterID] = cs
	}
	return snap
}

func (s *service) RestoreSnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}

	type reconcile struct {
		characterID string
		effectID    string
		diseaseID   string
	}
	var pending []reconcile

	s.mu.Lock()
	s.characters = make(map[string]*characterState, len(snap.Characters))
	for characterID, cs := range snap.Characters {
		st := &characterState{
			byID:       make(map[string]*diseasedomain.State),
			immunities: make(map[string]*diseasedomain.Immunity),
		}
		for _, saved := range cs.Diseases {
			def, known := s.catalog.Disease(saved.DiseaseID)
			if !known {
				continue
			}
			copied := *saved
			// Clamp against the definition in case the catalog shrank
			// between save and load
			if copied.Stage >= len(def.Stages) {
				copied.Stage = len(def.Stages) - 1
			}
			if copied.Stage < 0 {
				copied.Stage = 0
			}
			st.byID[copied.DiseaseID] = &copied
			st.order = append(st.order, copied.DiseaseID)

			// The effect engine snapshot loads independently; active
			// stage effects are reconciled after ours is in place.
			if !copied.Incubating {
				if effectID := def.Stages[copied.Stage].EffectID; effectID != "" {
					pending = append(pending, reconcile{
						characterID: characterID,
						effectID:    effectID,
						diseaseID:   copied.DiseaseID,
					})
				}
			}
		}
		for _, immunity := range cs.Immunities {
			copied := *immunity
			st.immunities[copied.DiseaseID] = &copied
		}
		s.characters[characterID] = st
	}
	s.mu.Unlock()

	for _, p := range pending {
		if !s.effects.Has(p.characterID, p.effectID) {
			s.effects.Apply(p.characterID, p.effectID, sourceTag(p.diseaseID))
		}
	}
}
