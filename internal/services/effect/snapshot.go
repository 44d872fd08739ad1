package effect

import (
	"log"

	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
)

// Snapshot is the effect engine's mutable state: every active instance
// per character, in application order.
type Snapshot struct {
	Characters map[string][]*effects.ActiveEffect `json:"characters"`
}

func (s *service) ToSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{Characters: make(map[string][]*effects.ActiveEffect, len(s.tables))}
	for characterID, tbl := range s.tables {
		instances := make([]*effects.ActiveEffect, 0, len(tbl.order))
		for _, id := range tbl.order {
			if instance := tbl.byID[id]; instance != nil {
				copied := *instance
				instances = append(instances, &copied)
			}
		}
		snap.Characters[characterID] = instances
	}
	return snap
}

func (s *service) RestoreSnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Unwind ledger modifiers for whatever was active before
	if s.ledger != nil {
		for _, tbl := range s.tables {
			for _, id := range tbl.order {
				if instance := tbl.byID[id]; instance != nil {
					s.ledger.RemoveModifiersBySource(ledgerTag(instance))
				}
			}
		}
	}

	s.tables = make(map[string]*characterTable, len(snap.Characters))
	for characterID, instances := range snap.Characters {
		tbl := &characterTable{byID: make(map[string]*effects.ActiveEffect, len(instances))}
		for _, saved := range instances {
			def, known := s.catalog.Effect(saved.EffectID)
			if !known {
				// A save can reference catalog entries that no longer
				// exist; dropping them keeps the session playable.
				log.Printf("effect engine: dropping saved instance of unknown effect %q", saved.EffectID)
				continue
			}
			copied := *saved
			if copied.Stacks < 1 {
				copied.Stacks = 1
			}
			tbl.byID[copied.EffectID] = &copied
			tbl.order = append(tbl.order, copied.EffectID)
			s.pushModifiers(def, &copied)
		}
		s.tables[characterID] = tbl
	}
}
