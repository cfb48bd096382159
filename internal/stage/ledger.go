// Package stage tracks cosmetic progression through currency-gated stages.
package stage

import (
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

// Ledger holds the current stage. It only ever moves to stages with a
// higher threshold, so spending currency never costs the player a stage.
type Ledger struct {
	stages  *gamedata.StageRegistry
	current *gamedata.StageDef
}

// NewLedger creates a ledger positioned at the lowest stage.
func NewLedger(stages *gamedata.StageRegistry) *Ledger {
	return &Ledger{
		stages:  stages,
		current: stages.First(),
	}
}

// Current returns the current stage.
func (l *Ledger) Current() gamedata.StageDef {
	return *l.current
}

// Stages returns every stage ordered by threshold.
func (l *Ledger) Stages() []gamedata.StageDef {
	return l.stages.All()
}

// Check advances to the highest stage whose threshold balance reaches, if
// that threshold is above the current one. Several stages may be skipped in
// one call. It returns the current stage and whether it changed.
func (l *Ledger) Check(balance currency.Amount) (gamedata.StageDef, bool) {
	all := l.stages.All()

	var best *gamedata.StageDef
	for i := range all {
		if !currency.IsAffordable(balance, all[i].UnlockAt) {
			// Ordered by threshold; nothing later qualifies either
			break
		}
		if best == nil || all[i].UnlockAt.Cmp(best.UnlockAt) > 0 {
			best = &all[i]
		}
	}

	if best == nil || best.UnlockAt.Cmp(l.current.UnlockAt) <= 0 {
		return *l.current, false
	}
	l.current = best
	return *l.current, true
}

// Restore positions the ledger at a previously saved stage. Unknown IDs
// leave the ledger unchanged and return false.
func (l *Ledger) Restore(id string) bool {
	s := l.stages.GetByID(id)
	if s == nil {
		return false
	}
	l.current = s
	return true
}
