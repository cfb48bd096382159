package engine

import (
	"time"

	"github.com/samdwyer/profitpilgrim/internal/business"
	"github.com/samdwyer/profitpilgrim/internal/clicker"
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

// BusinessView merges a business definition with its state and the values
// derived from them.
type BusinessView struct {
	gamedata.BusinessDef
	business.State

	PurchaseCost currency.Amount
	UpgradeCost  currency.Amount
	Profit       currency.Amount
	Progress     float64 // 0..1, display only

	CanPurchase    bool
	CanUpgrade     bool
	CanCollect     bool
	CanHireManager bool
}

// UpgradeView merges an upgrade definition with its level and next cost.
type UpgradeView struct {
	gamedata.UpgradeDef
	Level      int
	Cost       currency.Amount
	Affordable bool
}

// Snapshot is a copy of the engine state. Mutating it does not affect the engine.
type Snapshot struct {
	TakenAt      time.Time
	Currency     currency.Amount
	ClickValue   int64
	IdleRate     int64
	Businesses   []BusinessView // catalog order
	Upgrades     []UpgradeView  // catalog order
	Stages       []gamedata.StageDef
	CurrentStage gamedata.StageDef
}

// Business returns the view of the business with the given ID.
func (s *Snapshot) Business(id string) (BusinessView, bool) {
	for _, b := range s.Businesses {
		if b.ID == id {
			return b, true
		}
	}
	return BusinessView{}, false
}

// Upgrade returns the view of the upgrade with the given ID.
func (s *Snapshot) Upgrade(id string) (UpgradeView, bool) {
	for _, u := range s.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return UpgradeView{}, false
}

// Snapshot captures the full read surface at now.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		TakenAt:      now,
		Currency:     e.currency,
		ClickValue:   e.clicker.ClickValue,
		IdleRate:     e.clicker.IdleRate,
		CurrentStage: e.stages.Current(),
	}

	defs := e.catalog.Businesses.All()
	snap.Businesses = make([]BusinessView, 0, len(defs))
	for i := range defs {
		def := &defs[i]
		st := *e.businesses[def.ID]

		view := BusinessView{
			BusinessDef:  *def,
			State:        st,
			PurchaseCost: business.PurchaseCost(def, st.Level),
			UpgradeCost:  business.UpgradeCost(def, st.Level),
			Profit:       business.Profit(def, st.Level),
			Progress:     business.Progress(def, &st, now),
			CanCollect:   business.IsReady(def, &st, now),
		}
		view.CanPurchase = currency.IsAffordable(e.currency, view.PurchaseCost)
		view.CanUpgrade = st.Owned() && currency.IsAffordable(e.currency, view.UpgradeCost)
		view.CanHireManager = st.Owned() && !st.HasManager && currency.IsAffordable(e.currency, def.ManagerCost)
		snap.Businesses = append(snap.Businesses, view)
	}

	upgrades := e.catalog.Upgrades.All()
	snap.Upgrades = make([]UpgradeView, 0, len(upgrades))
	for i := range upgrades {
		level := e.upgradeLevels[upgrades[i].ID]
		cost := clicker.UpgradeCost(&upgrades[i], level)
		snap.Upgrades = append(snap.Upgrades, UpgradeView{
			UpgradeDef: upgrades[i],
			Level:      level,
			Cost:       cost,
			Affordable: currency.IsAffordable(e.currency, cost),
		})
	}

	stages := e.stages.Stages()
	snap.Stages = make([]gamedata.StageDef, len(stages))
	copy(snap.Stages, stages)

	return snap
}
