// Package engine composes the economy into the single object a front end
// drives: clicks, idle and production ticks, purchases, upgrades, managers,
// collection and stage progression.
//
// The engine performs no locking. Callers must serialise every call.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/samdwyer/profitpilgrim/internal/business"
	"github.com/samdwyer/profitpilgrim/internal/clicker"
	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
	"github.com/samdwyer/profitpilgrim/internal/stage"
)

// Options configures a new engine.
type Options struct {
	Catalog          *gamedata.Catalog
	Clock            clock.Clock
	StartingCurrency currency.Amount
	ClickValue       int64
	IdleRate         int64
	Logger           *slog.Logger
}

func (o *Options) validate() error {
	if o.Catalog == nil {
		return errors.New("engine: catalog is required")
	}
	if o.ClickValue < 1 {
		return fmt.Errorf("engine: click value %d must be at least 1", o.ClickValue)
	}
	if o.IdleRate < 0 {
		return fmt.Errorf("engine: idle rate %d must not be negative", o.IdleRate)
	}
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return nil
}

// Engine owns all mutable game state.
type Engine struct {
	catalog *gamedata.Catalog
	clk     clock.Clock
	log     *slog.Logger

	currency      currency.Amount
	clicker       clicker.State
	businesses    map[string]*business.State
	upgradeLevels map[string]int
	stages        *stage.Ledger

	// Last TickProduction instant; repeated ticks at or before it do nothing.
	lastProductionTick int64
}

// New creates an engine with every business locked, the idle clock and all
// production timers starting now.
func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	now := opts.Clock.Now()

	e := &Engine{
		catalog:            opts.Catalog,
		clk:                opts.Clock,
		log:                opts.Logger,
		currency:           opts.StartingCurrency,
		clicker:            clicker.NewState(opts.ClickValue, opts.IdleRate, now),
		businesses:         make(map[string]*business.State, opts.Catalog.Businesses.Count()),
		upgradeLevels:      make(map[string]int, opts.Catalog.Upgrades.Count()),
		stages:             stage.NewLedger(opts.Catalog.Stages),
		lastProductionTick: math.MinInt64,
	}
	for _, def := range opts.Catalog.Businesses.All() {
		st := business.NewState(now)
		e.businesses[def.ID] = &st
	}
	for _, def := range opts.Catalog.Upgrades.All() {
		e.upgradeLevels[def.ID] = 0
	}
	return e, nil
}

// mustBusiness resolves a business ID. The catalog is fixed, so an unknown ID
// is a bug in the caller.
func (e *Engine) mustBusiness(id string) (*gamedata.BusinessDef, *business.State) {
	def := e.catalog.Businesses.GetByID(id)
	if def == nil {
		panic(fmt.Sprintf("engine: unknown business %q", id))
	}
	return def, e.businesses[id]
}

func (e *Engine) mustUpgrade(id string) *gamedata.UpgradeDef {
	def := e.catalog.Upgrades.GetByID(id)
	if def == nil {
		panic(fmt.Sprintf("engine: unknown upgrade %q", id))
	}
	return def
}

// =============================================================================
// Clicker
// =============================================================================

// Click credits the current click value.
func (e *Engine) Click() {
	e.currency = clicker.Click(&e.clicker, e.currency)
}

// TickIdle credits idle income for the whole seconds elapsed since the last
// idle tick and returns the amount credited.
func (e *Engine) TickIdle(now time.Time) currency.Amount {
	var earned currency.Amount
	e.currency, earned = clicker.TickIdle(&e.clicker, e.currency, now)
	return earned
}

// PurchaseUpgrade buys the next level of an upgrade. It returns false when
// the player cannot afford it. Unknown IDs panic.
func (e *Engine) PurchaseUpgrade(id string) bool {
	def := e.mustUpgrade(id)
	level := e.upgradeLevels[id]

	var ok bool
	e.currency, ok = clicker.PurchaseUpgrade(def, &level, &e.clicker, e.currency)
	e.upgradeLevels[id] = level
	return ok
}

// =============================================================================
// Businesses
// =============================================================================

// PurchaseBusiness buys the next level of a business (the first purchase
// unlocks it) and restarts its production cycle. It returns false when the
// player cannot afford it. Unknown IDs panic.
func (e *Engine) PurchaseBusiness(id string) bool {
	def, st := e.mustBusiness(id)
	var outcome business.Outcome
	e.currency, outcome = business.Purchase(def, st, e.currency, e.clk.Now())
	return outcome == business.OK
}

// UpgradeBusinessLevel levels an owned business without restarting its cycle.
func (e *Engine) UpgradeBusinessLevel(id string) bool {
	def, st := e.mustBusiness(id)
	var outcome business.Outcome
	e.currency, outcome = business.Upgrade(def, st, e.currency)
	return outcome == business.OK
}

// CollectProfit credits one completed cycle. It returns false if the business
// is locked or its cycle has not completed.
func (e *Engine) CollectProfit(id string) bool {
	def, st := e.mustBusiness(id)
	var outcome business.Outcome
	e.currency, outcome = business.Collect(def, st, e.currency, e.clk.Now())
	return outcome == business.OK
}

// HireManager automates collection of an owned business.
func (e *Engine) HireManager(id string) bool {
	def, st := e.mustBusiness(id)
	var outcome business.Outcome
	e.currency, outcome = business.HireManager(def, st, e.currency)
	if outcome == business.OK {
		e.log.Debug("manager hired", "business", id, "manager", def.ManagerName)
	}
	return outcome == business.OK
}

// TickProduction refreshes every business timer and lets managers collect
// completed cycles, one cycle per business per call. It returns the total
// amount auto-collected. A call at or before the previous tick is a no-op.
func (e *Engine) TickProduction(now time.Time) currency.Amount {
	nowMS := clock.Millis(now)
	if nowMS <= e.lastProductionTick {
		return currency.Zero()
	}
	e.lastProductionTick = nowMS

	before := e.currency
	defs := e.catalog.Businesses.All()
	for i := range defs {
		e.currency, _ = business.Tick(&defs[i], e.businesses[defs[i].ID], e.currency, now)
	}

	earned, _ := e.currency.Sub(before)
	return earned
}

// =============================================================================
// Stages
// =============================================================================

// CheckStageProgress advances to the highest stage the current balance
// qualifies for. Stages never regress.
func (e *Engine) CheckStageProgress() (gamedata.StageDef, bool) {
	s, advanced := e.stages.Check(e.currency)
	if advanced {
		e.log.Debug("stage advanced", "stage", s.ID, "currency", e.currency.String())
	}
	return s, advanced
}

// =============================================================================
// Read surface
// =============================================================================

// Currency returns the current balance.
func (e *Engine) Currency() currency.Amount {
	return e.currency
}

// CurrentStage returns the current stage.
func (e *Engine) CurrentStage() gamedata.StageDef {
	return e.stages.Current()
}

// Catalog returns the definitions the engine was built from.
func (e *Engine) Catalog() *gamedata.Catalog {
	return e.catalog
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clk.Now()
}
