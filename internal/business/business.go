// Package business implements the per-business production state machine:
// cost and profit curves, purchase, upgrade, collection, managers and the
// production tick.
package business

import (
	"time"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

// Level costs grow by this factor, profits double per level.
const (
	costFactor   = 10
	profitFactor = 2
)

// State is the mutable runtime state of one business.
type State struct {
	Level              int   `json:"level"`            // 0 = locked
	LastProductionAt   int64 `json:"lastProductionAt"` // ms since epoch
	HasManager         bool  `json:"hasManager"`
	ReadyForCollection bool  `json:"readyForCollection"`
	RemainingMillis    int64 `json:"remainingMillis"` // cached for display
}

// NewState returns the state of a freshly initialised, unowned business.
func NewState(now time.Time) State {
	return State{LastProductionAt: clock.Millis(now)}
}

// Owned reports whether the business has been unlocked.
func (s *State) Owned() bool {
	return s.Level > 0
}

// Outcome describes why a command did or did not take effect.
// None of these are errors: refusals are a normal part of play.
type Outcome int

const (
	OK Outcome = iota
	InsufficientFunds
	NotReady
	NotOwned
	AlreadyManaged
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case InsufficientFunds:
		return "insufficient_funds"
	case NotReady:
		return "not_ready"
	case NotOwned:
		return "not_owned"
	case AlreadyManaged:
		return "already_managed"
	default:
		return "unknown"
	}
}

// =============================================================================
// Curves
// =============================================================================

// PurchaseCost is the price of going from level to level+1 through a purchase.
// At level 0 this is the unlock price, baseCost itself.
func PurchaseCost(def *gamedata.BusinessDef, level int) currency.Amount {
	return currency.Scale(def.BaseCost, costFactor, uint64(level))
}

// UpgradeCost is the price of levelling an owned business without
// interrupting its production cycle.
func UpgradeCost(def *gamedata.BusinessDef, level int) currency.Amount {
	return currency.Scale(def.BaseCost, costFactor, uint64(level))
}

// Profit is the amount credited per completed cycle: 0 when locked,
// baseProfit * 2^(level-1) otherwise.
func Profit(def *gamedata.BusinessDef, level int) currency.Amount {
	if level <= 0 {
		return currency.Zero()
	}
	return currency.Scale(def.BaseProfit, profitFactor, uint64(level-1))
}

func elapsed(st *State, now time.Time) int64 {
	e := clock.Millis(now) - st.LastProductionAt
	if e < 0 {
		return 0
	}
	return e
}

// IsReady reports whether an owned business has completed its cycle.
func IsReady(def *gamedata.BusinessDef, st *State, now time.Time) bool {
	return st.Level > 0 && elapsed(st, now) >= def.PeriodMillis()
}

// Remaining returns the milliseconds left in the current cycle, 0 once ready.
func Remaining(def *gamedata.BusinessDef, st *State, now time.Time) int64 {
	r := def.PeriodMillis() - elapsed(st, now)
	if r < 0 {
		return 0
	}
	return r
}

// Progress returns the completed fraction of the current cycle in [0, 1].
// It stays at 1 while the business waits for collection.
func Progress(def *gamedata.BusinessDef, st *State, now time.Time) float64 {
	if st.Level <= 0 {
		return 0
	}
	if st.ReadyForCollection {
		return 1
	}
	p := float64(elapsed(st, now)) / float64(def.PeriodMillis())
	if p > 1 {
		return 1
	}
	return p
}

// =============================================================================
// Commands
// =============================================================================

// Purchase buys the next level at PurchaseCost and restarts the production
// cycle. The new balance is returned; on refusal the balance is unchanged.
func Purchase(def *gamedata.BusinessDef, st *State, balance currency.Amount, now time.Time) (currency.Amount, Outcome) {
	rest, err := balance.Sub(PurchaseCost(def, st.Level))
	if err != nil {
		return balance, InsufficientFunds
	}
	st.Level++
	st.LastProductionAt = clock.Millis(now)
	st.ReadyForCollection = false
	st.RemainingMillis = def.PeriodMillis()
	return rest, OK
}

// Upgrade buys the next level at UpgradeCost. Only owned businesses can be
// upgraded and the running cycle keeps its start time.
func Upgrade(def *gamedata.BusinessDef, st *State, balance currency.Amount) (currency.Amount, Outcome) {
	if !st.Owned() {
		return balance, NotOwned
	}
	rest, err := balance.Sub(UpgradeCost(def, st.Level))
	if err != nil {
		return balance, InsufficientFunds
	}
	st.Level++
	return rest, OK
}

// Collect credits one cycle of profit if the cycle has completed and starts
// the next cycle at now. A second call at the same instant is refused.
func Collect(def *gamedata.BusinessDef, st *State, balance currency.Amount, now time.Time) (currency.Amount, Outcome) {
	if !st.Owned() {
		return balance, NotOwned
	}
	if !IsReady(def, st, now) {
		return balance, NotReady
	}
	st.LastProductionAt = clock.Millis(now)
	st.ReadyForCollection = false
	st.RemainingMillis = def.PeriodMillis()
	return balance.Add(Profit(def, st.Level)), OK
}

// HireManager automates collection for an owned business. Managers are
// permanent for the session.
func HireManager(def *gamedata.BusinessDef, st *State, balance currency.Amount) (currency.Amount, Outcome) {
	if !st.Owned() {
		return balance, NotOwned
	}
	if st.HasManager {
		return balance, AlreadyManaged
	}
	rest, err := balance.Sub(def.ManagerCost)
	if err != nil {
		return balance, InsufficientFunds
	}
	st.HasManager = true
	return rest, OK
}

// Tick refreshes the cached readiness of an owned business. A managed
// business that is ready collects exactly one cycle: its cycle start moves
// forward by one period (never past now), so an unattended backlog drains
// one cycle per tick.
func Tick(def *gamedata.BusinessDef, st *State, balance currency.Amount, now time.Time) (currency.Amount, bool) {
	if !st.Owned() {
		st.ReadyForCollection = false
		st.RemainingMillis = 0
		return balance, false
	}

	refresh(def, st, now)
	if !st.HasManager || !st.ReadyForCollection {
		return balance, false
	}

	next := st.LastProductionAt + def.PeriodMillis()
	if nowMS := clock.Millis(now); next > nowMS {
		next = nowMS
	}
	st.LastProductionAt = next
	refresh(def, st, now)
	return balance.Add(Profit(def, st.Level)), true
}

func refresh(def *gamedata.BusinessDef, st *State, now time.Time) {
	st.RemainingMillis = Remaining(def, st, now)
	st.ReadyForCollection = st.RemainingMillis == 0
}
