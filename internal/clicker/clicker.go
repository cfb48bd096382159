// Package clicker implements manual clicks, passive idle income and the
// upgrades that raise both.
package clicker

import (
	"time"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/currency"
)

// State holds the click and idle income parameters.
type State struct {
	ClickValue     int64 `json:"clickValue"`     // Currency per click, at least 1
	IdleRate       int64 `json:"idleRate"`       // Currency per elapsed whole second
	LastIdleTickAt int64 `json:"lastIdleTickAt"` // ms since epoch
}

// NewState returns clicker state whose idle clock starts at now.
func NewState(clickValue, idleRate int64, now time.Time) State {
	return State{
		ClickValue:     clickValue,
		IdleRate:       idleRate,
		LastIdleTickAt: clock.Millis(now),
	}
}

// Click credits one click.
func Click(st *State, balance currency.Amount) currency.Amount {
	return balance.Add(currency.New(st.ClickValue))
}

// TickIdle credits IdleRate for every whole second since the last idle tick
// and returns the new balance with the amount earned. When less than a
// second has passed nothing changes, so fractional seconds keep accumulating.
func TickIdle(st *State, balance currency.Amount, now time.Time) (currency.Amount, currency.Amount) {
	nowMS := clock.Millis(now)
	seconds := (nowMS - st.LastIdleTickAt) / 1000
	if seconds <= 0 {
		return balance, currency.Zero()
	}

	earned := currency.New(seconds).MulInt64(st.IdleRate)
	st.LastIdleTickAt = nowMS
	return balance.Add(earned), earned
}
