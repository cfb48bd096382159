package clicker

import (
	"testing"
	"time"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestClick(t *testing.T) {
	st := NewState(5, 1, epoch)
	got := Click(&st, currency.New(50))
	if got.String() != "55" {
		t.Errorf("Click() = %s, want 55", got)
	}
}

func TestTickIdle(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		earned   int64
		advanced bool
	}{
		{"zero", 0, 0, false},
		{"sub-second", 999 * time.Millisecond, 0, false},
		{"one second", time.Second, 3, true},
		{"fractional", 2500 * time.Millisecond, 6, true},
		{"backwards", -5 * time.Second, 0, false},
	}

	for _, tt := range tests {
		st := NewState(5, 3, epoch)
		balance, earned := TickIdle(&st, currency.New(10), epoch.Add(tt.elapsed))

		if !earned.Equal(currency.New(tt.earned)) {
			t.Errorf("%s: earned = %s, want %d", tt.name, earned, tt.earned)
		}
		if !balance.Equal(currency.New(10 + tt.earned)) {
			t.Errorf("%s: balance = %s, want %d", tt.name, balance, 10+tt.earned)
		}
		moved := st.LastIdleTickAt != clock.Millis(epoch)
		if moved != tt.advanced {
			t.Errorf("%s: LastIdleTickAt advanced = %v, want %v", tt.name, moved, tt.advanced)
		}
	}
}

func TestTickIdleSameInstantIsNoop(t *testing.T) {
	st := NewState(1, 2, epoch)
	now := epoch.Add(4 * time.Second)

	balance, _ := TickIdle(&st, currency.Zero(), now)
	again, earned := TickIdle(&st, balance, now)
	if !earned.IsZero() || !again.Equal(balance) {
		t.Errorf("repeated TickIdle() earned %s", earned)
	}
	if balance.String() != "8" {
		t.Errorf("TickIdle() balance = %s, want 8", balance)
	}
}

func TestUpgradeCost(t *testing.T) {
	def := &gamedata.UpgradeDef{ID: "basicClick", BaseCost: 10, ClickBonus: 1}
	tests := []struct {
		level    int
		expected string
	}{
		{0, "10"},
		{1, "15"},
		{2, "22"},
		{3, "33"},
		{10, "576"},
	}

	for _, tt := range tests {
		if got := UpgradeCost(def, tt.level); got.String() != tt.expected {
			t.Errorf("UpgradeCost(level %d) = %s, want %s", tt.level, got, tt.expected)
		}
	}
}

func TestPurchaseUpgrade(t *testing.T) {
	click := &gamedata.UpgradeDef{ID: "basicClick", BaseCost: 10, ClickBonus: 1}
	idle := &gamedata.UpgradeDef{ID: "idleIncome", BaseCost: 25, IdleBonus: 1}
	st := NewState(5, 1, epoch)
	clickLevel, idleLevel := 0, 0

	balance, ok := PurchaseUpgrade(click, &clickLevel, &st, currency.New(50))
	if !ok || balance.String() != "40" || clickLevel != 1 || st.ClickValue != 6 {
		t.Errorf("PurchaseUpgrade(basicClick) = %s, %v; level %d click %d", balance, ok, clickLevel, st.ClickValue)
	}

	balance, ok = PurchaseUpgrade(idle, &idleLevel, &st, balance)
	if !ok || balance.String() != "15" || idleLevel != 1 || st.IdleRate != 2 {
		t.Errorf("PurchaseUpgrade(idleIncome) = %s, %v; level %d idle %d", balance, ok, idleLevel, st.IdleRate)
	}

	// Next basicClick costs 15: exactly affordable
	balance, ok = PurchaseUpgrade(click, &clickLevel, &st, balance)
	if !ok || !balance.IsZero() {
		t.Errorf("PurchaseUpgrade(basicClick) second = %s, %v; want 0, true", balance, ok)
	}

	balance, ok = PurchaseUpgrade(click, &clickLevel, &st, balance)
	if ok || clickLevel != 2 || st.ClickValue != 7 {
		t.Errorf("unaffordable PurchaseUpgrade() changed state: ok %v level %d click %d", ok, clickLevel, st.ClickValue)
	}
	if !balance.IsZero() {
		t.Errorf("unaffordable PurchaseUpgrade() balance = %s, want 0", balance)
	}
}
