package stage

import (
	"testing"

	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	registry, err := gamedata.NewStageRegistry([]gamedata.StageDef{
		{ID: "beginning", UnlockAt: currency.Zero()},
		{ID: "momentum", UnlockAt: currency.New(100)},
		{ID: "breakout", UnlockAt: currency.New(1000)},
	})
	if err != nil {
		t.Fatalf("NewStageRegistry() error: %v", err)
	}
	return NewLedger(registry)
}

func TestLedgerStartsAtLowestStage(t *testing.T) {
	l := newTestLedger(t)
	if got := l.Current().ID; got != "beginning" {
		t.Errorf("Current().ID = %q, want beginning", got)
	}
}

func TestCheckBelowThreshold(t *testing.T) {
	l := newTestLedger(t)
	if s, advanced := l.Check(currency.New(99)); advanced || s.ID != "beginning" {
		t.Errorf("Check(99) = %q, %v; want beginning, false", s.ID, advanced)
	}
}

func TestCheckAtThreshold(t *testing.T) {
	l := newTestLedger(t)
	if s, advanced := l.Check(currency.New(100)); !advanced || s.ID != "momentum" {
		t.Errorf("Check(100) = %q, %v; want momentum, true", s.ID, advanced)
	}
}

func TestCheckSkipsIntermediateStages(t *testing.T) {
	l := newTestLedger(t)
	l.Check(currency.New(50))

	s, advanced := l.Check(currency.New(1500))
	if !advanced || s.ID != "breakout" {
		t.Errorf("Check(1500) = %q, %v; want breakout, true", s.ID, advanced)
	}
}

func TestCheckNeverRegresses(t *testing.T) {
	l := newTestLedger(t)
	l.Check(currency.New(1000))

	for _, balance := range []int64{999, 100, 0} {
		s, advanced := l.Check(currency.New(balance))
		if advanced || s.ID != "breakout" {
			t.Errorf("Check(%d) = %q, %v; want breakout, false", balance, s.ID, advanced)
		}
	}
}

func TestCheckIsStableAtCurrentStage(t *testing.T) {
	l := newTestLedger(t)
	l.Check(currency.New(150))
	if _, advanced := l.Check(currency.New(150)); advanced {
		t.Error("second Check() at the same balance should not advance")
	}
}

func TestCheckTiesPickLowestID(t *testing.T) {
	registry, err := gamedata.NewStageRegistry([]gamedata.StageDef{
		{ID: "start", UnlockAt: currency.Zero()},
		{ID: "zeta", UnlockAt: currency.New(10)},
		{ID: "alpha", UnlockAt: currency.New(10)},
	})
	if err != nil {
		t.Fatalf("NewStageRegistry() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		l := NewLedger(registry)
		if s, _ := l.Check(currency.New(10)); s.ID != "alpha" {
			t.Errorf("Check(10) = %q, want alpha", s.ID)
		}
	}
}

func TestRestore(t *testing.T) {
	l := newTestLedger(t)
	if !l.Restore("breakout") {
		t.Fatal("Restore(breakout) should succeed")
	}
	if l.Current().ID != "breakout" {
		t.Errorf("Current().ID = %q, want breakout", l.Current().ID)
	}
	if l.Restore("missing") {
		t.Error("Restore(missing) should fail")
	}
	if l.Current().ID != "breakout" {
		t.Error("failed Restore() must not move the ledger")
	}
}
