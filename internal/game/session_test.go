package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/config"
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/engine"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
	"github.com/samdwyer/profitpilgrim/internal/save"
)

type slotMap map[string]save.Slot

func (m slotMap) Get(_ context.Context, id string) (save.Slot, error) {
	slot, ok := m[id]
	if !ok {
		return save.Slot{}, fmt.Errorf("%w: %s", save.ErrNotFound, id)
	}
	return slot, nil
}

type brokenReader struct{}

func (brokenReader) Get(context.Context, string) (save.Slot, error) {
	return save.Slot{}, errors.New("database is locked")
}

func TestLoadOrNewStartsFresh(t *testing.T) {
	cfg := config.Default()
	cfg.StartingCurrency = currency.New(777)
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))

	eng, err := LoadOrNew(context.Background(), slotMap{}, cfg, gamedata.MustLoadCatalog(), clk)
	if err != nil {
		t.Fatalf("LoadOrNew() error: %v", err)
	}
	if eng.Currency().String() != "777" {
		t.Errorf("Currency() = %s, want 777", eng.Currency())
	}
}

func TestLoadOrNewRestoresSlot(t *testing.T) {
	cfg := config.Default()
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))
	catalog := gamedata.MustLoadCatalog()

	prev, err := engine.New(engine.Options{Catalog: catalog, Clock: clk, StartingCurrency: currency.New(500), ClickValue: 5, IdleRate: 1})
	if err != nil {
		t.Fatalf("engine.New() error: %v", err)
	}
	prev.PurchaseBusiness("cafe")
	data, err := engine.EncodeSave(prev.Save())
	if err != nil {
		t.Fatalf("EncodeSave() error: %v", err)
	}

	store := slotMap{cfg.SaveSlot: {ID: cfg.SaveSlot, Data: data}}
	eng, err := LoadOrNew(context.Background(), store, cfg, catalog, clk)
	if err != nil {
		t.Fatalf("LoadOrNew() error: %v", err)
	}
	if eng.Currency().String() != "400" {
		t.Errorf("Currency() = %s, want 400", eng.Currency())
	}
	snap := eng.Snapshot(clk.Now())
	if cafe, _ := snap.Business("cafe"); cafe.Level != 1 {
		t.Errorf("cafe level = %d, want 1", cafe.Level)
	}
}

func TestLoadOrNewErrors(t *testing.T) {
	cfg := config.Default()
	catalog := gamedata.MustLoadCatalog()
	clk := clock.NewManual(time.UnixMilli(1_700_000_000_000))

	if _, err := LoadOrNew(context.Background(), brokenReader{}, cfg, catalog, clk); err == nil {
		t.Error("LoadOrNew() should surface store errors")
	}

	corrupt := slotMap{cfg.SaveSlot: {ID: cfg.SaveSlot, Data: []byte("{")}}
	if _, err := LoadOrNew(context.Background(), corrupt, cfg, catalog, clk); err == nil {
		t.Error("LoadOrNew() should reject a corrupt save")
	}
}
