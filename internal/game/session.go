package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/config"
	"github.com/samdwyer/profitpilgrim/internal/engine"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
	"github.com/samdwyer/profitpilgrim/internal/save"
)

// SlotReader loads encoded saves.
type SlotReader interface {
	Get(ctx context.Context, id string) (save.Slot, error)
}

// LoadOrNew restores the configured save slot, or starts a new game from
// cfg when the slot does not exist yet.
func LoadOrNew(ctx context.Context, store SlotReader, cfg config.Config, catalog *gamedata.Catalog, clk clock.Clock) (*engine.Engine, error) {
	opts := engine.Options{
		Catalog:          catalog,
		Clock:            clk,
		StartingCurrency: cfg.StartingCurrency,
		ClickValue:       cfg.ClickValue,
		IdleRate:         cfg.IdleRate,
		Logger:           slog.Default(),
	}

	slot, err := store.Get(ctx, cfg.SaveSlot)
	if errors.Is(err, save.ErrNotFound) {
		slog.Info("starting new game", "slot", cfg.SaveSlot)
		return engine.New(opts)
	}
	if err != nil {
		return nil, err
	}

	file, err := engine.DecodeSave(slot.Data)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slot.ID, err)
	}
	return engine.Restore(file, opts)
}
