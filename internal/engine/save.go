package engine

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/samdwyer/profitpilgrim/internal/business"
	"github.com/samdwyer/profitpilgrim/internal/clicker"
	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
	"github.com/samdwyer/profitpilgrim/internal/stage"
)

// SaveVersion is the current save file format.
const SaveVersion = 1

// SaveFile is the persisted form of an engine. Every currency value,
// including the catalog figures, is stored as a decimal string so it
// survives a round trip exactly.
type SaveFile struct {
	Version      int                 `json:"version"`
	SavedAt      int64               `json:"savedAt"` // ms since epoch
	Currency     currency.Amount     `json:"currency"`
	Clicker      clicker.State       `json:"clicker"`
	Businesses   []SavedBusiness     `json:"businesses"`
	Upgrades     []SavedUpgrade      `json:"upgrades"`
	Stages       []gamedata.StageDef `json:"stages"`
	CurrentStage string              `json:"currentStage"`
}

// SavedBusiness is one business definition with its runtime state.
type SavedBusiness struct {
	Definition gamedata.BusinessDef `json:"definition"`
	State      business.State       `json:"state"`
}

// SavedUpgrade is one upgrade definition with its purchased level.
type SavedUpgrade struct {
	Definition gamedata.UpgradeDef `json:"definition"`
	Level      int                 `json:"level"`
}

// Save captures the engine state.
func (e *Engine) Save() *SaveFile {
	save := &SaveFile{
		Version:      SaveVersion,
		SavedAt:      clock.Millis(e.clk.Now()),
		Currency:     e.currency,
		Clicker:      e.clicker,
		CurrentStage: e.stages.Current().ID,
	}

	for _, def := range e.catalog.Businesses.All() {
		save.Businesses = append(save.Businesses, SavedBusiness{
			Definition: def,
			State:      *e.businesses[def.ID],
		})
	}
	for _, def := range e.catalog.Upgrades.All() {
		save.Upgrades = append(save.Upgrades, SavedUpgrade{
			Definition: def,
			Level:      e.upgradeLevels[def.ID],
		})
	}
	save.Stages = append(save.Stages, e.stages.Stages()...)

	return save
}

// EncodeSave serialises a save file to JSON.
func EncodeSave(save *SaveFile) ([]byte, error) {
	data, err := json.Marshal(save)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// DecodeSave parses a save file produced by EncodeSave.
func DecodeSave(data []byte) (*SaveFile, error) {
	var save SaveFile
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if save.Version != SaveVersion {
		return nil, fmt.Errorf("decode save: unsupported version %d", save.Version)
	}
	return &save, nil
}

// Restore rebuilds an engine from a save file. Saved definitions take
// precedence over opts.Catalog; catalog entries missing from the save are
// added fresh, so a newer catalog can introduce businesses and upgrades.
// opts.StartingCurrency, ClickValue and IdleRate are ignored.
func Restore(save *SaveFile, opts Options) (*Engine, error) {
	if save == nil {
		return nil, fmt.Errorf("restore: nil save")
	}
	if save.Version != SaveVersion {
		return nil, fmt.Errorf("restore: unsupported save version %d", save.Version)
	}
	opts.ClickValue = save.Clicker.ClickValue
	opts.IdleRate = save.Clicker.IdleRate
	if opts.Catalog == nil {
		opts.Catalog = &gamedata.Catalog{}
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	now := opts.Clock.Now()

	catalog, err := mergeCatalog(save, opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	e := &Engine{
		catalog:            catalog,
		clk:                opts.Clock,
		log:                opts.Logger,
		currency:           save.Currency,
		clicker:            save.Clicker,
		businesses:         make(map[string]*business.State, catalog.Businesses.Count()),
		upgradeLevels:      make(map[string]int, catalog.Upgrades.Count()),
		stages:             stage.NewLedger(catalog.Stages),
		lastProductionTick: math.MinInt64,
	}

	saved := make(map[string]business.State, len(save.Businesses))
	for _, b := range save.Businesses {
		if b.State.Level < 0 {
			return nil, fmt.Errorf("restore: business %s has negative level %d", b.Definition.ID, b.State.Level)
		}
		saved[b.Definition.ID] = b.State
	}
	for _, def := range catalog.Businesses.All() {
		st, ok := saved[def.ID]
		if !ok {
			st = business.NewState(now)
		}
		e.businesses[def.ID] = &st
	}

	levels := make(map[string]int, len(save.Upgrades))
	for _, u := range save.Upgrades {
		if u.Level < 0 {
			return nil, fmt.Errorf("restore: upgrade %s has negative level %d", u.Definition.ID, u.Level)
		}
		levels[u.Definition.ID] = u.Level
	}
	for _, def := range catalog.Upgrades.All() {
		e.upgradeLevels[def.ID] = levels[def.ID]
	}

	if !e.stages.Restore(save.CurrentStage) {
		e.log.Warn("saved stage not in catalog, recomputing", "stage", save.CurrentStage)
		e.stages.Check(e.currency)
	}

	return e, nil
}

func mergeCatalog(save *SaveFile, base *gamedata.Catalog) (*gamedata.Catalog, error) {
	var businessDefs []gamedata.BusinessDef
	seen := make(map[string]bool)
	for _, b := range save.Businesses {
		businessDefs = append(businessDefs, b.Definition)
		seen[b.Definition.ID] = true
	}
	if base.Businesses != nil {
		for _, def := range base.Businesses.All() {
			if !seen[def.ID] {
				businessDefs = append(businessDefs, def)
			}
		}
	}
	businesses, err := gamedata.NewBusinessRegistry(businessDefs)
	if err != nil {
		return nil, err
	}

	var upgradeDefs []gamedata.UpgradeDef
	seen = make(map[string]bool)
	for _, u := range save.Upgrades {
		upgradeDefs = append(upgradeDefs, u.Definition)
		seen[u.Definition.ID] = true
	}
	if base.Upgrades != nil {
		for _, def := range base.Upgrades.All() {
			if !seen[def.ID] {
				upgradeDefs = append(upgradeDefs, def)
			}
		}
	}
	upgrades, err := gamedata.NewUpgradeRegistry(upgradeDefs)
	if err != nil {
		return nil, err
	}

	stageDefs := save.Stages
	if len(stageDefs) == 0 && base.Stages != nil {
		stageDefs = base.Stages.All()
	}
	stages, err := gamedata.NewStageRegistry(stageDefs)
	if err != nil {
		return nil, err
	}

	return &gamedata.Catalog{Businesses: businesses, Stages: stages, Upgrades: upgrades}, nil
}
