package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// =============================================================================
// BusinessRegistry
// =============================================================================

// BusinessRegistry holds business definitions in catalog order.
type BusinessRegistry struct {
	businesses map[string]*BusinessDef
	all        []BusinessDef
}

// NewBusinessRegistry validates the definitions and creates a registry.
func NewBusinessRegistry(businesses []BusinessDef) (*BusinessRegistry, error) {
	if len(businesses) == 0 {
		return nil, errors.New("no businesses defined")
	}
	all := make([]BusinessDef, len(businesses))
	copy(all, businesses)

	registry := &BusinessRegistry{
		businesses: make(map[string]*BusinessDef, len(all)),
		all:        all,
	}
	for i := range all {
		if err := all[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.businesses[all[i].ID]; dup {
			return nil, fmt.Errorf("duplicate business id %q", all[i].ID)
		}
		registry.businesses[all[i].ID] = &all[i]
	}
	return registry, nil
}

// LoadBusinessRegistry loads and creates a registry from the embedded businesses.json.
func LoadBusinessRegistry() (*BusinessRegistry, error) {
	return LoadBusinessRegistryFrom(dataFS)
}

// LoadBusinessRegistryFrom loads and creates a registry from businesses.json in fsys.
func LoadBusinessRegistryFrom(fsys fs.FS) (*BusinessRegistry, error) {
	businesses, err := LoadBusinessesFrom(fsys)
	if err != nil {
		return nil, err
	}
	return NewBusinessRegistry(businesses)
}

// MustLoadBusinessRegistry loads a registry, panicking on error.
func MustLoadBusinessRegistry() *BusinessRegistry {
	registry, err := LoadBusinessRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the business definition with the given ID, or nil if not found.
func (r *BusinessRegistry) GetByID(id string) *BusinessDef {
	return r.businesses[id]
}

// All returns all business definitions in catalog order.
func (r *BusinessRegistry) All() []BusinessDef {
	return r.all
}

// Count returns the number of businesses in the registry.
func (r *BusinessRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// StageRegistry
// =============================================================================

// StageRegistry holds stage definitions ordered by unlock threshold.
// Stages with equal thresholds are ordered by ID so selection is deterministic.
type StageRegistry struct {
	stages map[string]*StageDef
	all    []StageDef
}

// NewStageRegistry validates the definitions and creates a registry.
// The lowest threshold must be zero so that a starting stage always exists.
func NewStageRegistry(stages []StageDef) (*StageRegistry, error) {
	if len(stages) == 0 {
		return nil, errors.New("no stages defined")
	}
	all := make([]StageDef, len(stages))
	copy(all, stages)
	sort.SliceStable(all, func(i, j int) bool {
		if c := all[i].UnlockAt.Cmp(all[j].UnlockAt); c != 0 {
			return c < 0
		}
		return all[i].ID < all[j].ID
	})
	if !all[0].UnlockAt.IsZero() {
		return nil, fmt.Errorf("lowest stage %q unlocks at %s, want 0", all[0].ID, all[0].UnlockAt)
	}

	registry := &StageRegistry{
		stages: make(map[string]*StageDef, len(all)),
		all:    all,
	}
	for i := range all {
		if all[i].ID == "" {
			return nil, errors.New("stage missing id")
		}
		if _, dup := registry.stages[all[i].ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %q", all[i].ID)
		}
		registry.stages[all[i].ID] = &all[i]
	}
	return registry, nil
}

// LoadStageRegistry loads and creates a registry from the embedded stages.json.
func LoadStageRegistry() (*StageRegistry, error) {
	return LoadStageRegistryFrom(dataFS)
}

// LoadStageRegistryFrom loads and creates a registry from stages.json in fsys.
func LoadStageRegistryFrom(fsys fs.FS) (*StageRegistry, error) {
	stages, err := LoadStagesFrom(fsys)
	if err != nil {
		return nil, err
	}
	return NewStageRegistry(stages)
}

// MustLoadStageRegistry loads a registry, panicking on error.
func MustLoadStageRegistry() *StageRegistry {
	registry, err := LoadStageRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the stage definition with the given ID, or nil if not found.
func (r *StageRegistry) GetByID(id string) *StageDef {
	return r.stages[id]
}

// First returns the stage with the lowest threshold.
func (r *StageRegistry) First() *StageDef {
	return &r.all[0]
}

// All returns all stage definitions ordered by threshold.
func (r *StageRegistry) All() []StageDef {
	return r.all
}

// Count returns the number of stages in the registry.
func (r *StageRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// UpgradeRegistry
// =============================================================================

// UpgradeRegistry holds upgrade definitions in catalog order.
type UpgradeRegistry struct {
	upgrades map[string]*UpgradeDef
	all      []UpgradeDef
}

// NewUpgradeRegistry validates the definitions and creates a registry.
// An empty upgrade list is allowed.
func NewUpgradeRegistry(upgrades []UpgradeDef) (*UpgradeRegistry, error) {
	all := make([]UpgradeDef, len(upgrades))
	copy(all, upgrades)

	registry := &UpgradeRegistry{
		upgrades: make(map[string]*UpgradeDef, len(all)),
		all:      all,
	}
	for i := range all {
		if err := all[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.upgrades[all[i].ID]; dup {
			return nil, fmt.Errorf("duplicate upgrade id %q", all[i].ID)
		}
		registry.upgrades[all[i].ID] = &all[i]
	}
	return registry, nil
}

// LoadUpgradeRegistry loads and creates a registry from the embedded upgrades.json.
func LoadUpgradeRegistry() (*UpgradeRegistry, error) {
	return LoadUpgradeRegistryFrom(dataFS)
}

// LoadUpgradeRegistryFrom loads and creates a registry from upgrades.json in fsys.
func LoadUpgradeRegistryFrom(fsys fs.FS) (*UpgradeRegistry, error) {
	upgrades, err := LoadUpgradesFrom(fsys)
	if err != nil {
		return nil, err
	}
	return NewUpgradeRegistry(upgrades)
}

// MustLoadUpgradeRegistry loads a registry, panicking on error.
func MustLoadUpgradeRegistry() *UpgradeRegistry {
	registry, err := LoadUpgradeRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the upgrade definition with the given ID, or nil if not found.
func (r *UpgradeRegistry) GetByID(id string) *UpgradeDef {
	return r.upgrades[id]
}

// All returns all upgrade definitions in catalog order.
func (r *UpgradeRegistry) All() []UpgradeDef {
	return r.all
}

// Count returns the number of upgrades in the registry.
func (r *UpgradeRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles the three registries the engine is built from.
type Catalog struct {
	Businesses *BusinessRegistry
	Stages     *StageRegistry
	Upgrades   *UpgradeRegistry
}

// LoadCatalog loads every registry from the embedded data.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFrom(dataFS)
}

// LoadCatalogFrom loads every registry from fsys.
func LoadCatalogFrom(fsys fs.FS) (*Catalog, error) {
	businesses, err := LoadBusinessRegistryFrom(fsys)
	if err != nil {
		return nil, fmt.Errorf("load businesses: %w", err)
	}
	stages, err := LoadStageRegistryFrom(fsys)
	if err != nil {
		return nil, fmt.Errorf("load stages: %w", err)
	}
	upgrades, err := LoadUpgradeRegistryFrom(fsys)
	if err != nil {
		return nil, fmt.Errorf("load upgrades: %w", err)
	}
	return &Catalog{Businesses: businesses, Stages: stages, Upgrades: upgrades}, nil
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}
