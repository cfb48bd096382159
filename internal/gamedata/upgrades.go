package gamedata

import (
	"fmt"
	"io/fs"
)

// UpgradeDef defines a click/idle upgrade loaded from JSON.
type UpgradeDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BaseCost    int64  `json:"baseCost"`   // Cost of the first level; grows by 1.5x per level
	ClickBonus  int64  `json:"clickBonus"` // Added to click value per level
	IdleBonus   int64  `json:"idleBonus"`  // Added to idle rate per level
}

// Validate checks the invariants every upgrade entry must satisfy.
func (u *UpgradeDef) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("upgrade missing id")
	}
	if u.BaseCost < 1 {
		return fmt.Errorf("upgrade %s: baseCost must be at least 1", u.ID)
	}
	if u.ClickBonus < 0 || u.IdleBonus < 0 {
		return fmt.Errorf("upgrade %s: bonuses must not be negative", u.ID)
	}
	return nil
}

// UpgradesFile represents the structure of upgrades.json.
type UpgradesFile struct {
	Upgrades []UpgradeDef `json:"upgrades"`
}

// LoadUpgrades loads upgrade definitions from the embedded upgrades.json file.
func LoadUpgrades() ([]UpgradeDef, error) {
	return LoadUpgradesFrom(dataFS)
}

// LoadUpgradesFrom loads upgrade definitions from upgrades.json in fsys.
func LoadUpgradesFrom(fsys fs.FS) ([]UpgradeDef, error) {
	file, err := LoadFrom[UpgradesFile](fsys, "upgrades.json")
	if err != nil {
		return nil, err
	}
	return file.Upgrades, nil
}
