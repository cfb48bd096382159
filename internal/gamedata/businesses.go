package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/samdwyer/profitpilgrim/internal/currency"
)

// BusinessDef defines a purchasable business loaded from JSON.
type BusinessDef struct {
	ID             string          `json:"id"`             // Unique identifier (e.g., "farm")
	Name           string          `json:"name"`           // Display name (e.g., "Small Farm")
	Description    string          `json:"description"`    // Flavour text
	Icon           string          `json:"icon"`           // Single glyph or emoji
	BaseCost       currency.Amount `json:"baseCost"`       // Unlock cost; level costs scale from it
	BaseProfit     currency.Amount `json:"baseProfit"`     // Profit per cycle at level 1
	ProductionTime int64           `json:"productionTime"` // Seconds per production cycle
	ManagerCost    currency.Amount `json:"managerCost"`    // One-time cost to automate collection
	ManagerName    string          `json:"managerName"`
}

// Period returns the production cycle length.
func (b *BusinessDef) Period() time.Duration {
	return time.Duration(b.ProductionTime) * time.Second
}

// PeriodMillis returns the production cycle length in milliseconds.
func (b *BusinessDef) PeriodMillis() int64 {
	return b.ProductionTime * 1000
}

// Validate checks the invariants every catalog entry must satisfy.
func (b *BusinessDef) Validate() error {
	one := currency.New(1)
	switch {
	case b.ID == "":
		return errors.New("business missing id")
	case b.BaseCost.Cmp(one) < 0:
		return fmt.Errorf("business %s: baseCost must be at least 1", b.ID)
	case b.BaseProfit.Cmp(one) < 0:
		return fmt.Errorf("business %s: baseProfit must be at least 1", b.ID)
	case b.ProductionTime < 1:
		return fmt.Errorf("business %s: productionTime must be at least 1 second", b.ID)
	}
	return nil
}

// BusinessesFile represents the structure of businesses.json.
type BusinessesFile struct {
	Businesses []BusinessDef `json:"businesses"`
}

// LoadBusinesses loads business definitions from the embedded businesses.json file.
func LoadBusinesses() ([]BusinessDef, error) {
	return LoadBusinessesFrom(dataFS)
}

// LoadBusinessesFrom loads business definitions from businesses.json in fsys.
func LoadBusinessesFrom(fsys fs.FS) ([]BusinessDef, error) {
	file, err := LoadFrom[BusinessesFile](fsys, "businesses.json")
	if err != nil {
		return nil, err
	}
	return file.Businesses, nil
}
