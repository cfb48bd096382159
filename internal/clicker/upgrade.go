package clicker

import (
	"github.com/shopspring/decimal"

	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
)

var upgradeGrowth = decimal.New(15, -1) // 1.5

// UpgradeCost returns floor(baseCost * 1.5^level).
func UpgradeCost(def *gamedata.UpgradeDef, level int) currency.Amount {
	cost := decimal.NewFromInt(def.BaseCost).
		Mul(upgradeGrowth.Pow(decimal.NewFromInt(int64(level)))).
		Floor()
	amount, err := currency.FromBig(cost.BigInt())
	if err != nil {
		// Base costs are validated positive, so the product cannot be negative
		panic(err)
	}
	return amount
}

// PurchaseUpgrade buys the next level of an upgrade, adding its bonuses to
// the click value and idle rate. It returns the new balance and whether the
// purchase happened.
func PurchaseUpgrade(def *gamedata.UpgradeDef, level *int, st *State, balance currency.Amount) (currency.Amount, bool) {
	rest, err := balance.Sub(UpgradeCost(def, *level))
	if err != nil {
		return balance, false
	}
	*level++
	st.ClickValue += def.ClickBonus
	st.IdleRate += def.IdleBonus
	return rest, true
}
