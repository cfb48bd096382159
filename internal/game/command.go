package game

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/gamedata"
	"github.com/samdwyer/profitpilgrim/internal/ui"
)

// Action is a player command kind.
type Action int

const (
	ActionClick Action = iota
	ActionPurchase
	ActionUpgrade
	ActionCollect
	ActionHire
	ActionBoost
)

// String returns the action name used in span names and metrics.
func (a Action) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionPurchase:
		return "purchase"
	case ActionUpgrade:
		return "upgrade"
	case ActionCollect:
		return "collect"
	case ActionHire:
		return "hire"
	case ActionBoost:
		return "boost"
	default:
		return "unknown"
	}
}

type command struct {
	action Action
	index  int // catalog position of the business or upgrade
}

// parseKey maps a key to a command.
func parseKey(r rune) (command, bool) {
	if r == ' ' {
		return command{action: ActionClick}, true
	}
	keys := []struct {
		action Action
		runes  []rune
	}{
		{ActionPurchase, ui.PurchaseKeys},
		{ActionUpgrade, ui.UpgradeKeys},
		{ActionCollect, ui.CollectKeys},
		{ActionHire, ui.HireKeys},
		{ActionBoost, ui.BoostKeys},
	}
	for _, k := range keys {
		if i := strings.IndexRune(string(k.runes), r); i >= 0 {
			// IndexRune returns a byte offset; all key runes are ASCII.
			return command{action: k.action, index: i}, true
		}
	}
	return command{}, false
}

// execute runs one command against the engine inside a span and updates
// the status line.
func (g *Game) execute(ctx context.Context, cmd command) {
	ctx, span := g.tracer.Start(ctx, "command."+cmd.action.String())
	defer span.End()

	var ok bool
	switch cmd.action {
	case ActionClick:
		g.engine.Click()
		ok = true
		g.status = fmt.Sprintf("+%d", g.engine.Snapshot(g.engine.Now()).ClickValue)

	case ActionBoost:
		upgrades := g.engine.Catalog().Upgrades.All()
		if cmd.index >= len(upgrades) {
			g.status = "Nothing on that key."
			return
		}
		def := upgrades[cmd.index]
		span.SetAttributes(attribute.String("upgrade.id", def.ID))
		ok = g.engine.PurchaseUpgrade(def.ID)
		g.status = g.boostStatus(def, ok)

	default:
		businesses := g.engine.Catalog().Businesses.All()
		if cmd.index >= len(businesses) {
			g.status = "Nothing on that key."
			return
		}
		def := businesses[cmd.index]
		span.SetAttributes(attribute.String("business.id", def.ID))
		ok = g.runBusiness(cmd.action, def.ID)
		g.status = g.businessStatus(cmd.action, def, ok)
	}

	span.SetAttributes(
		attribute.Bool("success", ok),
		attribute.String("currency", g.engine.Currency().String()),
	)
	g.metrics.recordCommand(ctx, cmd.action, ok)
}

func (g *Game) runBusiness(action Action, id string) bool {
	switch action {
	case ActionPurchase:
		return g.engine.PurchaseBusiness(id)
	case ActionUpgrade:
		return g.engine.UpgradeBusinessLevel(id)
	case ActionCollect:
		return g.engine.CollectProfit(id)
	case ActionHire:
		return g.engine.HireManager(id)
	}
	return false
}

func (g *Game) businessStatus(action Action, def gamedata.BusinessDef, ok bool) string {
	snap := g.engine.Snapshot(g.engine.Now())
	view, _ := snap.Business(def.ID)

	if ok {
		switch {
		case action == ActionPurchase && view.Level == 1:
			return fmt.Sprintf("Opened %s.", def.Name)
		case action == ActionPurchase:
			return fmt.Sprintf("Bought %s level %d.", def.Name, view.Level)
		case action == ActionUpgrade:
			return fmt.Sprintf("%s is now level %d.", def.Name, view.Level)
		case action == ActionCollect:
			return fmt.Sprintf("Collected from %s.", def.Name)
		case action == ActionHire:
			return fmt.Sprintf("%s now runs %s.", def.ManagerName, def.Name)
		}
	}

	switch {
	case action == ActionPurchase:
		return fmt.Sprintf("%s costs %s.", def.Name, currency.Short(view.PurchaseCost))
	case !view.Owned():
		return fmt.Sprintf("Open %s first.", def.Name)
	case action == ActionUpgrade:
		return fmt.Sprintf("Upgrading %s costs %s.", def.Name, currency.Short(view.UpgradeCost))
	case action == ActionCollect:
		return fmt.Sprintf("%s is not ready.", def.Name)
	case action == ActionHire && view.HasManager:
		return fmt.Sprintf("%s already has a manager.", def.Name)
	default:
		return fmt.Sprintf("%s costs %s.", def.ManagerName, currency.Short(def.ManagerCost))
	}
}

func (g *Game) boostStatus(def gamedata.UpgradeDef, ok bool) string {
	snap := g.engine.Snapshot(g.engine.Now())
	view, _ := snap.Upgrade(def.ID)
	if ok {
		return fmt.Sprintf("%s level %d.", def.Name, view.Level)
	}
	return fmt.Sprintf("%s costs %s.", def.Name, currency.Short(view.Cost))
}
