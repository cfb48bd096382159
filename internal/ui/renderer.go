package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/profitpilgrim/internal/currency"
	"github.com/samdwyer/profitpilgrim/internal/engine"
)

// Key bindings shown next to each row, indexed by catalog order.
var (
	PurchaseKeys = []rune("123456")
	UpgradeKeys  = []rune("!@#$%^")
	CollectKeys  = []rune("qwerty")
	HireKeys     = []rune("asdfgh")
	BoostKeys    = []rune("zx")
)

const progressWidth = 10

var (
	dimStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	cashStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws a snapshot and a one-line status message.
func (r *Renderer) Render(snap *engine.Snapshot, status string) {
	r.screen.Clear()

	stage := snap.CurrentStage
	header := fmt.Sprintf(" PROFIT PILGRIM | %s ", stage.Name)
	r.screen.DrawText(0, 0, header, stage.Theme.Style().Bold(true))

	cash := fmt.Sprintf("Cash: %s", currency.Short(snap.Currency))
	x := r.screen.DrawText(0, 1, cash, cashStyle)
	r.screen.DrawText(x+2, 1, fmt.Sprintf("Click: %d  Idle: %d/s", snap.ClickValue, snap.IdleRate), textStyle)

	accent := tcell.StyleDefault.Foreground(stage.Theme.AccentColor())

	y := 3
	for i, b := range snap.Businesses {
		if i >= len(PurchaseKeys) {
			break
		}
		style := dimStyle
		if b.Owned() || b.CanPurchase {
			style = textStyle
		}
		if b.CanCollect {
			style = accent
		}
		r.screen.DrawText(0, y, BusinessLine(b, i), style)
		y++
	}

	y++
	for i, u := range snap.Upgrades {
		if i >= len(BoostKeys) {
			break
		}
		style := dimStyle
		if u.Affordable {
			style = accent
		}
		r.screen.DrawText(0, y, UpgradeLine(u, i), style)
		y++
	}

	_, height := r.screen.Size()
	r.screen.DrawText(0, height-2, "space click  1-6 buy  shift+1-6 upgrade  qwerty collect  asdfgh hire  zx boost  Q quit", dimStyle)
	r.RenderMessage(status, height-1)

	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, textStyle)
}

// BusinessLine formats the row for the i-th business.
func BusinessLine(b engine.BusinessView, i int) string {
	if !b.Owned() {
		return fmt.Sprintf("%c %-14s locked   unlock %s", PurchaseKeys[i], b.Name, currency.Short(b.PurchaseCost))
	}

	manager := fmt.Sprintf("[%c] hire %s", HireKeys[i], currency.Short(b.ManagerCost))
	if b.HasManager {
		manager = "managed by " + b.ManagerName
	}
	return fmt.Sprintf("%c %-14s Lv %-3d +%-6s %s  [%c] up %s  [%c] collect  %s",
		PurchaseKeys[i], b.Name, b.Level, currency.Short(b.Profit),
		ProgressBar(b.Progress, progressWidth),
		UpgradeKeys[i], currency.Short(b.UpgradeCost),
		CollectKeys[i], manager)
}

// UpgradeLine formats the row for the i-th clicker upgrade.
func UpgradeLine(u engine.UpgradeView, i int) string {
	var bonus []string
	if u.ClickBonus > 0 {
		bonus = append(bonus, fmt.Sprintf("+%d click", u.ClickBonus))
	}
	if u.IdleBonus > 0 {
		bonus = append(bonus, fmt.Sprintf("+%d idle", u.IdleBonus))
	}
	return fmt.Sprintf("%c %-16s Lv %-3d cost %-7s %s",
		BoostKeys[i], u.Name, u.Level, currency.Short(u.Cost), strings.Join(bonus, " "))
}

// ProgressBar renders p in [0, 1] as a bar of the given width.
func ProgressBar(p float64, width int) string {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	filled := int(p * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
