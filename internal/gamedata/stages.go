package gamedata

import (
	"errors"
	"io/fs"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/profitpilgrim/internal/currency"
)

// Theme holds the display colours of a stage. The engine never reads it.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Accent     string `json:"accent"`
}

// Style returns a tcell style using the theme's primary colour on its background.
// Unparseable colours fall back to the terminal defaults.
func (t Theme) Style() tcell.Style {
	style := tcell.StyleDefault
	if fg, err := ParseHexColor(t.Primary); err == nil {
		style = style.Foreground(fg)
	}
	if bg, err := ParseHexColor(t.Background); err == nil {
		style = style.Background(bg)
	}
	return style
}

// AccentColor returns the accent colour, or white if it cannot be parsed.
func (t Theme) AccentColor() tcell.Color {
	color, err := ParseHexColor(t.Accent)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// StageDef defines a cosmetic progression stage loaded from JSON.
type StageDef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Theme       Theme           `json:"theme"`
	UnlockAt    currency.Amount `json:"unlockAt"` // Currency needed to reach this stage
}

// StagesFile represents the structure of stages.json.
type StagesFile struct {
	Stages []StageDef `json:"stages"`
}

// LoadStages loads stage definitions from the embedded stages.json file.
func LoadStages() ([]StageDef, error) {
	return LoadStagesFrom(dataFS)
}

// LoadStagesFrom loads stage definitions from stages.json in fsys.
func LoadStagesFrom(fsys fs.FS) ([]StageDef, error) {
	file, err := LoadFrom[StagesFile](fsys, "stages.json")
	if err != nil {
		return nil, err
	}
	if len(file.Stages) == 0 {
		return nil, errors.New("no stages loaded from stages.json")
	}
	return file.Stages, nil
}
